package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightSum_100Percent(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), 0.001)
	assert.NoError(t, w.Validate())
	assert.Equal(t, 0.0, w[FactorAppreciation])
}

func TestWeightsValidation(t *testing.T) {
	testCases := []struct {
		name      string
		overrides map[Factor]float64
	}{
		{"sum below one", map[Factor]float64{FactorPrice: 0.2}},
		{"sum above one", map[Factor]float64{FactorExternal: 0.3}},
		{"negative weight", map[Factor]float64{FactorPrice: 0.6, FactorExternal: -0.1}},
		{"negative appreciation", map[Factor]float64{FactorAppreciation: -1}},
		{"nan weight", map[Factor]float64{FactorProperty: math.NaN()}},
		{"unknown factor", map[Factor]float64{"schools": 0.0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := DefaultWeights().With(tc.overrides).Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidWeights))

			_, err = NewScorer(DefaultWeights().With(tc.overrides))
			assert.Error(t, err)
		})
	}
}

func TestWeightSumBounds(t *testing.T) {
	over := DefaultWeights().With(map[Factor]float64{FactorPrice: 0.4009})
	assert.ErrorIs(t, over.Validate(), ErrInvalidWeights)

	under := DefaultWeights().With(map[Factor]float64{FactorPrice: 0.3995})
	assert.NoError(t, under.Validate())

	tooLow := DefaultWeights().With(map[Factor]float64{FactorPrice: 0.398})
	assert.ErrorIs(t, tooLow.Validate(), ErrInvalidWeights)
}

func TestSaturatedTotalNeverExceeds100(t *testing.T) {
	p := Params{
		Price:            100000,
		AreaM2:           400,
		PricePerM2:       1,
		AvgPricePerM2:    1e9,
		LocationScore:    100,
		SchoolRating:     10,
		ConditionScore:   Float(100),
		AppreciationRate: Float(50),
		CrimeRate:        Float(0),
	}
	l, err := NewListing(p)
	require.NoError(t, err)

	for _, w := range []Weights{
		DefaultWeights(),
		DefaultWeights().With(map[Factor]float64{FactorPrice: 0.3995}),
		DefaultWeights().With(map[Factor]float64{FactorPrice: 0.0, FactorLocation: 0.7}),
	} {
		scorer, err := NewScorer(w)
		require.NoError(t, err)
		total, err := scorer.Total(l)
		require.NoError(t, err)
		assert.LessOrEqual(t, total, 100+1e-6)
	}
}

func TestWeightsWithDoesNotMutate(t *testing.T) {
	base := DefaultWeights()
	changed := base.With(map[Factor]float64{FactorPrice: 0.5, FactorExternal: 0.0})

	assert.Equal(t, 0.40, base[FactorPrice])
	assert.Equal(t, 0.5, changed[FactorPrice])
	assert.NoError(t, changed.Validate())
}

func TestAppreciationExcludedFromSum(t *testing.T) {
	w := DefaultWeights().With(map[Factor]float64{FactorAppreciation: 0.25})
	assert.InDelta(t, 1.0, w.Sum(), 0.001)
	assert.NoError(t, w.Validate())
}

func TestParseFactor(t *testing.T) {
	f, err := ParseFactor("location")
	require.NoError(t, err)
	assert.Equal(t, FactorLocation, f)

	_, err = ParseFactor("crime")
	assert.ErrorIs(t, err, ErrInvalidWeights)
}
