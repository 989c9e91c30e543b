package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Factor names a weighted term of the total score.
type Factor string

const (
	FactorPrice        Factor = "price"
	FactorLocation     Factor = "location"
	FactorProperty     Factor = "property"
	FactorExternal     Factor = "external"
	FactorAppreciation Factor = "appreciation"
)

// ActiveFactors are the clamped sub-scores whose weights must sum to 1.
var ActiveFactors = []Factor{FactorPrice, FactorLocation, FactorProperty, FactorExternal}

// AllFactors includes the appreciation term, which multiplies the raw rate.
var AllFactors = append(append([]Factor{}, ActiveFactors...), FactorAppreciation)

// WeightSumTolerance is how far below 1.0 the active weight sum may fall.
// Above 1.0 only float rounding (weightSumEpsilon) is accepted, so a total
// over saturated sub-scores never exceeds 100.
const (
	WeightSumTolerance = 0.001
	weightSumEpsilon   = 1e-9
)

var ErrInvalidWeights = errors.New("invalid weights")

// Weights maps each factor to its share of the total score.
type Weights map[Factor]float64

// DefaultWeights returns the stock table. The appreciation weight is an
// explicit zero: the raw appreciation rate already feeds ExternalScore, and
// the term is kept so the table can give it weight later.
func DefaultWeights() Weights {
	return Weights{
		FactorPrice:        0.40, // 40%
		FactorLocation:     0.30, // 30%
		FactorProperty:     0.20, // 20%
		FactorExternal:     0.10, // 10%
		FactorAppreciation: 0.0,
	}
}

// With returns a copy of w with the given factors replaced. The receiver is
// never modified.
func (w Weights) With(overrides map[Factor]float64) Weights {
	out := make(Weights, len(AllFactors))
	for f, v := range w {
		out[f] = v
	}
	for f, v := range overrides {
		out[f] = v
	}
	return out
}

// Sum totals the active factors.
func (w Weights) Sum() float64 {
	var sum float64
	for _, f := range ActiveFactors {
		sum += w[f]
	}
	return sum
}

// Validate rejects unknown factors, negative or non-finite weights and an
// active sum away from 1.0.
func (w Weights) Validate() error {
	known := make(map[Factor]bool, len(AllFactors))
	for _, f := range AllFactors {
		known[f] = true
	}

	names := make([]string, 0, len(w))
	for f := range w {
		names = append(names, string(f))
	}
	sort.Strings(names)

	for _, name := range names {
		f := Factor(name)
		v := w[f]
		if !known[f] {
			return fmt.Errorf("%w: unknown factor %q", ErrInvalidWeights, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s weight is not finite", ErrInvalidWeights, name)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s weight %.3f is negative", ErrInvalidWeights, name, v)
		}
	}

	if sum := w.Sum(); sum < 1.0-WeightSumTolerance || sum > 1.0+weightSumEpsilon {
		return fmt.Errorf("%w: active weights sum to %.4f, expected 1.000", ErrInvalidWeights, sum)
	}
	return nil
}

// ParseFactor maps a name to a Factor, rejecting unknown names.
func ParseFactor(name string) (Factor, error) {
	for _, f := range AllFactors {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown factor %q", ErrInvalidWeights, name)
}
