package scoring

// Part explains one weighted term of the total.
type Part struct {
	Raw          float64 `json:"raw"`
	Score        float64 `json:"score"`
	Clamped      bool    `json:"clamped"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Breakdown is the explainable result of scoring one listing. Clamping shows
// up in Parts as information; it is not an error.
type Breakdown struct {
	Total   float64         `json:"total"`
	Parts   map[Factor]Part `json:"parts"`
	Weights Weights         `json:"weights"`
}

// Scorer combines sub-scores with the weight table it owns. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer validates weights and takes a private copy of them.
func NewScorer(weights Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights.With(nil)}, nil
}

// NewDefaultScorer returns a scorer over DefaultWeights.
func NewDefaultScorer() *Scorer {
	return &Scorer{weights: DefaultWeights()}
}

// Weights returns a copy of the scorer's table.
func (s *Scorer) Weights() Weights {
	return s.weights.With(nil)
}

// Total is the weighted sum of the four sub-scores plus the appreciation
// term. With the default table the result is in [0, 100].
func (s *Scorer) Total(l Listing) (float64, error) {
	b, err := s.Score(l)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// Score computes every part and the total for l.
func (s *Scorer) Score(l Listing) (*Breakdown, error) {
	if !l.Valid() {
		return nil, errNotBuilt
	}

	raws := map[Factor]float64{
		FactorPrice:    l.rawPrice(),
		FactorLocation: l.rawLocation(),
		FactorProperty: l.rawProperty(),
		FactorExternal: l.rawExternal(),
	}

	parts := make(map[Factor]Part, len(AllFactors))
	var total float64
	for _, f := range ActiveFactors {
		raw := raws[f]
		score := clamp(raw)
		p := Part{
			Raw:          raw,
			Score:        score,
			Clamped:      score != raw,
			Weight:       s.weights[f],
			Contribution: score * s.weights[f],
		}
		parts[f] = p
		total += p.Contribution
	}

	// The appreciation term weighs the raw rate, not a clamped sub-score.
	appreciation := Part{
		Raw:          l.appreciationRate,
		Score:        l.appreciationRate,
		Weight:       s.weights[FactorAppreciation],
		Contribution: l.appreciationRate * s.weights[FactorAppreciation],
	}
	parts[FactorAppreciation] = appreciation
	total += appreciation.Contribution

	return &Breakdown{
		Total:   total,
		Parts:   parts,
		Weights: s.Weights(),
	}, nil
}
