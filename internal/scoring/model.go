package scoring

import (
	"errors"
	"fmt"
	"math"
)

// Optional attribute defaults applied when Params leaves them nil.
const (
	DefaultConditionScore   = 80.0
	DefaultRenovationCost   = 0.0
	DefaultAppreciationRate = 3.0
	DefaultCrimeRate        = 50.0
)

var (
	// ErrInvalidInput marks a precondition the formulas depend on, such as a
	// positive area average price per m².
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidListing marks an attribute outside its domain.
	ErrInvalidListing = errors.New("invalid listing data")
)

// ValidationError names the attribute that failed construction.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string

	kind error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %g)", e.kind, e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.kind }

// Params is the constructor contract for a Listing. Optional attributes are
// pointers; nil selects the documented default.
type Params struct {
	Price         float64 `yaml:"price" json:"price"`
	AreaM2        float64 `yaml:"area_m2" json:"area_m2"`
	PricePerM2    float64 `yaml:"price_per_m2" json:"price_per_m2"`
	AvgPricePerM2 float64 `yaml:"avg_price_per_m2" json:"avg_price_per_m2"`
	LocationScore float64 `yaml:"location_score" json:"location_score"`
	SchoolRating  float64 `yaml:"school_rating" json:"school_rating"`

	// Informational only, never used by a formula.
	Size      float64 `yaml:"size" json:"size"`
	Bedrooms  int     `yaml:"bedrooms" json:"bedrooms"`
	Bathrooms float64 `yaml:"bathrooms" json:"bathrooms"`

	ConditionScore   *float64 `yaml:"condition_score,omitempty" json:"condition_score,omitempty"`
	RenovationCost   *float64 `yaml:"renovation_cost,omitempty" json:"renovation_cost,omitempty"`
	AppreciationRate *float64 `yaml:"appreciation_rate,omitempty" json:"appreciation_rate,omitempty"`
	CrimeRate        *float64 `yaml:"crime_rate,omitempty" json:"crime_rate,omitempty"`
}

// Float returns a pointer to v, for filling optional Params fields.
func Float(v float64) *float64 { return &v }

// Listing is an immutable, validated set of listing attributes. Build one
// with NewListing; the zero value is rejected by the Scorer.
type Listing struct {
	price            float64
	areaM2           float64
	pricePerM2       float64
	avgPricePerM2    float64
	locationScore    float64
	schoolRating     float64
	size             float64
	bedrooms         int
	bathrooms        float64
	conditionScore   float64
	renovationCost   float64
	appreciationRate float64
	crimeRate        float64

	valid bool
}

// NewListing applies defaults and validates every attribute.
func NewListing(p Params) (Listing, error) {
	l := Listing{
		price:            p.Price,
		areaM2:           p.AreaM2,
		pricePerM2:       p.PricePerM2,
		avgPricePerM2:    p.AvgPricePerM2,
		locationScore:    p.LocationScore,
		schoolRating:     p.SchoolRating,
		size:             p.Size,
		bedrooms:         p.Bedrooms,
		bathrooms:        p.Bathrooms,
		conditionScore:   valueOr(p.ConditionScore, DefaultConditionScore),
		renovationCost:   valueOr(p.RenovationCost, DefaultRenovationCost),
		appreciationRate: valueOr(p.AppreciationRate, DefaultAppreciationRate),
		crimeRate:        valueOr(p.CrimeRate, DefaultCrimeRate),
	}

	if err := l.validate(); err != nil {
		return Listing{}, err
	}
	l.valid = true
	return l, nil
}

func (l Listing) validate() error {
	// Divisor first so a zero average always reports ErrInvalidInput.
	if !(l.avgPricePerM2 > 0) || math.IsInf(l.avgPricePerM2, 0) {
		return &ValidationError{Field: "avg_price_per_m2", Value: l.avgPricePerM2, Reason: "must be positive", kind: ErrInvalidInput}
	}

	checks := []struct {
		field    string
		value    float64
		min, max float64
		minOpen  bool
	}{
		{"price", l.price, 0, math.Inf(1), true},
		{"area_m2", l.areaM2, 0, math.Inf(1), true},
		{"price_per_m2", l.pricePerM2, 0, math.Inf(1), true},
		{"location_score", l.locationScore, 0, 100, false},
		{"school_rating", l.schoolRating, 0, 10, false},
		{"size", l.size, 0, math.Inf(1), false},
		{"bedrooms", float64(l.bedrooms), 0, math.Inf(1), false},
		{"bathrooms", l.bathrooms, 0, math.Inf(1), false},
		{"condition_score", l.conditionScore, 0, 100, false},
		{"renovation_cost", l.renovationCost, 0, math.Inf(1), false},
		{"appreciation_rate", l.appreciationRate, math.Inf(-1), math.Inf(1), false},
		{"crime_rate", l.crimeRate, 0, 100, false},
	}

	for _, c := range checks {
		switch {
		case math.IsNaN(c.value) || math.IsInf(c.value, 0):
			return &ValidationError{Field: c.field, Value: c.value, Reason: "must be finite", kind: ErrInvalidListing}
		case c.minOpen && c.value <= c.min:
			return &ValidationError{Field: c.field, Value: c.value, Reason: "must be positive", kind: ErrInvalidListing}
		case c.value < c.min:
			return &ValidationError{Field: c.field, Value: c.value, Reason: fmt.Sprintf("must be at least %g", c.min), kind: ErrInvalidListing}
		case c.value > c.max:
			return &ValidationError{Field: c.field, Value: c.value, Reason: fmt.Sprintf("must be at most %g", c.max), kind: ErrInvalidListing}
		}
	}
	return nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (l Listing) Price() float64 { return l.price }
func (l Listing) AreaM2() float64 { return l.areaM2 }
func (l Listing) PricePerM2() float64 { return l.pricePerM2 }
func (l Listing) AvgPricePerM2() float64 { return l.avgPricePerM2 }
func (l Listing) LocationInput() float64 { return l.locationScore }
func (l Listing) SchoolRating() float64 { return l.schoolRating }
func (l Listing) Size() float64 { return l.size }
func (l Listing) Bedrooms() int { return l.bedrooms }
func (l Listing) Bathrooms() float64 { return l.bathrooms }
func (l Listing) ConditionScore() float64 { return l.conditionScore }
func (l Listing) RenovationCost() float64 { return l.renovationCost }
func (l Listing) AppreciationRate() float64 { return l.appreciationRate }
func (l Listing) CrimeRate() float64 { return l.crimeRate }

// Valid reports whether the listing came out of NewListing.
func (l Listing) Valid() bool { return l.valid }
