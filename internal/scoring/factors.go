package scoring

import (
	"fmt"
	"math"
)

// ReferenceAreaM2 is the home size the property score is measured against
// (about 2000 sqft).
const ReferenceAreaM2 = 185.0

var errNotBuilt = fmt.Errorf("%w: listing was not built with NewListing", ErrInvalidInput)

const (
	crimeWeight       = 0.5
	schoolWeight      = 0.3
	renovationScale   = 100000.0
	appreciationPoint = 5.0
)

// PriceScore rewards listings priced below the area average. It is 0 at or
// above the average and rises linearly as price_per_m2 falls below it.
func (l Listing) PriceScore() (float64, error) { return l.subScore(l.rawPrice) }

// LocationScore adds a crime bonus (max 50) and a school bonus (max 30) to
// the base location input. Typical inputs land around 80..130 before the
// clamp, so saturating at 100 is the normal case.
func (l Listing) LocationScore() (float64, error) { return l.subScore(l.rawLocation) }

// PropertyScore measures size against ReferenceAreaM2 and subtracts
// condition and renovation penalties.
func (l Listing) PropertyScore() (float64, error) { return l.subScore(l.rawProperty) }

// ExternalScore gives 5 points per percent of annual appreciation.
func (l Listing) ExternalScore() (float64, error) { return l.subScore(l.rawExternal) }

// subScore refuses listings that skipped NewListing; a zero Listing has a
// zero average price and would divide by it.
func (l Listing) subScore(raw func() float64) (float64, error) {
	if !l.Valid() {
		return 0, errNotBuilt
	}
	return clamp(raw()), nil
}

func (l Listing) rawPrice() float64 {
	return 100 - (l.pricePerM2/l.avgPricePerM2)*100
}

func (l Listing) rawLocation() float64 {
	crimeBonus := (100 - l.crimeRate) * crimeWeight
	schoolBonus := (l.schoolRating / 10) * 100 * schoolWeight
	return l.locationScore + crimeBonus + schoolBonus
}

func (l Listing) rawProperty() float64 {
	sizeScore := (l.areaM2 / ReferenceAreaM2) * 100
	conditionPenalty := 100 - l.conditionScore
	renovationPenalty := (l.renovationCost / renovationScale) * 100
	return sizeScore - conditionPenalty - renovationPenalty
}

func (l Listing) rawExternal() float64 {
	return l.appreciationRate * appreciationPoint
}

// clamp bounds v to [0, 100].
func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
