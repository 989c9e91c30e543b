package scoring

import (
	"testing"

	"pgregory.net/rapid"
)

func drawParams(t *rapid.T) Params {
	return Params{
		Price:            rapid.Float64Range(1, 5e6).Draw(t, "price"),
		AreaM2:           rapid.Float64Range(1, 1000).Draw(t, "area_m2"),
		PricePerM2:       rapid.Float64Range(1, 20000).Draw(t, "price_per_m2"),
		AvgPricePerM2:    rapid.Float64Range(1, 20000).Draw(t, "avg_price_per_m2"),
		LocationScore:    rapid.Float64Range(0, 100).Draw(t, "location_score"),
		SchoolRating:     rapid.Float64Range(0, 10).Draw(t, "school_rating"),
		Size:             rapid.Float64Range(0, 1000).Draw(t, "size"),
		Bedrooms:         rapid.IntRange(0, 10).Draw(t, "bedrooms"),
		Bathrooms:        rapid.Float64Range(0, 6).Draw(t, "bathrooms"),
		ConditionScore:   Float(rapid.Float64Range(0, 100).Draw(t, "condition_score")),
		RenovationCost:   Float(rapid.Float64Range(0, 500000).Draw(t, "renovation_cost")),
		AppreciationRate: Float(rapid.Float64Range(-10, 30).Draw(t, "appreciation_rate")),
		CrimeRate:        Float(rapid.Float64Range(0, 100).Draw(t, "crime_rate")),
	}
}

func mustListing(t *rapid.T, p Params) Listing {
	l, err := NewListing(p)
	if err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	return l
}

func score(t *rapid.T, sub func() (float64, error)) float64 {
	v, err := sub()
	if err != nil {
		t.Fatalf("sub-score failed: %v", err)
	}
	return v
}

func inRange(v float64) bool { return v >= 0 && v <= 100 }

func TestSubScoresStayInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := mustListing(t, drawParams(t))
		for name, sub := range map[string]func() (float64, error){
			"price":    l.PriceScore,
			"location": l.LocationScore,
			"property": l.PropertyScore,
			"external": l.ExternalScore,
		} {
			if v := score(t, sub); !inRange(v) {
				t.Fatalf("%s score %v outside [0,100]", name, v)
			}
		}
	})
}

func TestTotalStaysInRange(t *testing.T) {
	scorer := NewDefaultScorer()
	rapid.Check(t, func(t *rapid.T) {
		total, err := scorer.Total(mustListing(t, drawParams(t)))
		if err != nil {
			t.Fatal(err)
		}
		// Weights sum to 1 within float error.
		if total < 0 || total > 100+1e-9 {
			t.Fatalf("total %v outside [0,100]", total)
		}
	})
}

func TestMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := drawParams(t)
		base := mustListing(t, p)

		higherPrice := p
		higherPrice.PricePerM2 = p.PricePerM2 + rapid.Float64Range(0, 10000).Draw(t, "price_step")
		if score(t, mustListing(t, higherPrice).PriceScore) > score(t, base.PriceScore) {
			t.Fatal("raising price_per_m2 raised the price score")
		}

		moreCrime := p
		moreCrime.CrimeRate = Float(rapid.Float64Range(*p.CrimeRate, 100).Draw(t, "crime_up"))
		if score(t, mustListing(t, moreCrime).LocationScore) > score(t, base.LocationScore) {
			t.Fatal("raising crime_rate raised the location score")
		}

		betterSchools := p
		betterSchools.SchoolRating = rapid.Float64Range(p.SchoolRating, 10).Draw(t, "school_up")
		if score(t, mustListing(t, betterSchools).LocationScore) < score(t, base.LocationScore) {
			t.Fatal("raising school_rating lowered the location score")
		}

		moreRenovation := p
		moreRenovation.RenovationCost = Float(*p.RenovationCost + rapid.Float64Range(0, 200000).Draw(t, "renovation_step"))
		if score(t, mustListing(t, moreRenovation).PropertyScore) > score(t, base.PropertyScore) {
			t.Fatal("raising renovation_cost raised the property score")
		}

		moreAppreciation := p
		moreAppreciation.AppreciationRate = Float(*p.AppreciationRate + rapid.Float64Range(0, 20).Draw(t, "appreciation_step"))
		if score(t, mustListing(t, moreAppreciation).ExternalScore) < score(t, base.ExternalScore) {
			t.Fatal("raising appreciation_rate lowered the external score")
		}
	})
}
