package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sawpanic/propscore/internal/scoring"
)

// Required attributes when no listing file is given.
var requiredListingFlags = []string{
	"price", "area-m2", "price-per-m2", "avg-price-per-m2",
	"location-score", "school-rating", "size", "bedrooms", "bathrooms",
}

func listingFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("listing", pflag.ContinueOnError)
	fs.Float64("price", 0, "Asking price (currency, >0)")
	fs.Float64("area-m2", 0, "Living area in m² (>0)")
	fs.Float64("price-per-m2", 0, "Listing price per m² (>0)")
	fs.Float64("avg-price-per-m2", 0, "Area average price per m² (>0)")
	fs.Float64("location-score", 0, "Base location quality (0-100)")
	fs.Float64("school-rating", 0, "School rating (0-10)")
	fs.Float64("size", 0, "House size (informational)")
	fs.Int("bedrooms", 0, "Bedrooms (informational)")
	fs.Float64("bathrooms", 0, "Bathrooms (informational)")
	fs.Float64("condition-score", scoring.DefaultConditionScore, "Physical condition (0-100)")
	fs.Float64("renovation-cost", scoring.DefaultRenovationCost, "Expected renovation cost (>=0)")
	fs.Float64("appreciation-rate", scoring.DefaultAppreciationRate, "Annual appreciation in percent")
	fs.Float64("crime-rate", scoring.DefaultCrimeRate, "Crime rate (0-100)")
	return fs
}

// applyListingFlags overlays explicitly set flags on base. Unset optional
// flags leave their field nil so defaults come from the scoring package.
func applyListingFlags(fs *pflag.FlagSet, base scoring.Params, fromFile bool) (scoring.Params, error) {
	if !fromFile {
		var missing []string
		for _, name := range requiredListingFlags {
			if !fs.Changed(name) {
				missing = append(missing, "--"+name)
			}
		}
		if len(missing) > 0 {
			return base, fmt.Errorf("%w: missing %s (or pass --file)", scoring.ErrInvalidListing, strings.Join(missing, ", "))
		}
	}

	p := base
	floats := map[string]*float64{
		"price":            &p.Price,
		"area-m2":          &p.AreaM2,
		"price-per-m2":     &p.PricePerM2,
		"avg-price-per-m2": &p.AvgPricePerM2,
		"location-score":   &p.LocationScore,
		"school-rating":    &p.SchoolRating,
		"size":             &p.Size,
		"bathrooms":        &p.Bathrooms,
	}
	for name, dst := range floats {
		if fs.Changed(name) {
			v, err := fs.GetFloat64(name)
			if err != nil {
				return base, err
			}
			*dst = v
		}
	}

	if fs.Changed("bedrooms") {
		v, err := fs.GetInt("bedrooms")
		if err != nil {
			return base, err
		}
		p.Bedrooms = v
	}

	optional := map[string]**float64{
		"condition-score":   &p.ConditionScore,
		"renovation-cost":   &p.RenovationCost,
		"appreciation-rate": &p.AppreciationRate,
		"crime-rate":        &p.CrimeRate,
	}
	for name, dst := range optional {
		if fs.Changed(name) {
			v, err := fs.GetFloat64(name)
			if err != nil {
				return base, err
			}
			*dst = scoring.Float(v)
		}
	}

	return p, nil
}
