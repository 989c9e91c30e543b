package main

import (
	"github.com/spf13/cobra"

	"github.com/sawpanic/propscore/internal/report"
	"github.com/sawpanic/propscore/internal/scoring"
)

// demoParams is the reference listing: a 150 m², 4 bed / 3 bath home priced
// slightly under the area average, in a good location with good schools.
func demoParams() scoring.Params {
	return scoring.Params{
		Price:         500000,
		AreaM2:        150,
		PricePerM2:    3300,
		AvgPricePerM2: 3500,
		LocationScore: 80,
		SchoolRating:  9,
		Size:          150,
		Bedrooms:      4,
		Bathrooms:     3,
	}
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Score the built-in reference listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := scoring.NewListing(demoParams())
			if err != nil {
				return err
			}
			total, err := scoring.NewDefaultScorer().Total(listing)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", report.TotalLine(total))
			return nil
		},
	}
}
