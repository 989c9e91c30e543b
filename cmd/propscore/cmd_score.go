package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/propscore/internal/config"
	"github.com/sawpanic/propscore/internal/report"
	"github.com/sawpanic/propscore/internal/scoring"
)

func newScoreCmd(cfg *config.Config) *cobra.Command {
	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Score one listing",
		Long: `Score one listing from --file (YAML or JSON) and/or attribute flags.
Flags override values read from the file. Optional attributes left unset use
their defaults: condition 80, renovation 0, appreciation 3, crime 50.`,
		Example: `  propscore score --price 500000 --area-m2 150 --price-per-m2 3300 \
    --avg-price-per-m2 3500 --location-score 80 --school-rating 9 \
    --size 150 --bedrooms 4 --bathrooms 3
  propscore score --file listing.yaml --weight price=0.5,external=0 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd)
		},
	}

	scoreCmd.Flags().String("file", "", "Listing document (YAML or JSON)")
	addWeightFlags(scoreCmd, cfg)
	scoreCmd.Flags().String("format", "auto", "Output format (auto|text|json|csv)")
	scoreCmd.Flags().AddFlagSet(listingFlagSet())

	return scoreCmd
}

func addWeightFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().String("weights", cfg.WeightsPath, "Weights YAML file (defaults when empty)")
	cmd.Flags().StringSlice("weight", nil, "Weight override factor=value (repeatable)")
}

func resolveWeights(cmd *cobra.Command) (scoring.Weights, error) {
	path, _ := cmd.Flags().GetString("weights")
	pairs, _ := cmd.Flags().GetStringSlice("weight")

	overrides, err := config.ParseWeightOverrides(pairs)
	if err != nil {
		return nil, err
	}
	return config.ResolveWeights(path, overrides)
}

func runScore(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("file")
	formatFlag, _ := cmd.Flags().GetString("format")

	format, err := report.ParseFormat(formatFlag, isTerminal(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	weights, err := resolveWeights(cmd)
	if err != nil {
		return err
	}
	scorer, err := scoring.NewScorer(weights)
	if err != nil {
		return err
	}

	var params scoring.Params
	if file != "" {
		params, err = config.LoadListing(file)
		if err != nil {
			return err
		}
	}
	params, err = applyListingFlags(cmd.Flags(), params, file != "")
	if err != nil {
		return err
	}

	listing, err := scoring.NewListing(params)
	if err != nil {
		return err
	}

	breakdown, err := scorer.Score(listing)
	if err != nil {
		return err
	}

	log.Debug().
		Str("file", file).
		Float64("total", breakdown.Total).
		Msg("listing scored")

	return report.Write(cmd.OutOrStdout(), breakdown, format)
}
