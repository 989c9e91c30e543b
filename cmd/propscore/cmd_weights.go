package main

import (
	"github.com/spf13/cobra"

	"github.com/sawpanic/propscore/internal/config"
	"github.com/sawpanic/propscore/internal/scoring"
)

func newWeightsCmd(cfg *config.Config) *cobra.Command {
	weightsCmd := &cobra.Command{
		Use:   "weights",
		Short: "Show the effective weight table",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := resolveWeights(cmd)
			if err != nil {
				return err
			}
			for _, f := range scoring.AllFactors {
				printf(cmd, "  %-13s %.3f\n", f, weights[f])
			}
			printf(cmd, "  %-13s %.3f\n", "active sum", weights.Sum())
			return nil
		},
	}
	addWeightFlags(weightsCmd, cfg)
	return weightsCmd
}
