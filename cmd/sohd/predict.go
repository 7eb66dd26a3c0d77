package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sohd/internal/collector"
	"sohd/pkg/types"
)

func newPredictCmd(root *rootOptions) *cobra.Command {
	var (
		req types.PredictRequest
		cf  collectorFlags
	)
	def := collector.DefaultRequest()
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Submit one prediction request and print the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if issues := collector.Validate(req); len(issues) > 0 {
				msgs := make([]string, len(issues))
				for i, is := range issues {
					msgs[i] = is.String()
				}
				return fmt.Errorf("out of range: %s", strings.Join(msgs, "; "))
			}
			res := cf.client(cmd, cfg.Collector).Submit(cmd.Context(), req)
			if err := res.Render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if res.Kind != collector.KindSuccess {
				return fmt.Errorf("prediction failed (%s)", res.Kind)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&req.Cycle, "cycle", def.Cycle, "Charge/discharge cycle count (1-2000)")
	f.Float64Var(&req.AvgTempDischargeSmoothed, "temp", def.AvgTempDischargeSmoothed, "Average discharge temperature in °C (10-60)")
	f.Float64Var(&req.InternalResistanceSmoothed, "resistance", def.InternalResistanceSmoothed, "Internal resistance in ohm (0.001-0.05)")
	cf.register(cmd)
	return cmd
}
