package rigctl

import (
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <build.yaml>",
		Short: "Generate upgrade plans for a build file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadBuild(args[0])
			if err != nil {
				return err
			}
			r, err := newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.close()

			plans, err := r.recommend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printPlans(plans)
			return nil
		},
	}
}
