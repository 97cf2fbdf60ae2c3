package rigctl

import (
	"github.com/spf13/cobra"
)

func newCompatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compat <build.yaml>",
		Short: "Check part compatibility only",
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

			result, err := r.compat(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printCompatibility(result)
			return nil
		},
	}
}
