package rigctl

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rigmate/rigmate/internal/domain/types"
)

func newAnalyzeCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "analyze <build.yaml>",
		Short: "Run the full analysis over a build file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadBuild(args[0])
			if err != nil {
				return err
			}
			if profile != "" {
				p := types.UsageProfile(profile)
				switch p {
				case types.ProfileGaming, types.ProfileCreative, types.ProfileDevelopment,
					types.ProfileOffice, types.ProfileOther:
					cfg.UsageProfile = p
				default:
					return fmt.Errorf("unknown profile %q", profile)
				}
			}
			r, err := newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.close()

			result, err := r.analyze(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printAnalysis(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "override the build file's usage profile")
	return cmd
}
