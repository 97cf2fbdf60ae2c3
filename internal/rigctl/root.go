// Package rigctl implements the command line companion for the advisory
// service. It analyzes build files in-process or against a running server.
package rigctl

import (
	"github.com/spf13/cobra"
)

var serverURL string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rigctl",
		Short: "PC build analysis from the command line",
		Long: `rigctl analyzes PC build files: component scores, compatibility
issues, bottlenecks and upgrade plans.

Builds are YAML files listing the selected parts, for example:

    usage_profile: gaming
    cpu:
      id: cpu-1
      category: cpu
      manufacturer: AMD
      model: Ryzen 5 7600
      price: 32000
    memory:
      - id: mem-1
        category: memory
        price: 9000
        specifications:
          memoryType: ddr5
          capacity: 16

Without --server the analysis runs in-process against the embedded
benchmark catalog; with --server the build is submitted to a running
rigmate instance.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "", "base URL of a running rigmate server (default: analyze in-process)")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newCompatCmd())
	root.AddCommand(newPlanCmd())
	return root
}

// Execute runs the rigctl command tree.
func Execute() error {
	return newRootCmd().Execute()
}
