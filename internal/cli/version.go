// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "buildcfg version "+rootCmd.Version)
		fmt.Fprintln(cmd.OutOrStdout(), "Native library configuration for module builds")
		fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/arc-language/buildcfg")
	},
}
