// internal/cli/config.go
package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/buildcfg/pkg/core"
)

var saveConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after flags and BUILDCFG_* variables are applied.

With --save the result is written back to the config file.

Examples:
  buildcfg config
  buildcfg config --build-system=msys --save`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&saveConfig, "save", false, "write the effective configuration to the config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if saveConfig {
		if err := core.SaveConfig(config, cfgFile); err != nil {
			return err
		}
		logger.Info("configuration saved", "path", cfgFile)
		return nil
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
