// internal/cli/modules.go
package cli

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/env"
)

var modulesYAML bool

var modulesCmd = &cobra.Command{
	Use:   "modules [module-list.toml]",
	Short: "Prepare build modules",
	Long: `Read a module list, attach compiler and linker flags for the libraries
each module depends on, and report which modules can be built.

Examples:
  buildcfg modules modules.toml
  buildcfg modules modules.toml --yaml > prepared.yaml
  buildcfg modules modules.toml --build-system=msys`,
	Args: cobra.ExactArgs(1),
	RunE: runModules,
}

func init() {
	modulesCmd.Flags().BoolVar(&modulesYAML, "yaml", false, "print prepared modules as YAML for the packaging step")
}

func runModules(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	modules, err := core.LoadModules(args[0])
	if err != nil {
		return err
	}

	resolver, bs, err := newResolver()
	if err != nil {
		return err
	}

	if _, err := resolver.PrepareModules(ctx, bs, modules, config); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if modulesYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(modules); err != nil {
			return errors.Wrap(err, "encoding modules")
		}
		return enc.Close()
	}

	buildable := 0
	for _, m := range modules {
		if !m.CanBuild {
			fmt.Fprintf(out, "✗ %s (disabled)\n", m.Name)
			continue
		}
		buildable++
		fmt.Fprintf(out, "✓ %s\n", m.Name)
		if flags := env.Flags(m.IncludeDirs, m.LibraryDirs, m.Libs); len(flags.All()) > 0 {
			fmt.Fprintf(out, "    %s\n", flags)
		}
	}
	fmt.Fprintf(out, "\n%d of %d modules can be built\n", buildable, len(modules))

	return nil
}
