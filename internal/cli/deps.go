// internal/cli/deps.go
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/arc-language/buildcfg/pkg/dep"
	"github.com/arc-language/buildcfg/pkg/env"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Probe for every known library",
	Long:  `Configure each known library and show where it was found and the flags it contributes.`,
	Args:  cobra.NoArgs,
	RunE:  runDeps,
}

func runDeps(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	resolver, bs, err := newResolver()
	if err != nil {
		return err
	}

	deps, err := resolver.GetDependencies(ctx, bs, config)
	if err != nil {
		return errors.Wrap(err, "configuring dependencies")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Build system: %s\n\n", bs)
	for _, id := range dep.IDs() {
		d := deps[id]
		if !d.Found {
			fmt.Fprintf(out, "  ✗ %-10s not found\n", d.Name)
			continue
		}
		flags := env.Flags(d.IncludeDirs, d.LibraryDirs, d.Libs)
		fmt.Fprintf(out, "  ✓ %-10s via %s\n", d.Name, d.Via)
		fmt.Fprintf(out, "      %s\n", flags)
		if extra := append(append([]string{}, d.CFlags...), d.LFlags...); len(extra) > 0 {
			fmt.Fprintf(out, "      %s\n", strings.Join(extra, " "))
		}
	}

	return nil
}
