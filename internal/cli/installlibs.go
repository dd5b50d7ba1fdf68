// internal/cli/installlibs.go
package cli

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/arc-language/buildcfg/pkg/bundle"
)

var bundlePath string

var installLibsCmd = &cobra.Command{
	Use:   "install-libs",
	Short: "List libraries that must ship with the build",
	Long: `List the runtime libraries to bundle with the build on this build system.

With --bundle the libraries are also packed into an xz-compressed NAR archive.`,
	Args: cobra.NoArgs,
	RunE: runInstallLibs,
}

func init() {
	installLibsCmd.Flags().StringVar(&bundlePath, "bundle", "", "write the libraries to this .nar.xz archive")
}

func runInstallLibs(cmd *cobra.Command, args []string) error {
	resolver, bs, err := newResolver()
	if err != nil {
		return err
	}

	libs, err := resolver.GetInstallLibs(context.Background(), bs, config)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(libs) == 0 {
		fmt.Fprintf(out, "No libraries to install for %s\n", bs)
		return nil
	}
	for _, lib := range libs {
		fmt.Fprintln(out, lib)
	}

	if bundlePath != "" {
		if err := bundle.WriteFile(bundlePath, libs); err != nil {
			return errors.Wrap(err, "writing bundle")
		}
		logger.Info("bundle written", "path", bundlePath, "libraries", len(libs))
	}

	return nil
}
