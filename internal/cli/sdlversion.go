// internal/cli/sdlversion.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sdlVersionCmd = &cobra.Command{
	Use:   "sdl-version",
	Short: "Print the installed SDL version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, bs, err := newResolver()
		if err != nil {
			return err
		}

		v, err := resolver.SDLGetVersion(context.Background(), bs, config)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), v.String())
		return nil
	},
}
