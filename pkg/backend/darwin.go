package backend

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/arc-language/buildcfg/pkg/core"
)

// DarwinBackend configures builds on macOS
type DarwinBackend struct {
	base
}

// NewDarwinBackend creates a backend searching Homebrew, MacPorts and Fink prefixes
func NewDarwinBackend(opts *Options) *DarwinBackend {
	if opts == nil {
		opts = &Options{}
	}
	b := &DarwinBackend{base: newBase(core.BuildDarwin, opts)}
	b.usePkgConfig = true
	b.useConfigProgram = true
	// Cocoa and friends arrive through sdl-config's linker flags
	b.sysLibs = map[string][]string{}
	return b
}

// SDLVersion returns the version reported by sdl-config or pkg-config
func (b *DarwinBackend) SDLVersion(ctx context.Context, cfg *core.Config) (*semver.Version, error) {
	return b.toolVersion(ctx, cfg)
}

// InstallLibs returns nothing; frameworks and dylibs stay where the package manager put them
func (b *DarwinBackend) InstallLibs(ctx context.Context, cfg *core.Config) ([]string, error) {
	return nil, nil
}
