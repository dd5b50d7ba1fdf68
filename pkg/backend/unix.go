package backend

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/dep"
)

// UnixBackend configures builds on Linux and the BSDs
type UnixBackend struct {
	base
}

// NewUnixBackend creates a backend probing with pkg-config, *-config scripts and the FHS layout
func NewUnixBackend(opts *Options) *UnixBackend {
	if opts == nil {
		opts = &Options{}
	}
	b := &UnixBackend{base: newBase(core.BuildUnix, opts)}
	b.usePkgConfig = true
	b.useConfigProgram = true
	b.sysLibs = map[string][]string{
		"sdlext.scrap": {"X11"},
	}
	return b
}

// SDLVersion returns the version reported by sdl-config or pkg-config
func (b *UnixBackend) SDLVersion(ctx context.Context, cfg *core.Config) (*semver.Version, error) {
	return b.toolVersion(ctx, cfg)
}

// InstallLibs returns nothing; shared libraries come from the system package manager
func (b *UnixBackend) InstallLibs(ctx context.Context, cfg *core.Config) ([]string, error) {
	return nil, nil
}

func sdlSpec() dep.Spec {
	return dep.SDL.Spec()
}
