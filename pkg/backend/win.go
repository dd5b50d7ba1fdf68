package backend

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/arc-language/buildcfg/pkg/core"
)

// WinBackend configures native Windows builds against unpacked SDK trees
type WinBackend struct {
	base
}

// NewWinBackend creates a backend that relies on directory search only
func NewWinBackend(opts *Options) *WinBackend {
	if opts == nil {
		opts = &Options{}
	}
	b := &WinBackend{base: newBase(core.BuildWin, opts)}
	b.sysLibs = windowsSysLibs()
	return b
}

// SDLVersion reads the version macros from SDL_version.h
func (b *WinBackend) SDLVersion(ctx context.Context, cfg *core.Config) (*semver.Version, error) {
	return headerVersion(b.Layout(cfg))
}

// InstallLibs returns the DLLs to ship next to the built modules
func (b *WinBackend) InstallLibs(ctx context.Context, cfg *core.Config) ([]string, error) {
	return installDLLs(b.Layout(cfg), cfg, b.logger)
}

func windowsSysLibs() map[string][]string {
	return map[string][]string{
		"sdlext.scrap": {"user32", "gdi32"},
	}
}
