package backend

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/arc-language/buildcfg/pkg/core"
)

// MsysBackend configures MinGW builds driven from an MSYS shell
type MsysBackend struct {
	base
}

// NewMsysBackend creates a backend that can run the shell-script config tools MSYS provides
func NewMsysBackend(opts *Options) *MsysBackend {
	if opts == nil {
		opts = &Options{}
	}
	b := &MsysBackend{base: newBase(core.BuildMsys, opts)}
	b.usePkgConfig = true
	b.useConfigProgram = true
	b.sysLibs = windowsSysLibs()
	return b
}

// SDLVersion returns the version reported by sdl-config, falling back to SDL_version.h
func (b *MsysBackend) SDLVersion(ctx context.Context, cfg *core.Config) (*semver.Version, error) {
	v, err := b.toolVersion(ctx, cfg)
	if err == nil {
		return v, nil
	}
	b.logger.Debug("sdl-config version failed, reading header", "err", err)
	return headerVersion(b.Layout(cfg))
}

// InstallLibs returns the DLLs to ship next to the built modules
func (b *MsysBackend) InstallLibs(ctx context.Context, cfg *core.Config) ([]string, error) {
	return installDLLs(b.Layout(cfg), cfg, b.logger)
}
