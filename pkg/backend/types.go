package backend

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/env"
	"github.com/arc-language/buildcfg/pkg/probe"
)

// ErrUnknownBuildSystem indicates no backend is registered for a build system
var ErrUnknownBuildSystem = errors.New("unknown build system")

// Backend defines the interface that all build-system backends must implement
type Backend interface {
	// Name returns the build system this backend serves
	Name() core.BuildSystem

	// Prober returns the toolchain used to locate libraries
	Prober(cfg *core.Config) *probe.Toolchain

	// SDLVersion returns the version of the installed SDL library
	SDLVersion(ctx context.Context, cfg *core.Config) (*semver.Version, error)

	// SysLibs returns system libraries a module must additionally link against
	SysLibs(module string) []string

	// InstallLibs returns library files that must be bundled with the build
	InstallLibs(ctx context.Context, cfg *core.Config) ([]string, error)
}

// Table maps each build system to its backend
type Table map[core.BuildSystem]Backend

// Options configures backend construction
type Options struct {
	// Runner executes pkg-config and *-config scripts. Defaults to probe.ExecRunner.
	Runner probe.Runner

	// Logger for probe diagnostics. Defaults to log.Default().
	Logger *log.Logger
}

// DefaultTable returns a backend for every known build system
func DefaultTable(opts *Options) Table {
	if opts == nil {
		opts = &Options{}
	}
	return Table{
		core.BuildWin:    NewWinBackend(opts),
		core.BuildMsys:   NewMsysBackend(opts),
		core.BuildUnix:   NewUnixBackend(opts),
		core.BuildDarwin: NewDarwinBackend(opts),
	}
}

// Get returns the backend for bs
func (t Table) Get(bs core.BuildSystem) (Backend, error) {
	b, ok := t[bs]
	if !ok || b == nil {
		return nil, errors.Wrapf(ErrUnknownBuildSystem, "%q", string(bs))
	}
	return b, nil
}

// base carries what every backend shares
type base struct {
	system           core.BuildSystem
	runner           probe.Runner
	logger           *log.Logger
	usePkgConfig     bool
	useConfigProgram bool
	sysLibs          map[string][]string
}

func newBase(system core.BuildSystem, opts *Options) base {
	b := base{
		system: system,
		runner: opts.Runner,
		logger: opts.Logger,
	}
	if b.runner == nil {
		b.runner = probe.ExecRunner{}
	}
	if b.logger == nil {
		b.logger = log.Default()
	}
	return b
}

// Name returns the build system
func (b *base) Name() core.BuildSystem {
	return b.system
}

// Layout returns the search layout with cfg's prefix and extra directories applied
func (b *base) Layout(cfg *core.Config) env.Layout {
	prefix := ""
	if cfg != nil {
		prefix = cfg.Prefix
	}
	return env.LayoutFor(b.system, prefix).WithConfig(cfg)
}

// Prober returns the toolchain used to locate libraries
func (b *base) Prober(cfg *core.Config) *probe.Toolchain {
	return &probe.Toolchain{
		Runner:           b.runner,
		Layout:           b.Layout(cfg),
		UsePkgConfig:     b.usePkgConfig,
		UseConfigProgram: b.useConfigProgram,
		Logger:           b.logger,
	}
}

// SysLibs returns system libraries for module
func (b *base) SysLibs(module string) []string {
	libs := b.sysLibs[module]
	if len(libs) == 0 {
		return nil
	}
	return append([]string(nil), libs...)
}

// toolVersion asks sdl-config, then pkg-config, for the SDL version
func (b *base) toolVersion(ctx context.Context, cfg *core.Config) (*semver.Version, error) {
	sdl := sdlSpec()
	v, err := b.Prober(cfg).Version(ctx, sdl.ConfigProgram, sdl.PkgConfigName)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: SDL version", b.system)
	}
	return v, nil
}
