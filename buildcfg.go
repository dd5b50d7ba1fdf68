// buildcfg.go
package buildcfg

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/arc-language/buildcfg/pkg/backend"
	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/dep"
	"github.com/arc-language/buildcfg/pkg/registry"
)

// Re-export core types for convenience
type (
	BuildSystem  = core.BuildSystem
	Config       = core.Config
	Module       = core.Module
	Dependency   = dep.Dependency
	Backend      = backend.Backend
	BackendTable = backend.Table
)

// Re-export build system constants
const (
	BuildWin    = core.BuildWin
	BuildMsys   = core.BuildMsys
	BuildUnix   = core.BuildUnix
	BuildDarwin = core.BuildDarwin
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Dependencies holds the configured descriptor of every known library
type Dependencies map[dep.ID]*dep.Dependency

// Lookup finds a descriptor by name, ignoring case
func (d Dependencies) Lookup(name string) (*dep.Dependency, bool) {
	id, ok := dep.ParseID(name)
	if !ok {
		return nil, false
	}
	dd, ok := d[id]
	return dd, ok
}

// Resolver configures library dependencies and attaches them to build modules
type Resolver struct {
	backends backend.Table
	logger   *log.Logger
	hints    *registry.Registry
	manager  string
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the logger used for probe and module diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithRegistry enables install hints for missing libraries, phrased for manager (apt, brew, ...)
func WithRegistry(reg *registry.Registry, manager string) Option {
	return func(r *Resolver) {
		r.hints = reg
		r.manager = manager
	}
}

// NewResolver creates a resolver over the given backend table
func NewResolver(backends backend.Table, opts ...Option) *Resolver {
	r := &Resolver{backends: backends}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// GetDependencies builds a descriptor for every known library and probes for each.
// Libraries that are not found are returned with Found unset.
func (r *Resolver) GetDependencies(ctx context.Context, bs BuildSystem, cfg *Config) (Dependencies, error) {
	b, err := r.backends.Get(bs)
	if err != nil {
		return nil, &Error{Op: "get dependencies", Err: err}
	}
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	prober := b.Prober(cfg)
	deps := make(Dependencies, dep.Count)
	for _, id := range dep.IDs() {
		d := dep.New(id, prober, r.logger)
		d.Configure(ctx, cfg)
		deps[id] = d
	}

	return deps, nil
}

// SDLGetVersion returns the version of the installed SDL library
func (r *Resolver) SDLGetVersion(ctx context.Context, bs BuildSystem, cfg *Config) (*semver.Version, error) {
	b, err := r.backends.Get(bs)
	if err != nil {
		return nil, &Error{Op: "sdl version", Err: err}
	}
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	return b.SDLVersion(ctx, cfg)
}

// GetSysLibs returns system-specific libraries a module must be linked with
func (r *Resolver) GetSysLibs(bs BuildSystem, module string) ([]string, error) {
	b, err := r.backends.Get(bs)
	if err != nil {
		return nil, &Error{Op: "sys libs", Module: module, Err: err}
	}
	return b.SysLibs(module), nil
}

// GetInstallLibs returns the library files that must be bundled with the build
func (r *Resolver) GetInstallLibs(ctx context.Context, bs BuildSystem, cfg *Config) ([]string, error) {
	b, err := r.backends.Get(bs)
	if err != nil {
		return nil, &Error{Op: "install libs", Err: err}
	}
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	return b.InstallLibs(ctx, cfg)
}

// PrepareModules adds compiler and linker information to every module for the
// libraries it relies on.
//
// A required library that cannot be found disables the module (CanBuild is
// cleared); an optional one that cannot be found is skipped and the module is
// built without it. Naming a library that is not declared at all is a
// configuration error and aborts preparation.
func (r *Resolver) PrepareModules(ctx context.Context, bs BuildSystem, modules []*Module, cfg *Config) (Dependencies, error) {
	b, err := r.backends.Get(bs)
	if err != nil {
		return nil, &Error{Op: "prepare modules", Err: err}
	}

	deps, err := r.GetDependencies(ctx, bs, cfg)
	if err != nil {
		return nil, err
	}

	for _, mod := range modules {
		mod.CanBuild = true

		for _, name := range mod.Depends {
			name = strings.ToLower(name)

			d, ok := deps.Lookup(name)
			if !ok {
				return nil, unknownDependency(mod.Name, name)
			}

			attached, err := d.SetupModule(mod, false)
			if err != nil {
				return nil, &Error{Op: "prepare modules", Module: mod.Name, Err: err}
			}
			if !attached {
				r.hint(d)
			}
		}

		for _, name := range mod.OptionalDep {
			d, ok := deps.Lookup(name)
			if !ok {
				continue
			}
			if _, err := d.SetupModule(mod, true); err != nil {
				return nil, &Error{Op: "prepare modules", Module: mod.Name, Err: err}
			}
		}

		mod.Libs = append(mod.Libs, b.SysLibs(mod.Name)...)
	}

	return deps, nil
}

func (r *Resolver) hint(d *dep.Dependency) {
	if h := r.hints.Hint(d.Name, r.manager); h != "" {
		r.logger.Info("hint", "dependency", d.Name, "hint", h)
	}
}
