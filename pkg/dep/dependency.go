package dep

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/probe"
)

// ErrNotConfigured is returned by SetupModule before Configure has run
var ErrNotConfigured = errors.New("dependency not configured")

// Prober finds a library on the host. Backends supply one per build system.
type Prober interface {
	PkgConfig(ctx context.Context, name string) (*probe.Result, error)
	ConfigProgram(ctx context.Context, program string) (*probe.Result, error)
	Locate(header, library string) (*probe.Result, error)
	HasHeader(header string, dirs ...string) bool
}

// Dependency is a library descriptor together with the result of probing for it
type Dependency struct {
	ID ID
	Spec

	IncludeDirs []string
	LibraryDirs []string
	Libs        []string
	CFlags      []string
	LFlags      []string
	Defines     []string

	Configured bool
	Found      bool
	Via        string // Strategy that found the library

	prober Prober
	logger *log.Logger
}

// New creates an unconfigured descriptor for id
func New(id ID, prober Prober, logger *log.Logger) *Dependency {
	if logger == nil {
		logger = log.Default()
	}
	return &Dependency{
		ID:     id,
		Spec:   id.Spec(),
		prober: prober,
		logger: logger,
	}
}

type strategy struct {
	name string
	run  func(ctx context.Context) (*probe.Result, error)
	tool bool
}

// Configure probes for the library. Failure to find it is recorded, not returned.
func (d *Dependency) Configure(ctx context.Context, cfg *core.Config) {
	d.reset()
	d.Configured = true

	if !cfg.Enabled(d.Name) {
		d.logger.Info("disabled by configuration", "dependency", d.Name)
		return
	}

	strategies := []strategy{
		{name: "pkg-config", tool: true, run: func(ctx context.Context) (*probe.Result, error) {
			return d.prober.PkgConfig(ctx, d.PkgConfigName)
		}},
		{name: d.ConfigProgram, tool: true, run: func(ctx context.Context) (*probe.Result, error) {
			return d.prober.ConfigProgram(ctx, d.ConfigProgram)
		}},
		{name: "search", run: func(context.Context) (*probe.Result, error) {
			return d.prober.Locate(d.Header, d.Library)
		}},
	}

	for _, s := range strategies {
		if s.tool && s.name == "" {
			continue
		}
		res, err := s.run(ctx)
		if err != nil {
			d.logger.Debug("probe failed", "dependency", d.Name, "via", s.name, "err", err)
			continue
		}
		if s.tool && res.Empty() {
			d.logger.Debug("probe returned no flags", "dependency", d.Name, "via", s.name)
			continue
		}
		if s.tool && d.SharedConfig && !d.prober.HasHeader(d.Header, res.IncludeDirs...) {
			d.logger.Debug("probe missing header", "dependency", d.Name, "via", s.name, "header", d.Header)
			continue
		}

		d.apply(res)
		d.Found = true
		d.Via = s.name
		d.logger.Info("configured", "dependency", d.Name, "via", s.name)
		return
	}

	d.logger.Warn("not found", "dependency", d.Name)
}

func (d *Dependency) reset() {
	d.IncludeDirs = nil
	d.LibraryDirs = nil
	d.Libs = nil
	d.CFlags = nil
	d.LFlags = nil
	d.Defines = nil
	d.Found = false
	d.Via = ""
}

func (d *Dependency) apply(res *probe.Result) {
	d.IncludeDirs = mergeUnique(nil, res.IncludeDirs)
	d.IncludeDirs = mergeUnique(d.IncludeDirs, d.ExtraIncludeDirs)
	d.LibraryDirs = mergeUnique(nil, res.LibraryDirs)
	d.Libs = mergeUnique([]string{d.Library}, res.Libs)
	d.CFlags = append([]string(nil), res.CFlags...)
	d.LFlags = append([]string(nil), res.LFlags...)
	d.Defines = []string{"HAVE_" + strings.ToUpper(d.Name)}
}

// SetupModule attaches this library's flags to m.
// A required library that was not found disables the module.
// Returns whether flags were attached.
func (d *Dependency) SetupModule(m *core.Module, optional bool) (bool, error) {
	if !d.Configured {
		return false, errors.Wrapf(ErrNotConfigured, "%s", d.Name)
	}

	if !d.Found {
		if !optional {
			m.CanBuild = false
			d.logger.Warn("module cannot be built", "module", m.Name, "missing", d.Name)
		}
		return false, nil
	}

	m.IncludeDirs = mergeUnique(m.IncludeDirs, d.IncludeDirs)
	m.LibraryDirs = mergeUnique(m.LibraryDirs, d.LibraryDirs)
	m.Libs = mergeUnique(m.Libs, d.Libs)
	m.CFlags = append(m.CFlags, d.CFlags...)
	m.LFlags = append(m.LFlags, d.LFlags...)
	m.Defines = mergeUnique(m.Defines, d.Defines)
	return true, nil
}

func mergeUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst)+len(src))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			seen[s] = true
			dst = append(dst, s)
		}
	}
	return dst
}
