package probe

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"

	"github.com/arc-language/buildcfg/pkg/env"
)

const pkgConfigProgram = "pkg-config"

// Toolchain locates libraries with pkg-config, *-config scripts and a directory search
type Toolchain struct {
	Runner           Runner
	Layout           env.Layout
	UsePkgConfig     bool
	UseConfigProgram bool
	Logger           *log.Logger
}

// PkgConfig queries pkg-config for the named package
func (t *Toolchain) PkgConfig(ctx context.Context, name string) (*Result, error) {
	if name == "" || !t.UsePkgConfig {
		return nil, errors.Wrap(ErrToolMissing, "pkg-config disabled")
	}

	if _, err := t.runner().Run(ctx, pkgConfigProgram, "--exists", name); err != nil {
		if errors.Is(err, ErrToolMissing) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrNotFound, "pkg-config: %s", name)
	}

	cflags, err := t.runner().Run(ctx, pkgConfigProgram, "--cflags", name)
	if err != nil {
		return nil, errors.Wrapf(err, "pkg-config --cflags %s", name)
	}
	libs, err := t.runner().Run(ctx, pkgConfigProgram, "--libs", name)
	if err != nil {
		return nil, errors.Wrapf(err, "pkg-config --libs %s", name)
	}

	return ParseFlags(cflags, libs)
}

// ConfigProgram runs a library's own config script, e.g. sdl-config or freetype-config
func (t *Toolchain) ConfigProgram(ctx context.Context, program string) (*Result, error) {
	if program == "" || !t.UseConfigProgram {
		return nil, errors.Wrap(ErrToolMissing, "config program disabled")
	}

	cflags, err := t.runner().Run(ctx, program, "--cflags")
	if err != nil {
		if errors.Is(err, ErrToolMissing) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrNotFound, "%s --cflags: %v", program, err)
	}
	libs, err := t.runner().Run(ctx, program, "--libs")
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%s --libs: %v", program, err)
	}

	return ParseFlags(cflags, libs)
}

// Locate searches the layout for header and lib<library>
func (t *Toolchain) Locate(header, library string) (*Result, error) {
	incDir := t.Layout.FindHeader(header)
	if incDir == "" {
		return nil, errors.Wrapf(ErrNotFound, "header %s", header)
	}

	lib := t.Layout.FindLibrary(library)
	if lib == nil {
		return nil, errors.Wrapf(ErrNotFound, "library %s", library)
	}

	if t.Logger != nil {
		t.Logger.Debug("located", "header", header, "include", incDir, "library", lib.Path)
	}

	return &Result{
		IncludeDirs: []string{incDir},
		LibraryDirs: []string{lib.Dir},
		Libs:        []string{library},
	}, nil
}

// HasHeader reports whether header exists in dirs or the layout's include directories
func (t *Toolchain) HasHeader(header string, dirs ...string) bool {
	return t.Layout.FindHeader(header, dirs...) != ""
}

// Version asks program (or pkg-config, when program is unavailable) for an installed version
func (t *Toolchain) Version(ctx context.Context, program, pkgName string) (*semver.Version, error) {
	var (
		out string
		err error
	)

	if program != "" && t.UseConfigProgram {
		out, err = t.runner().Run(ctx, program, "--version")
	} else {
		err = ErrToolMissing
	}
	if err != nil && pkgName != "" && t.UsePkgConfig {
		out, err = t.runner().Run(ctx, pkgConfigProgram, "--modversion", pkgName)
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying version")
	}

	v, err := semver.NewVersion(strings.TrimSpace(out))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing version %q", strings.TrimSpace(out))
	}
	return v, nil
}

func (t *Toolchain) runner() Runner {
	if t.Runner == nil {
		return ExecRunner{}
	}
	return t.Runner
}

// ParseFlags splits compiler and linker output into a Result.
// -I, -L and -l are pulled out; everything else is kept verbatim.
func ParseFlags(cflags, libs string) (*Result, error) {
	cwords, err := shellquote.Split(cflags)
	if err != nil {
		return nil, errors.Wrapf(err, "splitting compiler flags %q", cflags)
	}
	lwords, err := shellquote.Split(libs)
	if err != nil {
		return nil, errors.Wrapf(err, "splitting linker flags %q", libs)
	}

	r := &Result{}
	for _, w := range cwords {
		switch {
		case strings.HasPrefix(w, "-I") && len(w) > 2:
			r.IncludeDirs = appendUnique(r.IncludeDirs, w[2:])
		default:
			r.CFlags = append(r.CFlags, w)
		}
	}
	for _, w := range lwords {
		switch {
		case strings.HasPrefix(w, "-L") && len(w) > 2:
			r.LibraryDirs = appendUnique(r.LibraryDirs, w[2:])
		case strings.HasPrefix(w, "-l") && len(w) > 2:
			r.Libs = appendUnique(r.Libs, w[2:])
		default:
			r.LFlags = append(r.LFlags, w)
		}
	}
	return r, nil
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
