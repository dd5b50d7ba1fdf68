package buildcfg_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/buildcfg"
	"github.com/arc-language/buildcfg/pkg/backend"
	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/dep"
	"github.com/arc-language/buildcfg/pkg/env"
	"github.com/arc-language/buildcfg/pkg/probe"
	"github.com/arc-language/buildcfg/pkg/registry"
)

// hostRunner stands in for a machine with sdl-config but no pkg-config
type hostRunner map[string]string

func (r hostRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	if name == "pkg-config" {
		return "", errors.Wrap(probe.ErrToolMissing, name)
	}
	out, ok := r[name+" "+strings.Join(args, " ")]
	if !ok {
		return "", fmt.Errorf("%s: exit status 1", name)
	}
	return out, nil
}

type fakeBackend struct {
	toolchain   *probe.Toolchain
	sysLibs     map[string][]string
	installLibs []string
}

func (f *fakeBackend) Name() core.BuildSystem { return core.BuildUnix }

func (f *fakeBackend) Prober(*core.Config) *probe.Toolchain { return f.toolchain }

func (f *fakeBackend) SDLVersion(context.Context, *core.Config) (*semver.Version, error) {
	return semver.NewVersion("1.2.15")
}

func (f *fakeBackend) SysLibs(module string) []string { return f.sysLibs[module] }

func (f *fakeBackend) InstallLibs(context.Context, *core.Config) ([]string, error) {
	return f.installLibs, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

// newTestResolver builds a host where SDL (via sdl-config), SDL_mixer (via
// sdl-config plus header) and libpng (via search) are installed; the rest are not.
func newTestResolver(t *testing.T, opts ...buildcfg.Option) *buildcfg.Resolver {
	t.Helper()

	root := t.TempDir()
	touch(t, filepath.Join(root, "include", "SDL_mixer.h"))
	touch(t, filepath.Join(root, "include", "png.h"))
	touch(t, filepath.Join(root, "lib", "libpng.so"))

	fake := &fakeBackend{
		toolchain: &probe.Toolchain{
			Runner: hostRunner{
				"sdl-config --cflags": "-I/opt/fake-sdl/include/SDL -D_GNU_SOURCE=1 -D_REENTRANT",
				"sdl-config --libs":   "-L/usr/lib -lSDL -lpthread",
			},
			Layout: env.Layout{
				Includes:   []string{filepath.Join(root, "include")},
				Libraries:  []string{filepath.Join(root, "lib")},
				Extensions: []string{".so"},
			},
			UsePkgConfig:     true,
			UseConfigProgram: true,
		},
		sysLibs: map[string][]string{
			"base":         {"m"},
			"sdlext.scrap": {"X11"},
		},
		installLibs: []string{"/opt/SDL.dll"},
	}

	quiet := log.New(io.Discard)
	opts = append([]buildcfg.Option{buildcfg.WithLogger(quiet)}, opts...)
	return buildcfg.NewResolver(backend.Table{core.BuildUnix: fake}, opts...)
}

func TestGetDependencies(t *testing.T) {
	r := newTestResolver(t)

	deps, err := r.GetDependencies(context.Background(), buildcfg.BuildUnix, nil)
	require.NoError(t, err)
	require.Len(t, deps, 8)
	for _, id := range dep.IDs() {
		require.Contains(t, deps, id)
		assert.True(t, deps[id].Configured, id.String())
	}

	found := map[string]string{}
	for _, d := range deps {
		if d.Found {
			found[d.Name] = d.Via
		}
	}
	assert.Equal(t, map[string]string{
		"sdl":       "sdl-config",
		"sdl_mixer": "sdl-config",
		"png":       "search",
	}, found)
}

func TestGetDependenciesUnknownBuildSystem(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.GetDependencies(context.Background(), buildcfg.BuildDarwin, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, buildcfg.ErrUnknownBuildSystem))

	var opErr *buildcfg.Error
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "get dependencies", opErr.Op)
}

func TestDependenciesLookupIgnoresCase(t *testing.T) {
	r := newTestResolver(t)
	deps, err := r.GetDependencies(context.Background(), buildcfg.BuildUnix, nil)
	require.NoError(t, err)

	upper, ok := deps.Lookup("SDL")
	require.True(t, ok)
	lower, ok := deps.Lookup("sdl")
	require.True(t, ok)
	assert.Same(t, upper, lower)

	_, ok = deps.Lookup("opengl")
	assert.False(t, ok)
}

func TestPrepareModules(t *testing.T) {
	r := newTestResolver(t)

	modules := []*core.Module{
		{Name: "base"},
		{Name: "sdl.video", Depends: []string{"SDL"}, OptionalDep: []string{"png", "jpeg", "opengl"}},
		{Name: "sdlmixer.base", Depends: []string{"sdl", "sdl_mixer"}},
		{Name: "sdlttf.base", Depends: []string{"sdl", "SDL_TTF"}},
		{Name: "sdlext.scrap", Depends: []string{"sdl"}, Libs: []string{"extra"}},
	}

	_, err := r.PrepareModules(context.Background(), buildcfg.BuildUnix, modules, core.DefaultConfig())
	require.NoError(t, err)

	base := modules[0]
	assert.True(t, base.CanBuild)
	assert.Equal(t, []string{"m"}, base.Libs, "no dependencies: only OS libraries")
	assert.Empty(t, base.IncludeDirs)
	assert.Empty(t, base.Defines)

	video := modules[1]
	assert.True(t, video.CanBuild)
	assert.Equal(t, []string{"SDL", "pthread", "png"}, video.Libs)
	assert.Contains(t, video.IncludeDirs, "/opt/fake-sdl/include/SDL")
	assert.Contains(t, video.IncludeDirs, filepath.Join("src", "sdl"))
	assert.Equal(t, []string{"HAVE_SDL", "HAVE_PNG"}, video.Defines)
	assert.NotContains(t, video.Defines, "HAVE_JPEG")

	mixer := modules[2]
	assert.True(t, mixer.CanBuild)
	assert.Equal(t, []string{"SDL", "pthread", "SDL_mixer"}, mixer.Libs)

	ttf := modules[3]
	assert.False(t, ttf.CanBuild, "SDL_ttf is not installed")

	scrap := modules[4]
	assert.True(t, scrap.CanBuild)
	assert.Equal(t, []string{"extra", "SDL", "pthread", "X11"}, scrap.Libs)
}

func TestPrepareModulesUnknownDependency(t *testing.T) {
	for _, name := range []string{"opengl", "OpenGL"} {
		t.Run(name, func(t *testing.T) {
			r := newTestResolver(t)
			modules := []*core.Module{
				{Name: "base"},
				{Name: "gl", Depends: []string{"sdl", name}},
			}

			_, err := r.PrepareModules(context.Background(), buildcfg.BuildUnix, modules, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, buildcfg.ErrUnknownDependency))
			assert.Contains(t, err.Error(), "'opengl'")

			var depErr *buildcfg.UnknownDependencyError
			require.True(t, errors.As(err, &depErr))
			assert.Equal(t, "gl", depErr.Module)
			assert.Equal(t, "opengl", depErr.Dependency)

			hints := errors.GetAllHints(err)
			require.Len(t, hints, 1)
			assert.Contains(t, hints[0], "sdl_mixer")
		})
	}
}

func TestPrepareModulesFoldsCaseOnly(t *testing.T) {
	r := newTestResolver(t)
	modules := []*core.Module{{Name: "video", Depends: []string{" sdl "}}}

	_, err := r.PrepareModules(context.Background(), buildcfg.BuildUnix, modules, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, buildcfg.ErrUnknownDependency))
}

func TestPrepareModulesLogsInstallHint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "jpeg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jpeg", "index.toml"),
		[]byte("[backends]\napt = \"libjpeg-dev\"\n"), 0644))

	var out strings.Builder
	r := newTestResolver(t,
		buildcfg.WithLogger(log.New(&out)),
		buildcfg.WithRegistry(registry.New(dir), "apt"))

	modules := []*core.Module{{Name: "image", Depends: []string{"jpeg"}}}
	_, err := r.PrepareModules(context.Background(), buildcfg.BuildUnix, modules, nil)
	require.NoError(t, err)
	assert.False(t, modules[0].CanBuild)
	assert.Contains(t, out.String(), "libjpeg-dev")
}

func TestDelegation(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	v, err := r.SDLGetVersion(ctx, buildcfg.BuildUnix, nil)
	require.NoError(t, err)
	assert.Equal(t, "1.2.15", v.String())

	libs, err := r.GetSysLibs(buildcfg.BuildUnix, "sdlext.scrap")
	require.NoError(t, err)
	assert.Equal(t, []string{"X11"}, libs)

	install, err := r.GetInstallLibs(ctx, buildcfg.BuildUnix, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/SDL.dll"}, install)

	_, err = r.GetSysLibs(buildcfg.BuildWin, "base")
	assert.True(t, errors.Is(err, buildcfg.ErrUnknownBuildSystem))
	_, err = r.SDLGetVersion(ctx, buildcfg.BuildWin, nil)
	assert.True(t, errors.Is(err, buildcfg.ErrUnknownBuildSystem))
	_, err = r.GetInstallLibs(ctx, buildcfg.BuildWin, nil)
	assert.True(t, errors.Is(err, buildcfg.ErrUnknownBuildSystem))
}
