package dep

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/probe"
)

// stubProber returns canned results per strategy
type stubProber struct {
	pkgConfig map[string]*probe.Result
	programs  map[string]*probe.Result
	located   map[string]*probe.Result // keyed by library
	headers   map[string]bool
}

func (s *stubProber) PkgConfig(_ context.Context, name string) (*probe.Result, error) {
	if r, ok := s.pkgConfig[name]; ok {
		return r, nil
	}
	return nil, probe.ErrNotFound
}

func (s *stubProber) ConfigProgram(_ context.Context, program string) (*probe.Result, error) {
	if r, ok := s.programs[program]; ok {
		return r, nil
	}
	return nil, probe.ErrToolMissing
}

func (s *stubProber) Locate(_, library string) (*probe.Result, error) {
	if r, ok := s.located[library]; ok {
		return r, nil
	}
	return nil, probe.ErrNotFound
}

func (s *stubProber) HasHeader(header string, _ ...string) bool {
	return s.headers[header]
}

var quiet = log.New(io.Discard)

func sdlConfigResult() *probe.Result {
	return &probe.Result{
		IncludeDirs: []string{"/usr/include/SDL"},
		LibraryDirs: []string{"/usr/lib"},
		Libs:        []string{"SDL", "pthread"},
		CFlags:      []string{"-D_GNU_SOURCE=1", "-D_REENTRANT"},
	}
}

func TestConfigureStrategyOrder(t *testing.T) {
	tests := []struct {
		name    string
		prober  *stubProber
		id      ID
		wantVia string
		found   bool
	}{
		{
			name:    "pkg-config first",
			prober:  &stubProber{pkgConfig: map[string]*probe.Result{"libpng": {Libs: []string{"png16"}}}},
			id:      PNG,
			wantVia: "pkg-config",
			found:   true,
		},
		{
			name:    "config program second",
			prober:  &stubProber{programs: map[string]*probe.Result{"freetype-config": {Libs: []string{"freetype"}}}},
			id:      Freetype,
			wantVia: "freetype-config",
			found:   true,
		},
		{
			name:    "search last",
			prober:  &stubProber{located: map[string]*probe.Result{"jpeg": {Libs: []string{"jpeg"}}}},
			id:      JPEG,
			wantVia: "search",
			found:   true,
		},
		{
			name: "empty tool output falls through to search",
			prober: &stubProber{
				programs: map[string]*probe.Result{"freetype-config": {}},
				located:  map[string]*probe.Result{"freetype": {Libs: []string{"freetype"}}},
			},
			id:      Freetype,
			wantVia: "search",
			found:   true,
		},
		{
			name:   "nothing",
			prober: &stubProber{},
			id:     JPEG,
			found:  false,
		},
		{
			name: "shared config without header falls through",
			prober: &stubProber{
				programs: map[string]*probe.Result{"sdl-config": sdlConfigResult()},
			},
			id:    SDLMixer,
			found: false,
		},
		{
			name: "shared config with header",
			prober: &stubProber{
				programs: map[string]*probe.Result{"sdl-config": sdlConfigResult()},
				headers:  map[string]bool{"SDL_mixer.h": true},
			},
			id:      SDLMixer,
			wantVia: "sdl-config",
			found:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.id, tt.prober, quiet)
			d.Configure(context.Background(), core.DefaultConfig())

			assert.True(t, d.Configured)
			assert.Equal(t, tt.found, d.Found)
			assert.Equal(t, tt.wantVia, d.Via)
		})
	}
}

func TestConfigureRecordsFlags(t *testing.T) {
	prober := &stubProber{
		programs: map[string]*probe.Result{"sdl-config": sdlConfigResult()},
		headers:  map[string]bool{"SDL_mixer.h": true},
	}
	d := New(SDLMixer, prober, quiet)
	d.Configure(context.Background(), core.DefaultConfig())
	require.True(t, d.Found)

	assert.Equal(t, []string{"/usr/include/SDL", "src/sdl"}, d.IncludeDirs)
	assert.Equal(t, []string{"/usr/lib"}, d.LibraryDirs)
	assert.Equal(t, []string{"SDL_mixer", "SDL", "pthread"}, d.Libs)
	assert.Equal(t, []string{"HAVE_SDL_MIXER"}, d.Defines)
}

func TestReconfigureClearsPreviousResult(t *testing.T) {
	prober := &stubProber{located: map[string]*probe.Result{"png": {
		IncludeDirs: []string{"/opt/include"},
		Libs:        []string{"png"},
	}}}
	d := New(PNG, prober, quiet)
	d.Configure(context.Background(), core.DefaultConfig())
	require.True(t, d.Found)

	delete(prober.located, "png")
	d.Configure(context.Background(), core.DefaultConfig())
	assert.False(t, d.Found)
	assert.Empty(t, d.Via)
	assert.Empty(t, d.IncludeDirs)
	assert.Empty(t, d.Libs)
	assert.Empty(t, d.Defines)
}

func TestConfigureDisabled(t *testing.T) {
	prober := &stubProber{pkgConfig: map[string]*probe.Result{"libpng": {Libs: []string{"png"}}}}

	cfg := core.DefaultConfig()
	cfg.With["png"] = false

	d := New(PNG, prober, quiet)
	d.Configure(context.Background(), cfg)
	assert.True(t, d.Configured)
	assert.False(t, d.Found)

	t.Setenv("WITH_PNG", "yes")
	d.Configure(context.Background(), cfg)
	assert.True(t, d.Found, "environment overrides the config file")
}

func TestSetupModule(t *testing.T) {
	prober := &stubProber{located: map[string]*probe.Result{"png": {
		IncludeDirs: []string{"/opt/include"},
		LibraryDirs: []string{"/opt/lib"},
		Libs:        []string{"png"},
	}}}

	png := New(PNG, prober, quiet)
	jpeg := New(JPEG, prober, quiet)

	t.Run("not configured", func(t *testing.T) {
		_, err := png.SetupModule(&core.Module{Name: "image"}, false)
		assert.True(t, errors.Is(err, ErrNotConfigured))
	})

	png.Configure(context.Background(), core.DefaultConfig())
	jpeg.Configure(context.Background(), core.DefaultConfig())

	t.Run("found", func(t *testing.T) {
		m := &core.Module{Name: "image", CanBuild: true}
		ok, err := png.SetupModule(m, false)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, m.CanBuild)
		assert.Equal(t, []string{"/opt/include"}, m.IncludeDirs)
		assert.Equal(t, []string{"/opt/lib"}, m.LibraryDirs)
		assert.Equal(t, []string{"png"}, m.Libs)
		assert.Equal(t, []string{"HAVE_PNG"}, m.Defines)

		// attaching twice does not duplicate paths
		_, err = png.SetupModule(m, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"png"}, m.Libs)
	})

	t.Run("missing required", func(t *testing.T) {
		m := &core.Module{Name: "image", CanBuild: true}
		ok, err := jpeg.SetupModule(m, false)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, m.CanBuild)
	})

	t.Run("missing optional", func(t *testing.T) {
		m := &core.Module{Name: "image", CanBuild: true}
		ok, err := jpeg.SetupModule(m, true)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, m.CanBuild)
		assert.Empty(t, m.Libs)
	})
}
