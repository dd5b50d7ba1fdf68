package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/buildcfg/pkg/core"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestLayoutForPrefixFirst(t *testing.T) {
	for _, bs := range core.BuildSystems() {
		l := LayoutFor(bs, "/opt/sdk")
		require.NotEmpty(t, l.Includes, bs)
		require.NotEmpty(t, l.Libraries, bs)
		require.NotEmpty(t, l.Extensions, bs)
		assert.Equal(t, filepath.Join("/opt/sdk", "include"), l.Includes[0], bs)
		assert.Equal(t, filepath.Join("/opt/sdk", "lib"), l.Libraries[0], bs)
	}
}

func TestWithConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.IncludeDirs = []string{"/a/include"}
	cfg.LibraryDirs = []string{"/a/lib"}

	base := LayoutFor(core.BuildUnix, "")
	l := base.WithConfig(cfg)
	assert.Equal(t, "/a/include", l.Includes[0])
	assert.Equal(t, "/a/lib", l.Libraries[0])
	assert.Len(t, l.Includes, len(base.Includes)+1)
	assert.Equal(t, base.Extensions, l.Extensions)
}

func TestFindLibrary(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")
	touch(t, filepath.Join(second, "libSDL.so"))
	touch(t, filepath.Join(first, "libpng.a"))
	touch(t, filepath.Join(second, "libpng.so.16"))
	touch(t, filepath.Join(first, "jpeg.lib"))

	l := Layout{Libraries: []string{first, second}, Extensions: []string{".so", ".a"}}

	sdl := l.FindLibrary("SDL")
	require.NotNil(t, sdl)
	assert.Equal(t, second, sdl.Dir)
	assert.False(t, sdl.IsStatic)

	// directories are searched in order before extensions
	png := l.FindLibrary("png")
	require.NotNil(t, png)
	assert.Equal(t, first, png.Dir)
	assert.True(t, png.IsStatic)

	assert.Nil(t, l.FindLibrary("jpeg"), "bare names only match Windows extensions")
	assert.Nil(t, l.FindLibrary("freetype"))

	win := Layout{Libraries: []string{first}, Extensions: []string{".lib", ".dll"}}
	jpeg := win.FindLibrary("jpeg")
	require.NotNil(t, jpeg)
	assert.Equal(t, ".lib", jpeg.Type)
}

func TestFindHeaderAndFile(t *testing.T) {
	root := t.TempDir()
	inc := filepath.Join(root, "include")
	extra := filepath.Join(root, "extra")
	bin := filepath.Join(root, "bin")
	touch(t, filepath.Join(inc, "png.h"))
	touch(t, filepath.Join(extra, "png.h"))
	touch(t, filepath.Join(bin, "SDL.dll"))
	require.NoError(t, os.MkdirAll(filepath.Join(inc, "SDL.h"), 0755))

	l := Layout{Includes: []string{inc}, Binaries: []string{bin}}

	assert.Equal(t, inc, l.FindHeader("png.h"))
	assert.Equal(t, extra, l.FindHeader("png.h", extra))
	assert.Empty(t, l.FindHeader("SDL.h"), "directories are not headers")

	assert.Equal(t, filepath.Join(bin, "SDL.dll"), l.FindFile("SDL.dll"))
	assert.Empty(t, l.FindFile("zlib1.dll"))
}

func TestFlags(t *testing.T) {
	f := Flags([]string{"/usr/include/SDL"}, []string{"/usr/lib"}, []string{"SDL", "pthread"})
	assert.Equal(t, "-I/usr/include/SDL -L/usr/lib -lSDL -lpthread", f.String())
	assert.Empty(t, Flags(nil, nil, nil).All())
}
