package backend

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/dep"
	"github.com/arc-language/buildcfg/pkg/env"
)

// ErrMissingInstallLib indicates a DLL the build cannot run without was not found
var ErrMissingInstallLib = errors.New("required DLL not found")

// dllSets lists the runtime DLLs each library drags in on Windows
var dllSets = []struct {
	id   dep.ID
	dlls []string
}{
	{dep.SDL, []string{"SDL.dll"}},
	{dep.SDLMixer, []string{"SDL_mixer.dll", "libogg-0.dll", "libvorbis-0.dll", "libvorbisfile-3.dll", "smpeg.dll"}},
	{dep.SDLTTF, []string{"SDL_ttf.dll", "libfreetype-6.dll", "zlib1.dll"}},
	{dep.SDLImage, []string{"SDL_image.dll", "jpeg.dll", "libpng12-0.dll", "libtiff-3.dll", "zlib1.dll"}},
	{dep.SDLGfx, []string{"SDL_gfx.dll"}},
	{dep.PNG, []string{"libpng12-0.dll", "zlib1.dll"}},
	{dep.JPEG, []string{"jpeg.dll"}},
	{dep.Freetype, []string{"libfreetype-6.dll", "zlib1.dll"}},
}

// installDLLs resolves the DLLs of every enabled library against the layout.
// Missing add-on DLLs are logged and skipped; a missing SDL.dll is an error.
func installDLLs(layout env.Layout, cfg *core.Config, logger *log.Logger) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, set := range dllSets {
		if !cfg.Enabled(set.id.String()) {
			continue
		}
		for _, dll := range set.dlls {
			if seen[dll] {
				continue
			}
			seen[dll] = true

			p := layout.FindFile(dll)
			if p == "" {
				if set.id == dep.SDL {
					return nil, errors.WithHint(
						errors.Wrapf(ErrMissingInstallLib, "%s", dll),
						"add the SDL runtime directory to library_dirs or set prefix")
				}
				logger.Warn("DLL not found, skipping", "dll", dll, "dependency", set.id.String())
				continue
			}
			paths = append(paths, p)
		}
	}

	return paths, nil
}

var versionMacro = regexp.MustCompile(`(?m)^\s*#\s*define\s+SDL_(MAJOR_VERSION|MINOR_VERSION|PATCHLEVEL)\s+(\d+)`)

// headerVersion reads SDL_MAJOR_VERSION, SDL_MINOR_VERSION and SDL_PATCHLEVEL from SDL_version.h
func headerVersion(layout env.Layout) (*semver.Version, error) {
	dir := layout.FindHeader("SDL_version.h")
	if dir == "" {
		return nil, errors.New("SDL_version.h not found")
	}
	data, err := os.ReadFile(filepath.Join(dir, "SDL_version.h"))
	if err != nil {
		return nil, errors.Wrap(err, "reading SDL_version.h")
	}
	return parseVersionHeader(string(data))
}

func parseVersionHeader(content string) (*semver.Version, error) {
	parts := make(map[string]uint64, 3)
	for _, m := range versionMacro.FindAllStringSubmatch(content, -1) {
		n, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing SDL_%s", m[1])
		}
		parts[m[1]] = n
	}

	major, ok := parts["MAJOR_VERSION"]
	if !ok {
		return nil, errors.New("SDL_MAJOR_VERSION not defined")
	}
	return semver.New(major, parts["MINOR_VERSION"], parts["PATCHLEVEL"], "", ""), nil
}
