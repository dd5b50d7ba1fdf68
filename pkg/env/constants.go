package env

import (
	"path/filepath"
	"runtime"

	"github.com/arc-language/buildcfg/pkg/core"
)

// LayoutFor returns the search layout for a build system.
// Directories under prefix come first so a user-supplied tree shadows the system one.
func LayoutFor(bs core.BuildSystem, prefix string) Layout {
	var l Layout
	switch bs {
	case core.BuildUnix:
		l = getUnixLayout()
	case core.BuildDarwin:
		l = getDarwinLayout()
	case core.BuildMsys:
		l = getMsysLayout()
	case core.BuildWin:
		l = getWinLayout()
	default:
		l = getDefaultLayout()
	}

	if prefix != "" {
		l.Includes = append([]string{filepath.Join(prefix, "include")}, l.Includes...)
		l.Libraries = append([]string{filepath.Join(prefix, "lib")}, l.Libraries...)
		l.Binaries = append([]string{filepath.Join(prefix, "bin")}, l.Binaries...)
	}
	return l
}

// WithConfig prepends the extra directories named in cfg
func (l Layout) WithConfig(cfg *core.Config) Layout {
	if cfg == nil {
		return l
	}
	l.Includes = append(append([]string{}, cfg.IncludeDirs...), l.Includes...)
	l.Libraries = append(append([]string{}, cfg.LibraryDirs...), l.Libraries...)
	return l
}

// archTriplets maps GOARCH to the multiarch directory names used by Debian-style systems
var archTriplets = map[string][]string{
	"amd64": {"x86_64-linux-gnu"},
	"arm64": {"aarch64-linux-gnu"},
	"arm":   {"arm-linux-gnueabihf", "arm-linux-gnueabi"},
	"386":   {"i386-linux-gnu", "i686-linux-gnu"},
}

// Linux and the BSDs: FHS plus multiarch and X11 trees
func getUnixLayout() Layout {
	var libs []string
	for _, t := range archTriplets[runtime.GOARCH] {
		libs = append(libs, filepath.Join("/usr", "lib", t))
	}
	libs = append(libs,
		filepath.Join("/usr", "lib64"),
		filepath.Join("/usr", "lib"),
		filepath.Join("/usr", "local", "lib"),
		filepath.Join("/usr", "X11R6", "lib"),
		filepath.Join("/opt", "local", "lib"),
	)

	return Layout{
		Includes: []string{
			filepath.Join("/usr", "include"),
			filepath.Join("/usr", "include", "SDL"),
			filepath.Join("/usr", "include", "freetype2", "freetype"),
			filepath.Join("/usr", "local", "include"),
			filepath.Join("/usr", "local", "include", "SDL"),
			filepath.Join("/usr", "X11R6", "include"),
			filepath.Join("/opt", "local", "include"),
		},
		Libraries:  libs,
		Binaries:   []string{filepath.Join("/usr", "bin"), filepath.Join("/usr", "local", "bin")},
		Extensions: []string{".so", ".a"},
	}
}

// macOS: Homebrew (both prefixes), MacPorts and Fink
func getDarwinLayout() Layout {
	roots := []string{"/opt/homebrew", "/usr/local", "/opt/local", "/sw"}
	l := Layout{Extensions: []string{".dylib", ".a"}}
	for _, r := range roots {
		l.Includes = append(l.Includes,
			filepath.Join(r, "include"),
			filepath.Join(r, "include", "SDL"),
			filepath.Join(r, "include", "freetype2", "freetype"),
		)
		l.Libraries = append(l.Libraries, filepath.Join(r, "lib"))
		l.Binaries = append(l.Binaries, filepath.Join(r, "bin"))
	}
	return l
}

// MSYS/MinGW keeps everything below /mingw and /usr/local
func getMsysLayout() Layout {
	return Layout{
		Includes: []string{
			"/mingw/include",
			"/mingw/include/SDL",
			"/usr/local/include",
			"/usr/local/include/SDL",
			"/usr/include",
		},
		Libraries: []string{
			"/mingw/lib",
			"/usr/local/lib",
			"/usr/lib",
		},
		Binaries:   []string{"/mingw/bin", "/usr/local/bin"},
		Extensions: []string{".dll.a", ".a", ".dll", ".lib"},
	}
}

// Native Windows has no standard location; prebuilt SDKs are usually unpacked by hand
func getWinLayout() Layout {
	roots := []string{`C:\SDL`, `C:\GnuWin32`}
	l := Layout{Extensions: []string{".lib", ".dll"}}
	for _, r := range roots {
		l.Includes = append(l.Includes, filepath.Join(r, "include"), filepath.Join(r, "include", "SDL"))
		l.Libraries = append(l.Libraries, filepath.Join(r, "lib"))
		l.Binaries = append(l.Binaries, filepath.Join(r, "bin"), filepath.Join(r, "lib"))
	}
	return l
}

func getDefaultLayout() Layout {
	return Layout{
		Includes:   []string{filepath.Join("/usr", "include")},
		Libraries:  []string{filepath.Join("/usr", "lib"), filepath.Join("/lib")},
		Binaries:   []string{filepath.Join("/usr", "bin"), filepath.Join("/bin")},
		Extensions: []string{".so", ".a"},
	}
}

// isStaticExt reports whether ext names a static archive
func isStaticExt(ext string) bool {
	return ext == ".a" || ext == ".lib"
}
