package env

import (
	"os"
	"path/filepath"
	"strings"
)

// FindHeader returns the first directory holding header, searching extra first
func (l Layout) FindHeader(header string, extra ...string) string {
	dirs := append(append([]string{}, extra...), l.Includes...)
	for _, dir := range dirs {
		if fileExists(filepath.Join(dir, header)) {
			return dir
		}
	}
	return ""
}

// FindLibrary searches for a specific library by link name.
// Returns the first match found in library search paths.
func (l Layout) FindLibrary(name string) *Library {
	for _, dir := range l.Libraries {
		for _, ext := range l.Extensions {
			// Try lib{name}{ext} pattern (e.g., libpng.so)
			filename := "lib" + name + ext
			fullPath := filepath.Join(dir, filename)

			if fileExists(fullPath) {
				return newLibrary(name, dir, fullPath, ext)
			}

			// Windows import libraries drop the prefix (SDL.lib)
			if ext == ".lib" || ext == ".dll" {
				bare := filepath.Join(dir, name+ext)
				if fileExists(bare) {
					return newLibrary(name, dir, bare, ext)
				}
			}

			// Try versioned: lib{name}{ext}.* (e.g., libpng.so.16)
			matches, _ := filepath.Glob(filepath.Join(dir, filename+".*"))
			if len(matches) > 0 {
				return newLibrary(name, dir, matches[0], ext)
			}
		}
	}

	return nil
}

// FindFile looks for an exact file name in the binary and library directories
func (l Layout) FindFile(name string) string {
	dirs := append(append([]string{}, l.Binaries...), l.Libraries...)
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// Flags renders -I/-L/-l flags
func Flags(includeDirs, libraryDirs, libs []string) CompilerFlags {
	var f CompilerFlags
	for _, d := range includeDirs {
		f.IncludeFlags = append(f.IncludeFlags, "-I"+d)
	}
	for _, d := range libraryDirs {
		f.LibraryFlags = append(f.LibraryFlags, "-L"+d)
	}
	for _, lib := range libs {
		f.LinkFlags = append(f.LinkFlags, "-l"+lib)
	}
	return f
}

// All concatenates every flag in compiler order
func (f CompilerFlags) All() []string {
	out := make([]string, 0, len(f.IncludeFlags)+len(f.LibraryFlags)+len(f.LinkFlags))
	out = append(out, f.IncludeFlags...)
	out = append(out, f.LibraryFlags...)
	out = append(out, f.LinkFlags...)
	return out
}

func (f CompilerFlags) String() string {
	return strings.Join(f.All(), " ")
}

func newLibrary(name, dir, path, ext string) *Library {
	return &Library{
		Name:     name,
		Path:     path,
		Dir:      dir,
		Type:     ext,
		IsStatic: isStaticExt(ext),
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
