package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Entry represents a single <name>/index.toml file
type Entry struct {
	Name     string            `toml:"name"`
	Libs     []string          `toml:"libs"`
	Backends map[string]string `toml:"backends"`
}

// Registry maps library names to the distribution packages that provide them
type Registry struct {
	dir string
}

// New creates a Registry rooted at dir
func New(dir string) *Registry {
	return &Registry{dir: dir}
}

// Resolve takes a library name and a package manager,
// returns the manager-specific package name.
// e.g. Resolve("sdl_ttf", "apt") -> "libsdl-ttf2.0-dev"
func (r *Registry) Resolve(name string, manager string) (string, error) {
	entry, err := r.Load(name)
	if err != nil {
		return "", err
	}

	pkgName, ok := entry.Backends[manager]
	if !ok {
		return "", errors.Newf("registry: library '%s' has no entry for '%s'", name, manager)
	}

	return pkgName, nil
}

// Hint returns an install suggestion, or "" when the registry has none
func (r *Registry) Hint(name string, manager string) string {
	if r == nil || manager == "" {
		return ""
	}
	pkgName, err := r.Resolve(name, manager)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("install %s with %s", pkgName, manager)
}

// Load reads and parses <name>/index.toml
func (r *Registry) Load(name string) (*Entry, error) {
	if _, err := os.Stat(r.dir); os.IsNotExist(err) {
		return nil, errors.Newf("registry: directory %s not found", r.dir)
	}

	path := filepath.Join(r.dir, name, "index.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		// Check if the directory exists, to give a better error message.
		dirPath := filepath.Dir(path)
		if _, statErr := os.Stat(dirPath); statErr == nil {
			return nil, errors.Newf("registry: found library '%s' directory, but missing index.toml", name)
		}
		return nil, errors.Newf("registry: library '%s' not found", name)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, errors.Wrapf(err, "registry: failed to parse '%s'", name)
	}
	if entry.Name == "" {
		entry.Name = name
	}

	return &entry, nil
}
