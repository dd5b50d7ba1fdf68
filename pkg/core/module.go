package core

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Module is one compilable unit of the target software
type Module struct {
	Name        string   `toml:"name" yaml:"name"`
	Sources     []string `toml:"sources" yaml:"sources,omitempty"`
	Depends     []string `toml:"depends" yaml:"depends,omitempty"`           // Required library names
	OptionalDep []string `toml:"optional_dep" yaml:"optional_dep,omitempty"` // Libraries used when present

	// Filled in while preparing the module
	IncludeDirs []string `toml:"-" yaml:"include_dirs,omitempty"`
	LibraryDirs []string `toml:"-" yaml:"library_dirs,omitempty"`
	Libs        []string `toml:"libs" yaml:"libs,omitempty"`
	CFlags      []string `toml:"-" yaml:"cflags,omitempty"`
	LFlags      []string `toml:"-" yaml:"lflags,omitempty"`
	Defines     []string `toml:"-" yaml:"defines,omitempty"`
	CanBuild    bool     `toml:"-" yaml:"canbuild"`
}

// moduleFile is the on-disk shape of a module list
type moduleFile struct {
	Modules []*Module `toml:"module"`
}

// LoadModules reads a module list from a TOML file with [[module]] tables
func LoadModules(path string) ([]*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading module list")
	}
	return ParseModules(string(data))
}

// ParseModules decodes a module list
func ParseModules(data string) ([]*Module, error) {
	var mf moduleFile
	if _, err := toml.Decode(data, &mf); err != nil {
		return nil, errors.Wrap(err, "parsing module list")
	}

	seen := make(map[string]bool, len(mf.Modules))
	for i, m := range mf.Modules {
		if m.Name == "" {
			return nil, errors.Newf("module #%d has no name", i+1)
		}
		if seen[m.Name] {
			return nil, errors.Newf("duplicate module: %s", m.Name)
		}
		seen[m.Name] = true
	}

	return mf.Modules, nil
}
