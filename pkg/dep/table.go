package dep

import (
	"path/filepath"
	"strings"
)

// ID enumerates the libraries the build knows how to use
type ID int

const (
	SDL ID = iota
	SDLMixer
	SDLTTF
	SDLGfx
	SDLImage
	PNG
	JPEG
	Freetype

	numIDs
)

// Count is the number of known libraries
const Count = int(numIDs)

// Spec is the static description of one library
type Spec struct {
	Name             string   // Lookup key, lower case
	Header           string   // Header that must be present
	Library          string   // Link id (-l<Library>)
	ConfigProgram    string   // Optional *-config script
	PkgConfigName    string   // Optional pkg-config package
	ExtraIncludeDirs []string // Always added to the include path once found

	// SharedConfig marks add-on libraries probed through their parent's
	// config tool; the tool succeeding does not prove the add-on exists.
	SharedConfig bool
}

var sdlSourceDir = filepath.Join("src", "sdl")

// specs is indexed by ID; its length is fixed by numIDs.
var specs = [numIDs]Spec{
	SDL: {
		Name:             "sdl",
		Header:           "SDL.h",
		Library:          "SDL",
		ConfigProgram:    "sdl-config",
		PkgConfigName:    "sdl",
		ExtraIncludeDirs: []string{sdlSourceDir},
	},
	SDLMixer: {
		Name:             "sdl_mixer",
		Header:           "SDL_mixer.h",
		Library:          "SDL_mixer",
		ConfigProgram:    "sdl-config",
		PkgConfigName:    "sdl",
		ExtraIncludeDirs: []string{sdlSourceDir},
		SharedConfig:     true,
	},
	SDLTTF: {
		Name:             "sdl_ttf",
		Header:           "SDL_ttf.h",
		Library:          "SDL_ttf",
		ConfigProgram:    "sdl-config",
		PkgConfigName:    "sdl",
		ExtraIncludeDirs: []string{sdlSourceDir},
		SharedConfig:     true,
	},
	SDLGfx: {
		Name:             "sdl_gfx",
		Header:           "SDL_framerate.h",
		Library:          "SDL_gfx",
		ConfigProgram:    "sdl-config",
		PkgConfigName:    "sdl",
		ExtraIncludeDirs: []string{sdlSourceDir},
		SharedConfig:     true,
	},
	SDLImage: {
		Name:             "sdl_image",
		Header:           "SDL_image.h",
		Library:          "SDL_image",
		ConfigProgram:    "sdl-config",
		PkgConfigName:    "sdl",
		ExtraIncludeDirs: []string{sdlSourceDir},
		SharedConfig:     true,
	},
	PNG: {
		Name:          "png",
		Header:        "png.h",
		Library:       "png",
		PkgConfigName: "libpng",
	},
	JPEG: {
		Name:          "jpeg",
		Header:        "jpeglib.h",
		Library:       "jpeg",
		PkgConfigName: "libjpeg",
	},
	Freetype: {
		Name:          "freetype",
		Header:        "freetype.h",
		Library:       "freetype",
		ConfigProgram: "freetype-config",
		PkgConfigName: "freetype2",
	},
}

// IDs returns every known library in table order
func IDs() []ID {
	ids := make([]ID, 0, Count)
	for id := ID(0); id < numIDs; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ParseID looks a library up by name, ignoring case
func ParseID(name string) (ID, bool) {
	key := strings.ToLower(name)
	for id := ID(0); id < numIDs; id++ {
		if specs[id].Name == key {
			return id, true
		}
	}
	return -1, false
}

// Names returns the lookup names of every known library
func Names() []string {
	names := make([]string, 0, Count)
	for _, id := range IDs() {
		names = append(names, specs[id].Name)
	}
	return names
}

// Spec returns the static description for id
func (id ID) Spec() Spec {
	return specs[id]
}

func (id ID) String() string {
	if id < 0 || id >= numIDs {
		return "unknown"
	}
	return specs[id].Name
}
