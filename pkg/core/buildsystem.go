package core

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// BuildSystem identifies the host toolchain family the build is configured for
type BuildSystem string

const (
	// BuildWin is a native Windows build (MSVC or a prebuilt SDK tree)
	BuildWin BuildSystem = "win"
	// BuildMsys is a MinGW build driven from an MSYS shell
	BuildMsys BuildSystem = "msys"
	// BuildUnix covers Linux and the BSDs
	BuildUnix BuildSystem = "unix"
	// BuildDarwin is macOS
	BuildDarwin BuildSystem = "darwin"
)

// BuildSystems lists every known build system in a stable order
func BuildSystems() []BuildSystem {
	return []BuildSystem{BuildWin, BuildMsys, BuildUnix, BuildDarwin}
}

// ParseBuildSystem validates a build system identifier
func ParseBuildSystem(s string) (BuildSystem, error) {
	bs := BuildSystem(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range BuildSystems() {
		if bs == known {
			return bs, nil
		}
	}
	return "", errors.Newf("unknown build system: %q", s)
}

func (b BuildSystem) String() string {
	return string(b)
}
