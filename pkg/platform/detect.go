package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/arc-language/buildcfg/pkg/core"
)

// Platform represents the detected host
type Platform struct {
	OS          string           // linux, darwin, windows, freebsd, ...
	Arch        string           // amd64, arm64, 386, arm
	BuildSystem core.BuildSystem // Build system inferred from OS and shell
	Available   []string         // Package managers found on PATH
	Preferred   string           // Package manager to suggest in hints
}

// packageManagers are checked in order; the first found is preferred
var packageManagers = []struct {
	name    string
	command string
}{
	{"brew", "brew"},
	{"apt", "apt-get"},
	{"dnf", "dnf"},
	{"pacman", "pacman"},
	{"zypper", "zypper"},
	{"apk", "apk"},
	{"port", "port"},
	{"pacman", "pacman.exe"},
	{"choco", "choco"},
	{"winget", "winget"},
	{"nix", "nix-env"},
}

// Detect detects the current platform and available package managers
func Detect() (*Platform, error) {
	return detect(runtime.GOOS, runtime.GOARCH, os.Getenv, commandExists)
}

func detect(goos, goarch string, getenv func(string) string, exists func(string) bool) (*Platform, error) {
	p := &Platform{
		OS:        goos,
		Arch:      goarch,
		Available: []string{},
	}

	switch goos {
	case "windows":
		// MSYS and MinGW shells export MSYSTEM
		if getenv("MSYSTEM") != "" {
			p.BuildSystem = core.BuildMsys
		} else {
			p.BuildSystem = core.BuildWin
		}
	case "darwin":
		p.BuildSystem = core.BuildDarwin
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		p.BuildSystem = core.BuildUnix
	default:
		return nil, errors.Newf("unsupported operating system: %s", goos)
	}

	for _, pm := range packageManagers {
		if exists(pm.command) && !slices.Contains(p.Available, pm.name) {
			p.Available = append(p.Available, pm.name)
		}
	}
	if len(p.Available) > 0 {
		p.Preferred = p.Available[0]
	}

	return p, nil
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (build system: %s, package managers: %v)",
		p.OS, p.Arch, p.BuildSystem, p.Available)
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
