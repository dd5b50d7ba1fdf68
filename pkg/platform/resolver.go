package platform

import (
	"github.com/arc-language/buildcfg/pkg/core"
)

// ResolveBuildSystem picks the build system to configure for.
// A build system set in config wins over the detected one.
func ResolveBuildSystem(platform *Platform, config *core.Config) core.BuildSystem {
	if config != nil && config.BuildSystem != "" {
		return config.BuildSystem
	}
	return platform.BuildSystem
}
