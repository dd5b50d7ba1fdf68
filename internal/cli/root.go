// internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arc-language/buildcfg"
	"github.com/arc-language/buildcfg/pkg/backend"
	"github.com/arc-language/buildcfg/pkg/core"
	"github.com/arc-language/buildcfg/pkg/platform"
	"github.com/arc-language/buildcfg/pkg/registry"
)

var (
	cfgFile     string
	buildSystem string
	debug       bool
	config      *core.Config
	logger      *log.Logger
	settings    = viper.New()

	// replaced in tests
	detectPlatform = platform.Detect
	backendTable   = backend.DefaultTable
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "buildcfg",
	Short: "Native library configuration for module builds",
	Long: `buildcfg - native library configuration

Locates SDL, SDL_mixer, SDL_ttf, SDL_gfx, SDL_image, libpng, libjpeg and
freetype on this machine, records the compiler and linker flags needed to
use them, and works out which build modules can be compiled.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/buildcfg/config.yaml)")
	flags.StringVar(&buildSystem, "build-system", "", "build system to configure for (win, msys, unix, darwin)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")

	_ = settings.BindPFlag("build_system", flags.Lookup("build-system"))
	_ = settings.BindPFlag("debug", flags.Lookup("debug"))
	settings.SetEnvPrefix("BUILDCFG")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	// Add commands
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(sdlVersionCmd)
	rootCmd.AddCommand(installLibsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags and BUILDCFG_* variables
	if bs := settings.GetString("build_system"); bs != "" {
		config.BuildSystem = core.BuildSystem(bs)
	}
	if settings.GetBool("debug") {
		config.Debug = true
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "buildcfg",
	})
	if config.Debug {
		logger.SetLevel(log.DebugLevel)
	}
}

// newResolver wires the backends, hint registry and logger for the active configuration
func newResolver() (*buildcfg.Resolver, core.BuildSystem, error) {
	plat, err := detectPlatform()
	if err != nil {
		return nil, "", errors.Wrap(err, "detecting platform")
	}

	bs, err := core.ParseBuildSystem(string(platform.ResolveBuildSystem(plat, config)))
	if err != nil {
		return nil, "", err
	}
	logger.Debug("platform", "detected", plat.String(), "build_system", bs)

	opts := []buildcfg.Option{buildcfg.WithLogger(logger)}
	if config.RegistryPath != "" {
		opts = append(opts, buildcfg.WithRegistry(registry.New(config.RegistryPath), plat.Preferred))
	}

	table := backendTable(&backend.Options{Logger: logger})
	return buildcfg.NewResolver(table, opts...), bs, nil
}
