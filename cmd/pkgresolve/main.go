package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkgforge/pkgresolve/internal/rconfig"
	"github.com/pkgforge/pkgresolve/internal/security"
	"github.com/pkgforge/pkgresolve/internal/telemetry"
)

var (
	configFile       string
	logLevel         string
	actualConfigFile string
	loggerCleanup    func()
)

func main() {
	cobra.OnInitialize(initConfig)

	defer func() {
		if loggerCleanup != nil {
			loggerCleanup()
		}
	}()

	rootCmd := createRootCommand()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	configFilePath := configFile
	if configFilePath == "" {
		configFilePath = rconfig.FindConfigFile()
	}
	actualConfigFile = configFilePath

	globalConfig, err := rconfig.LoadGlobalConfig(configFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	rconfig.SetGlobal(globalConfig)

	_, cleanup, logErr := telemetry.InitWithConfig(telemetry.Config{Level: globalConfig.Logging.Level})
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", logErr)
		os.Exit(1)
	}
	loggerCleanup = cleanup
}

func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pkgresolve",
		Short: "Dependency resolver for source/binary package manifests",
		Long: `pkgresolve computes an ordered install plan for a requested package
against one or more ordered manifests of candidates and an already-installed
set, using a depth-first, greedy, newest-first resolution strategy with
binary/source fallback.

Use 'pkgresolve --help' to see available commands.
Use 'pkgresolve <command> --help' for more information about a command.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				cfg := rconfig.Global()
				cfg.Logging.Level = logLevel
				rconfig.SetGlobal(cfg)
				telemetry.SetLevel(logLevel)
			}
			log := telemetry.Logger()
			if actualConfigFile != "" {
				log.Infof("using configuration from: %s", actualConfigFile)
			}
			log.Debugf("config: workers=%d cache_dir=%s default_platform_tags=%v",
				rconfig.Global().Workers, rconfig.Global().CacheDir, rconfig.Global().DefaultPlatformTags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(createResolveCommand())
	rootCmd.AddCommand(createPlanCommand())
	rootCmd.AddCommand(createVerifyCommand())
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createInstallCompletionCommand())

	security.AttachRecursive(rootCmd, security.DefaultLimits())

	return rootCmd
}
