package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devops-sherpas/jfrog-sagen/cmd/cmdutils"
	"github.com/devops-sherpas/jfrog-sagen/cmd/common"
	"github.com/devops-sherpas/jfrog-sagen/cmd/configure"
	"github.com/devops-sherpas/jfrog-sagen/cmd/reports"
	"github.com/devops-sherpas/jfrog-sagen/cmd/sitesdiff"
	"github.com/devops-sherpas/jfrog-sagen/internal/config"
)

var Version = "development"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sagen",
		Short: "Compare JFrog sites and harvest Xray reports",
		Long: `sagen compares the repositories and artifacts of two Artifactory sites
and exports, imports and downloads Xray report definitions and contents.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			hydrateFromProfile()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&config.Global.Debug, "debug", false, "print debug level logs")

	f := cmdutils.NewFactory()
	rootCmd.AddCommand(sitesdiff.NewSitesDiffCmd(f))
	rootCmd.AddCommand(reports.NewReportsCmd(f))
	rootCmd.AddCommand(configure.NewConfigureCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends human-readable logs to stderr; stdout stays reserved for
// report output.
func setupLogging() {
	level := zerolog.InfoLevel
	if config.Global.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger().Hook(common.ErrorHook{})
}

// hydrateFromProfile fills credentials not given as flags from the saved
// profile. A missing profile is fine; commands validate what they need.
func hydrateFromProfile() {
	path, err := config.DefaultProfilePath()
	if err != nil {
		return
	}
	profile, err := config.LoadProfile(path)
	if err != nil {
		return
	}
	config.Hydrate(profile)
}
