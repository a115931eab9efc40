// Package cmd implements the clockface CLI commands.
//
// The root command carries the flags every subcommand shares: verbosity,
// the optional clockface.yaml path and repeatable --set overrides.
package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// RootCmd is the main entry point. It's exported so the CLI can be extended
// without touching core functionality.
var RootCmd = &cobra.Command{
	Use:   "clockface",
	Short: "Render an analog clock face to image files",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
	},
	SilenceUsage: true,
}

// flags
var (
	rootVerboseFlag bool
	rootConfigFlag  string
	rootSetFlag     []string
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&rootVerboseFlag, "verbose", "v", false, "verbose output")
	RootCmd.PersistentFlags().StringVarP(&rootConfigFlag, "config", "c", "", "path to "+config.FileName+" (default: ./"+config.FileName+" when present)")
	RootCmd.PersistentFlags().StringArrayVar(&rootSetFlag, "set", nil, "set a clock face attribute, name=value. Repeat for multiple")
}

// ConfigureVerbosity configures log verbosity based on parsed flags.
func ConfigureVerbosity() {
	log.SetLevel(log.InfoLevel)
	if rootVerboseFlag {
		log.SetLevel(log.DebugLevel)
	}
	errors.SetHandler(&errors.LogHandler{Verbose: rootVerboseFlag})
}

// loadConfig builds the clock face configuration from the defaults, the
// config file at path (or ./clockface.yaml when path is empty) and the
// name=value overrides, in that order.
func loadConfig(path string, overrides []string) (clockface.Config, error) {
	var (
		file *config.Config
		err  error
	)
	if path != "" {
		file, err = config.Load(path)
	} else {
		file, err = config.LoadOptional(".")
	}
	if err != nil {
		return clockface.Config{}, err
	}
	if err := file.CheckVersion(Version); err != nil {
		return clockface.Config{}, err
	}
	if err := file.Set(overrides); err != nil {
		return clockface.Config{}, err
	}
	cfg := clockface.DefaultConfig()
	if err := file.Apply(&cfg); err != nil {
		return clockface.Config{}, err
	}
	log.WithField("entries", len(file.Entries)).Debug("configuration loaded")
	return cfg, nil
}

// Execute is the main entry point for CLI interface
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
