// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     cmd
// Description: Root command, configuration and logger setup
// Author:      Mike Stoffels
// Created:     2025-02-21
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cliparse/foundation/argparse"
	mdwerror "github.com/msto63/cliparse/foundation/core/error"
	mdwlog "github.com/msto63/cliparse/foundation/core/log"
	"github.com/msto63/cliparse/pkg/core/config"
	"github.com/msto63/cliparse/pkg/core/logging"
	"github.com/msto63/cliparse/pkg/core/version"
)

var (
	cfgFile string
	verbose bool

	// Set by setup before any subcommand runs
	appConfig *config.Config
	logger    *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cliparse",
	Short: "Tokenizer for CLI argument values",
	Long: `cliparse splits management CLI argument values into tokens.

It understands quoted strings, ${...} expressions, back-quoted
commands, bytes{...} literals, list separators and name=value
assignments.

Configuration is read from --config, $CLIPARSE_CONFIG, ./cliparse.toml,
./cliparse.yaml or ~/.config/cliparse/config.{toml,yaml}.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads the configuration and creates the logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	appConfig = cfg

	lc := logging.FromConfig(cfg, "cliparse")
	lc.Output = cmd.ErrOrStderr()
	logger = logging.NewLogger(lc).WithFields(mdwlog.Fields{
		"command": cmd.Name(),
		"version": version.Platform,
	})

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"config":  cfgFile,
		"history": cfg.History.Path,
	})
	return nil
}

// loadConfig prefers an explicit file and falls back to defaults only when
// no config file exists anywhere
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		if os.Getenv(config.EnvConfigPath) == "" && mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// tokenizerOptions builds tokenizer options from config with flag overrides
func tokenizerOptions(log *mdwlog.Logger, deactivate, closer string, trace bool) (argparse.Options, error) {
	tc := appConfig.Tokenizer
	if deactivate != "" {
		tc.Deactivated = deactivate
	}
	if closer != "" {
		tc.Closer = closer
	}

	r, err := tc.CloserRune()
	if err != nil {
		return argparse.Options{}, err
	}

	return argparse.Options{
		Logger:         log,
		MaxInputLength: tc.MaxInputLength,
		Deactivated:    tc.Deactivated,
		Closer:         r,
		Trace:          tc.Trace || trace,
	}, nil
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
