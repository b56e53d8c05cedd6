// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sixs-engine CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/sixs-engine/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// log is built from the persistent flags before any subcommand runs.
var log = zap.NewNop().Sugar()

// rootCmd is the base command for the sixs-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "sixs-engine",
	Short: "Run the 6S radiative transfer model and extract its results",
	Long: `sixs-engine runs the 6S radiative transfer model and extracts the
numerical results from its console report: irradiances, apparent
reflectance and radiance, gas transmittance, and water vapour terms.

Use run to execute 6S on an input deck, parse or batch to extract values
from saved output, and runs to query parsed results kept in the local
store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(engineConfig().Log)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		log = l
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debugw("using config file", "path", used)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sixs-engine.yaml or ~/.config/sixs-engine/sixs-engine.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output, including every extracted value")
	rootCmd.PersistentFlags().Bool("log-json", false, "write log lines as JSON")
	rootCmd.PersistentFlags().String("store-dir", defaultStoreDir, "directory containing the run store")

	bindFlag("log.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	bindFlag("log.json", rootCmd.PersistentFlags().Lookup("log-json"))
	bindFlag("store.dir", rootCmd.PersistentFlags().Lookup("store-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sixs-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sixs-engine"))
		}
	}

	viper.SetEnvPrefix("SIXS_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "reading config %s: %v\n", cfgFile, err)
		}
	}
}

// commandContext returns the context the command was executed with. It is
// cancelled on interrupt.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
