// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/sixs-engine/internal/runner"
	"github.com/pdiddy/sixs-engine/pkg/types"
)

const (
	defaultStoreDir   = ".sixs-engine"
	defaultMaxResults = 20
)

func init() {
	viper.SetDefault("runner.mode", string(types.ModeAuto))
	viper.SetDefault("runner.binary", runner.DefaultBinary)
	viper.SetDefault("runner.image", runner.DefaultImage)
	viper.SetDefault("runner.timeout", "0s")
	viper.SetDefault("store.dir", defaultStoreDir)
	viper.SetDefault("store.max_results", defaultMaxResults)

	// Nested keys map to SIXS_ENGINE_RUNNER_MODE and so on.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// bindFlag ties a config key to a flag so that an explicit flag overrides the
// config file and environment.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// engineConfig resolves the effective configuration from defaults, the
// config file, SIXS_ENGINE_* variables, and bound flags.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		Runner: types.RunnerConfig{
			Mode:    types.RunnerMode(viper.GetString("runner.mode")),
			Binary:  viper.GetString("runner.binary"),
			Image:   viper.GetString("runner.image"),
			Timeout: viper.GetDuration("runner.timeout"),
		},
		Batch: types.BatchConfig{
			OutputDir: viper.GetString("batch.output_dir"),
		},
		Store: types.StoreConfig{
			Dir:        viper.GetString("store.dir"),
			MaxResults: viper.GetInt("store.max_results"),
		},
		Log: types.LogConfig{
			Verbose: viper.GetBool("log.verbose"),
			JSON:    viper.GetBool("log.json"),
		},
	}
}
