// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunnerMode selects how the 6S executable is invoked.
type RunnerMode string

const (
	// ModeAuto uses the native binary when it is on PATH and falls back to
	// a container runtime otherwise.
	ModeAuto      RunnerMode = "auto"
	ModeNative    RunnerMode = "native"
	ModeContainer RunnerMode = "container"
)

// RunnerConfig holds settings for invoking the 6S executable.
type RunnerConfig struct {
	// Mode selects native, container, or auto detection (default auto).
	Mode RunnerMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// Binary is the 6S executable name or path (default "sixsV1.1").
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// Image is the container image that provides the 6S executable
	// (default "sixs:latest").
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Timeout bounds a single model run. Zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// BatchConfig holds settings for parsing a directory of saved run outputs.
type BatchConfig struct {
	// InputDir contains <name>.out files and optional <name>.err siblings.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives one <name>.yaml per parsed run.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// StoreConfig holds settings for the SQLite run store.
type StoreConfig struct {
	// Dir contains the sixs.db database file.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Verbose enables debug output, including the extracted value mapping.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	// JSON switches to structured JSON log lines.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`
}

// EngineConfig groups all component configurations.
type EngineConfig struct {
	Runner RunnerConfig `json:"runner" yaml:"runner" mapstructure:"runner"`
	Batch  BatchConfig  `json:"batch" yaml:"batch" mapstructure:"batch"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
