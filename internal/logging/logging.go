// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap logger shared by the CLI and its stages.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

// New returns a sugared logger writing to stderr. JSON selects zap's
// production encoder; otherwise a compact console encoder is used. Verbose
// lowers the level to debug.
func New(cfg types.LogConfig) (*zap.SugaredLogger, error) {
	if cfg.JSON {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level(cfg))
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
		l, err := zc.Build()
		if err != nil {
			return nil, err
		}
		return l.Sugar(), nil
	}
	return NewConsole(os.Stderr, cfg), nil
}

// NewConsole returns a console logger writing to w.
func NewConsole(w io.Writer, cfg types.LogConfig) *zap.SugaredLogger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = ""
	ec.CallerKey = ""
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), level(cfg))
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func level(cfg types.LogConfig) zapcore.Level {
	if cfg.Verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
