// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner invokes the 6S executable, either natively or inside a
// docker/podman container, and captures its output streams for parsing.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/sixs-engine/internal/outputs"
	"github.com/pdiddy/sixs-engine/pkg/types"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// DefaultBinary is the executable name of 6S version 1.1.
	DefaultBinary = "sixsV1.1"
	DefaultImage  = "sixs:latest"
)

// Streams holds the captured output of one model run.
type Streams struct {
	Stdout string
	Stderr string
}

// Runner executes 6S with an input deck on stdin.
type Runner interface {
	// Name describes the runner (e.g. "sixsV1.1" or "docker sixs:latest").
	Name() string

	// Available reports whether the runner can execute on this host.
	Available() bool

	// Run feeds deck to 6S and returns both output streams. A run that exits
	// non-zero after writing to stderr is returned as streams, not as an
	// error, so that the output parser reports the stderr text.
	Run(ctx context.Context, deck io.Reader) (Streams, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunCapture(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunCapture(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// capture runs name with args and collects both streams.
func capture(ctx context.Context, ex executor, label, name string, args []string, deck io.Reader) (Streams, error) {
	var stdout, stderr bytes.Buffer
	err := ex.RunCapture(ctx, name, args, deck, &stdout, &stderr)
	streams := Streams{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if ctx.Err() == nil && stderr.Len() > 0 {
			return streams, nil
		}
		if ctx.Err() != nil {
			return Streams{}, fmt.Errorf("running %s: %w", label, ctx.Err())
		}
		return Streams{}, fmt.Errorf("running %s: %w", label, err)
	}
	return streams, nil
}

// Execute runs 6S through r and parses the result. A positive timeout
// bounds the run.
func Execute(ctx context.Context, r Runner, deck io.Reader, timeout time.Duration, log *zap.SugaredLogger) (*outputs.Outputs, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	log.Debugw("running 6S", "runner", r.Name())
	streams, err := r.Run(ctx, deck)
	if err != nil {
		return nil, err
	}
	log.Debugw("6S finished", "runner", r.Name(), "elapsed", time.Since(start),
		"stdout_bytes", len(streams.Stdout), "stderr_bytes", len(streams.Stderr))

	return outputs.Parse(streams.Stdout, streams.Stderr, outputs.WithLogger(log))
}

// Detect selects a runner for cfg. In auto mode the native binary wins when
// it is on PATH; otherwise docker is tried before podman.
func Detect(ctx context.Context, cfg types.RunnerConfig) (Runner, error) {
	return detect(ctx, cfg, defaultExec)
}

func detect(ctx context.Context, cfg types.RunnerConfig, ex executor) (Runner, error) {
	bin := cfg.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	image := cfg.Image
	if image == "" {
		image = DefaultImage
	}
	mode := cfg.Mode
	if mode == "" {
		mode = types.ModeAuto
	}

	switch mode {
	case types.ModeNative, types.ModeAuto:
		native := newNativeRunner(bin, ex)
		if native.Available() {
			return native, nil
		}
		if mode == types.ModeNative {
			if native.err != nil {
				return nil, native.err
			}
			return nil, fmt.Errorf("6S executable %s not found on PATH", bin)
		}
	case types.ModeContainer:
	default:
		return nil, fmt.Errorf("unknown runner mode %q", mode)
	}

	rt, err := detectContainer(ctx, image, ex)
	if err != nil {
		return nil, fmt.Errorf("no 6S runner available: %s not on PATH and %w", bin, err)
	}
	return rt, nil
}
