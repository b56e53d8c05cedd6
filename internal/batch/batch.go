// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch parses a directory of saved 6S run outputs.
//
// Each run is a <name>.out file holding the captured stdout, with an
// optional <name>.err sibling holding stderr. Parsed runs are written to
// the output directory as <name>.yaml.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/sixs-engine/internal/outputs"
	"github.com/pdiddy/sixs-engine/pkg/types"
)

const (
	stdoutExt = ".out"
	stderrExt = ".err"
	resultExt = ".yaml"
)

// Saver persists parsed runs. *store.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, rec types.RunRecord) error
}

// Options tunes a batch run.
type Options struct {
	// Logger receives per-run diagnostics. Nil discards them.
	Logger *zap.SugaredLogger

	// Saver, when set, also stores every parsed run.
	Saver Saver

	// Force re-parses runs whose YAML is already up to date.
	Force bool
}

// Summary holds the outcome of a batch run.
type Summary struct {
	Parsed  int
	Skipped int
	Failed  int
}

// Total returns the number of runs processed.
func (s Summary) Total() int {
	return s.Parsed + s.Skipped + s.Failed
}

// HasFailures reports whether any run failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// ParseDir parses every <name>.out file in cfg.InputDir, printing per-run
// status to w and returning a summary. Runs whose YAML is newer than both
// source files are skipped unless opts.Force is set. A failing run is
// counted and does not stop the batch.
func ParseDir(ctx context.Context, cfg types.BatchConfig, opts Options, w io.Writer) (Summary, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = cfg.InputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory: %w", err)
	}

	names, err := runNames(cfg.InputDir)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, name := range names {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		outPath := filepath.Join(cfg.InputDir, name+stdoutExt)
		errPath := filepath.Join(cfg.InputDir, name+stderrExt)
		resultPath := filepath.Join(outDir, name+resultExt)

		if !opts.Force {
			changed, err := hasChanged(resultPath, outPath, errPath)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
				summary.Failed++
				continue
			}
			if !changed {
				fmt.Fprintf(w, "skipped: %s (up to date)\n", name)
				summary.Skipped++
				continue
			}
		}

		rec, err := parseRun(name, outPath, errPath, log)
		if err != nil {
			log.Warnw("parsing run failed", "run", name, "error", err)
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			summary.Failed++
			continue
		}

		// The YAML marks a run as done, so it is written only after the
		// store accepted the run; otherwise a failed save is never retried.
		if opts.Saver != nil {
			if err := opts.Saver.Save(ctx, rec); err != nil {
				fmt.Fprintf(w, "failed:  %s (store: %v)\n", name, err)
				summary.Failed++
				continue
			}
		}

		if err := outputs.WriteRecordYAML(resultPath, rec); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "parsed:  %s (%d values)\n", name, len(rec.Values))
		summary.Parsed++
	}

	fmt.Fprintf(w, "\nBatch summary: %d parsed, %d skipped, %d failed (total: %d)\n",
		summary.Parsed, summary.Skipped, summary.Failed, summary.Total())
	return summary, nil
}

// runNames lists the stems of the .out files in dir in sorted order.
func runNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), stdoutExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), stdoutExt))
	}
	sort.Strings(names)
	return names, nil
}

func parseRun(name, outPath, errPath string, log *zap.SugaredLogger) (types.RunRecord, error) {
	stdout, err := os.ReadFile(outPath)
	if err != nil {
		return types.RunRecord{}, fmt.Errorf("reading %s: %w", outPath, err)
	}

	stderr, err := os.ReadFile(errPath)
	if err != nil && !os.IsNotExist(err) {
		return types.RunRecord{}, fmt.Errorf("reading %s: %w", errPath, err)
	}

	out, err := outputs.Parse(string(stdout), string(stderr), outputs.WithLogger(log.With("run", name)))
	if err != nil {
		return types.RunRecord{}, err
	}
	return out.Record(name, outPath), nil
}

// hasChanged reports whether resultPath is missing or older than any of
// the source files that exist.
func hasChanged(resultPath string, sources ...string) (bool, error) {
	resultInfo, err := os.Stat(resultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat result %s: %w", resultPath, err)
	}

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return false, fmt.Errorf("stat source %s: %w", src, err)
		}
		if info.ModTime().After(resultInfo.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}
