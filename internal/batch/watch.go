// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

// DefaultDebounce is how long Watch waits after the last change before it
// re-parses, so that a run written in several chunks is parsed once.
const DefaultDebounce = 500 * time.Millisecond

// Watch parses cfg.InputDir once and then again whenever a .out or .err file
// in it is created or written, until ctx is cancelled. Up-to-date runs are
// skipped as in ParseDir, so only new or changed runs are re-parsed.
func Watch(ctx context.Context, cfg types.BatchConfig, opts Options, w io.Writer, debounce time.Duration) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InputDir); err != nil {
		return fmt.Errorf("watching %s: %w", cfg.InputDir, err)
	}

	if _, err := ParseDir(ctx, cfg, opts, w); err != nil {
		return err
	}
	// A forced first pass must not force every later one.
	opts.Force = false

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if ext := filepath.Ext(event.Name); ext != stdoutExt && ext != stderrExt {
				continue
			}
			log.Debugw("run output changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			if _, err := ParseDir(ctx, cfg, opts, w); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", "error", err)
		}
	}
}
