// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sixs-engine/internal/batch"
	"github.com/pdiddy/sixs-engine/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract results from a directory of saved 6S reports",
	Long: `Batch parses every <name>.out file in a directory, reading stderr from
a <name>.err sibling when one exists, and writes <name>.yaml for each run
that parses. Runs whose YAML is newer than their sources are skipped unless
--force is given. A failing run does not stop the batch.

With --watch the directory is parsed again whenever a run file is created
or written, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("output-dir", "", "directory for the YAML results (default: the input directory)")
	batchCmd.Flags().Bool("force", false, "re-parse runs that are already up to date")
	batchCmd.Flags().Bool("save", false, "also save every parsed run in the local store")
	batchCmd.Flags().Bool("watch", false, "keep running and parse new or changed runs as they appear")
	batchCmd.Flags().Duration("debounce", batch.DefaultDebounce, "quiet period after a change before re-parsing (with --watch)")

	bindFlag("batch.output_dir", batchCmd.Flags().Lookup("output-dir"))

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	cfg.Batch.InputDir = args[0]

	force, _ := cmd.Flags().GetBool("force")
	opts := batch.Options{Logger: log, Force: force}

	if save, _ := cmd.Flags().GetBool("save"); save {
		s, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()
		opts.Saver = s
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		log.Infow("watching for 6S output", "dir", cfg.Batch.InputDir)
		return batch.Watch(commandContext(cmd), cfg.Batch, opts, os.Stdout, debounce)
	}

	summary, err := batch.ParseDir(commandContext(cmd), cfg.Batch, opts, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d run(s) failed parsing", summary.Failed)
	}
	return nil
}
