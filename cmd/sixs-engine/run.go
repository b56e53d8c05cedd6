// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sixs-engine/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run <deck>",
	Short: "Run 6S on an input deck and extract its results",
	Long: `Run feeds an input deck to the 6S executable and extracts the results
from its report. The native binary is used when it is on PATH; otherwise
the deck runs inside a docker or podman container built from --image.

Any output on stderr is treated as a failed run. Use "-" to read the deck
from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("mode", "", "runner mode: auto, native, or container")
	runCmd.Flags().String("binary", "", "6S executable name or path (default sixsV1.1)")
	runCmd.Flags().String("image", "", "container image providing 6S (default sixs:latest)")
	runCmd.Flags().Duration("timeout", 0, "maximum duration of the model run (0 = no limit)")
	addResultFlags(runCmd)

	bindFlag("runner.mode", runCmd.Flags().Lookup("mode"))
	bindFlag("runner.binary", runCmd.Flags().Lookup("binary"))
	bindFlag("runner.image", runCmd.Flags().Lookup("image"))
	bindFlag("runner.timeout", runCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	deckPath := args[0]
	cfg := engineConfig()

	deck := os.Stdin
	// Decks read from stdin have no name to derive an ID from.
	id := uuid.New().String()
	if deckPath != "-" {
		f, err := os.Open(deckPath)
		if err != nil {
			return fmt.Errorf("opening deck: %w", err)
		}
		defer f.Close()
		deck = f
		id = strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))
	}

	ctx := commandContext(cmd)

	r, err := runner.Detect(ctx, cfg.Runner)
	if err != nil {
		return err
	}
	log.Infow("running 6S", "runner", r.Name(), "deck", deckPath)

	out, err := runner.Execute(ctx, r, deck, cfg.Runner.Timeout, log)
	if err != nil {
		return err
	}
	return handleResult(cmd, out, id, deckPath, os.Stdout)
}
