// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sixs-engine/internal/outputs"
)

var parseCmd = &cobra.Command{
	Use:   "parse <stdout-file>",
	Short: "Extract results from a saved 6S report",
	Long: `Parse reads the captured stdout of a previous 6S run and extracts its
results. Pass the captured stderr with --stderr; any text in it fails the
run the same way a live run would.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("stderr", "", "file holding the captured stderr of the run")
	addResultFlags(parseCmd)

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	stdout, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	var stderr []byte
	if errPath, _ := cmd.Flags().GetString("stderr"); errPath != "" {
		stderr, err = os.ReadFile(errPath)
		if err != nil {
			return fmt.Errorf("reading stderr: %w", err)
		}
	}

	out, err := outputs.Parse(string(stdout), string(stderr), outputs.WithLogger(log))
	if err != nil {
		return err
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return handleResult(cmd, out, id, path, os.Stdout)
}
