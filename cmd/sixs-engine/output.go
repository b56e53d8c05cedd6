// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sixs-engine/internal/outputs"
	"github.com/pdiddy/sixs-engine/internal/store"
	"github.com/pdiddy/sixs-engine/pkg/types"
)

// addResultFlags registers the flags shared by run and parse.
func addResultFlags(cmd *cobra.Command) {
	cmd.Flags().String("write-output", "", "write the full 6S report to this file")
	cmd.Flags().String("yaml", "", "export the extracted values to this YAML file")
	cmd.Flags().String("json", "", "export the extracted values to this JSON file")
	cmd.Flags().Bool("save", false, "save the run in the local store")
	cmd.Flags().String("id", "", "run ID used for exports and the store (default: derived from the input file)")
	cmd.Flags().Bool("quiet", false, "do not print the results table")
}

// handleResult prints, exports, and optionally stores a parsed run
// according to the result flags.
func handleResult(cmd *cobra.Command, out *outputs.Outputs, id, source string, w io.Writer) error {
	if flagID, _ := cmd.Flags().GetString("id"); flagID != "" {
		id = flagID
	}
	rec := out.Record(id, source)

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		if err := printValues(w, rec); err != nil {
			return err
		}
	}

	if path, _ := cmd.Flags().GetString("write-output"); path != "" {
		if err := out.WriteOutputFile(path); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote report to %s\n", path)
	}
	if path, _ := cmd.Flags().GetString("yaml"); path != "" {
		if err := outputs.WriteRecordYAML(path, rec); err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported to %s\n", path)
	}
	if path, _ := cmd.Flags().GetString("json"); path != "" {
		if err := outputs.WriteRecordJSON(path, rec); err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported to %s\n", path)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		s, err := store.Open(engineConfig().Store)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Save(commandContext(cmd), rec); err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved run %s\n", rec.ID)
	}
	return nil
}

// printValues renders the extracted values of rec as a table.
func printValues(w io.Writer, rec types.RunRecord) error {
	if len(rec.Values) == 0 {
		fmt.Fprintln(w, "No values extracted.")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("Variable", "Type", "Value")
	for _, v := range rec.Values {
		if err := table.Append([]string{v.Key, string(v.Kind), formatValue(v)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatValue(v types.RunValue) string {
	if v.Kind == types.KindInt {
		return fmt.Sprintf("%d", int64(v.Value))
	}
	return fmt.Sprintf("%g", v.Value)
}
