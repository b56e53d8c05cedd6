// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sixs-engine/internal/outputs"
	"github.com/pdiddy/sixs-engine/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Query parsed runs in the local store",
	Long: `Runs lists, shows, and deletes the parsed runs saved with --save. The
store is a SQLite database under --store-dir.`,
}

// --- list subcommand ---

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

func runRunsList(cmd *cobra.Command, args []string) error {
	s, err := store.Open(engineConfig().Store)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.List(commandContext(cmd), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs stored.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Source", "Created", "Values")
	for _, r := range runs {
		row := []string{r.ID, r.Source, r.CreatedAt.Local().Format(time.DateTime), strconv.Itoa(r.ValueCount)}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the values of a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	s, err := store.Open(engineConfig().Store)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if full, _ := cmd.Flags().GetBool("fulltext"); full {
		fmt.Print(rec.Fulltext)
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		fmt.Printf("Run %s (%s)\n", rec.ID, rec.Source)
		return printValues(os.Stdout, rec)
	case "yaml", "json":
		data, err := outputs.MarshalRecord(rec, format)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}
}

// --- delete subcommand ---

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete stored runs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRunsDelete,
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	s, err := store.Open(engineConfig().Store)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, id := range args {
		if err := s.Delete(commandContext(cmd), id); err != nil {
			return err
		}
		fmt.Printf("Deleted run %s\n", id)
	}
	return nil
}

func init() {
	runsListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use store.max_results)")

	runsShowCmd.Flags().String("format", "table", "output format: table, yaml, or json")
	runsShowCmd.Flags().Bool("fulltext", false, "print the stored 6S report instead of the values")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)

	rootCmd.AddCommand(runsCmd)
}
