// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sixs-engine/internal/outputs"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print and validate the extraction rule table",
	Long: `Rules prints the table used to extract values from a 6S report: the
search term each line is matched against, the offset of the line holding
the value, the whitespace-separated token index, and the value type. The
table is then checked for duplicate keys and search terms.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	table := outputs.Rules()

	tw := tablewriter.NewWriter(os.Stdout)
	tw.Header("Key", "Search term", "Offset", "Token", "Type")
	for _, r := range table {
		row := []string{
			r.Key,
			strconv.Quote(r.SearchTerm),
			strconv.Itoa(r.LineOffset),
			strconv.Itoa(r.TokenIndex),
			string(r.Coerce.Kind),
		}
		if err := tw.Append(row); err != nil {
			return err
		}
	}
	if err := tw.Render(); err != nil {
		return err
	}

	if err := outputs.ValidateRules(table); err != nil {
		return err
	}
	fmt.Printf("\n%d rules, all valid\n", len(table))
	return nil
}
