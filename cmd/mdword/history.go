// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdword/internal/history"
	"github.com/pdiddy/mdword/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions",
	Long: `History lists the most recent conversions recorded in the ledger
(enabled with convert --history or history.enabled in mdword.yaml).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}
	writeHistoryTable(w, records)
	return nil
}

var failedColor = color.New(color.FgRed)

func writeHistoryTable(w io.Writer, records []types.ConversionRecord) {
	t := newTable("When", "Status", "Format", "Elements", "Input", "Output")
	for _, r := range records {
		t.add(
			r.ConvertedAt.Local().Format(time.DateTime),
			string(r.Status),
			string(r.Format),
			strconv.Itoa(r.Counts.Total()),
			r.InputPath,
			r.OutputPath,
		)
	}
	t.write(w)

	var failed int
	for _, r := range records {
		if r.Status == types.ConversionFailed {
			failed++
		}
	}
	fmt.Fprintf(w, "\n%d conversions", len(records))
	if failed > 0 {
		failedColor.Fprintf(w, " (%d failed)", failed)
	}
	fmt.Fprintln(w)
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records to show")

	rootCmd.AddCommand(historyCmd)
}
