// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdword/internal/convert"
	"github.com/pdiddy/mdword/internal/history"
	"github.com/pdiddy/mdword/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.md> [output]",
	Short: "Convert a Markdown article to a .docx or .rtf document",
	Long: `Convert reads one Markdown article and writes a word-processor
document next to it (or to the given output path). Headings, list items,
quotes, code blocks, and paragraphs get their own paragraph styles; bold,
italic, and inline code survive as run formatting.

An existing output file is left alone unless --force is given.

With --input-mode html the article is first rendered to HTML and the
rendered lines are classified instead of the raw Markdown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd)
	if err != nil {
		return err
	}

	opts := []convert.Option{convert.WithLogger(logger)}
	if hc := historyConfig(cmd); hc.Enabled {
		store, err := history.NewStore(hc)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, convert.WithRecorder(store))
	}

	conv, err := convert.New(cfg, opts...)
	if err != nil {
		return err
	}

	var out string
	if len(args) > 1 {
		out = args[1]
	}

	w := cmd.OutOrStdout()
	result, err := conv.Convert(cmd.Context(), args[0], out, w)
	if err != nil {
		return err
	}
	if result.Status == types.ConversionDone {
		printCounts(w, result.Counts)
	}
	return nil
}

// printCounts writes a one-line summary of emitted elements.
func printCounts(w io.Writer, c types.ElementCounts) {
	summary := color.New(color.FgGreen)
	summary.Fprintf(w, "%d elements", c.Total())
	fmt.Fprintf(w, ": %d headings, %d paragraphs, %d list items, %d quotes, %d code blocks\n",
		c.Headings, c.Paragraphs, c.ListItems, c.Quotes, c.CodeBlocks)
}

func init() {
	convertCmd.Flags().String("input-mode", string(types.InputMarkdown), "input mode: markdown or html")
	convertCmd.Flags().StringP("format", "f", string(types.FormatDOCX), "output format: docx or rtf")
	convertCmd.Flags().Bool("force", false, "overwrite an existing output file")
	convertCmd.Flags().StringSlice("heading-style", nil, "map a heading level to a style, e.g. 1=Title (repeatable)")
	convertCmd.Flags().Bool("history", false, "record the conversion in the history ledger")

	rootCmd.AddCommand(convertCmd)
}
