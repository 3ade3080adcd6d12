// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdword/internal/classify"
	"github.com/pdiddy/mdword/internal/render"
	"github.com/pdiddy/mdword/internal/source"
	"github.com/pdiddy/mdword/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.md>",
	Short: "Show how each line of an article is classified",
	Long: `Inspect runs the classifier over an article without writing a
document and prints the resulting elements as YAML, or as a table with
--table. Useful for checking why a line became a paragraph instead of a
list item or heading.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// inspection is the YAML shape printed by inspect.
type inspection struct {
	Path     string              `yaml:"path"`
	Meta     types.DocumentMeta  `yaml:"meta"`
	Counts   types.ElementCounts `yaml:"counts"`
	Elements []types.Element     `yaml:"elements"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd)
	if err != nil {
		return err
	}

	var r *render.Renderer
	if cfg.Input == types.InputHTML {
		r = render.New(render.Options{})
	}
	article, err := source.Load(args[0], cfg.Input, r)
	if err != nil {
		return err
	}

	elements := classify.Collect(article.Lines)
	var counts types.ElementCounts
	for _, el := range elements {
		counts.Add(el.Kind)
	}

	w := cmd.OutOrStdout()
	if table, _ := cmd.Flags().GetBool("table"); table {
		writeElementTable(w, elements)
		printCounts(w, counts)
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(inspection{
		Path:     article.Path,
		Meta:     article.Meta,
		Counts:   counts,
		Elements: elements,
	})
}

// writeElementTable prints one row per element.
func writeElementTable(w io.Writer, elements []types.Element) {
	t := newTable("#", "Kind", "Level", "Text")
	for i, el := range elements {
		level := ""
		if el.Kind == types.KindHeading {
			level = strconv.Itoa(el.Level)
		}
		text := el.Text
		if el.Kind == types.KindCodeBlock {
			text = fmt.Sprintf("[%s] %d lines", el.Language, len(el.Lines))
		}
		t.add(strconv.Itoa(i+1), string(el.Kind), level, strings.TrimSpace(text))
	}
	t.write(w)
}

func init() {
	inspectCmd.Flags().String("input-mode", string(types.InputMarkdown), "input mode: markdown or html")
	inspectCmd.Flags().Bool("table", false, "print a table instead of YAML")

	rootCmd.AddCommand(inspectCmd)
}
