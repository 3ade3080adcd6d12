// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdword/internal/history"
	"github.com/pdiddy/mdword/pkg/types"
)

// convertConfig merges defaults, the "convert" section of the config file,
// and command flags, in that order.
func convertConfig(cmd *cobra.Command) (types.ConvertConfig, error) {
	cfg := types.DefaultConvertConfig()
	if err := viper.UnmarshalKey("convert", &cfg); err != nil {
		return cfg, fmt.Errorf("reading convert config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("input-mode") {
		mode, _ := flags.GetString("input-mode")
		cfg.Input = types.InputMode(mode)
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		cfg.Format = types.OutputFormat(strings.ToLower(format))
	}
	if flags.Changed("force") {
		cfg.Force, _ = flags.GetBool("force")
	}
	if flags.Changed("heading-style") {
		specs, _ := flags.GetStringSlice("heading-style")
		headings, err := parseHeadingStyles(specs)
		if err != nil {
			return cfg, err
		}
		if cfg.Styles.Headings == nil {
			cfg.Styles.Headings = map[int]string{}
		}
		for level, style := range headings {
			cfg.Styles.Headings[level] = style
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parseHeadingStyles parses level=Style pairs such as "1=Title".
func parseHeadingStyles(specs []string) (map[int]string, error) {
	out := make(map[int]string, len(specs))
	for _, spec := range specs {
		levelText, style, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("heading style %q: want level=Style", spec)
		}
		level, err := strconv.Atoi(strings.TrimSpace(levelText))
		if err != nil {
			return nil, fmt.Errorf("heading style %q: level must be a number", spec)
		}
		out[level] = strings.TrimSpace(style)
	}
	return out, nil
}

// historyConfig reads the "history" config section. The --history flag,
// when present on cmd, enables the ledger.
func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	cfg := types.HistoryConfig{
		Enabled: viper.GetBool("history.enabled"),
		Path:    viper.GetString("history.path"),
	}
	if f := cmd.Flags().Lookup("history"); f != nil && f.Changed {
		cfg.Enabled, _ = cmd.Flags().GetBool("history")
	}
	if cfg.Path == "" {
		cfg.Path = history.DefaultPath
	}
	return cfg
}
