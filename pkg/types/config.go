// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// InputMode selects how a Markdown source is turned into classifier lines.
type InputMode string

const (
	// InputMarkdown splits the raw Markdown on newlines.
	InputMarkdown InputMode = "markdown"
	// InputHTML renders the Markdown to HTML first and classifies the
	// rendered lines.
	InputHTML InputMode = "html"
)

// OutputFormat selects the document format written by the converter.
type OutputFormat string

const (
	FormatDOCX OutputFormat = "docx"
	FormatRTF  OutputFormat = "rtf"
)

// Extension returns the file extension, including the dot, for the format.
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// Style IDs a heading level may be mapped to.
const (
	StyleTitle    = "Title"
	StyleHeading1 = "Heading1"
	StyleHeading2 = "Heading2"
	StyleHeading3 = "Heading3"
)

// HeadingStyles lists the style IDs accepted in StyleConfig.Headings.
var HeadingStyles = []string{StyleTitle, StyleHeading1, StyleHeading2, StyleHeading3}

// MaxHeadingLevel is the deepest heading level the classifier emits.
const MaxHeadingLevel = 3

// PageConfig holds page margins in inches.
type PageConfig struct {
	Top    float64 `json:"top" yaml:"top" mapstructure:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom" mapstructure:"bottom"`
	Left   float64 `json:"left" yaml:"left" mapstructure:"left"`
	Right  float64 `json:"right" yaml:"right" mapstructure:"right"`
}

// FontConfig holds font families and sizes (points) for generated documents.
type FontConfig struct {
	// Body is the Latin font of the Normal style.
	Body string `json:"body" yaml:"body" mapstructure:"body"`

	// EastAsia is the font used for CJK text in the Normal style.
	EastAsia string `json:"east_asia" yaml:"east_asia" mapstructure:"east_asia"`

	// Code is the monospace font for code blocks and inline code runs.
	Code string `json:"code" yaml:"code" mapstructure:"code"`

	BodySize float64 `json:"body_size" yaml:"body_size" mapstructure:"body_size"`
	CodeSize float64 `json:"code_size" yaml:"code_size" mapstructure:"code_size"`
}

// StyleConfig controls how structural elements map onto document styles.
type StyleConfig struct {
	// Headings maps a heading level (1-3) to a style ID. Levels without an
	// entry fall back to Heading<level>.
	Headings map[int]string `json:"headings" yaml:"headings" mapstructure:"headings"`

	// ShowCodeLanguage emits a caption line naming the language above each
	// code block that declares one.
	ShowCodeLanguage bool `json:"show_code_language" yaml:"show_code_language" mapstructure:"show_code_language"`
}

// HeadingStyle returns the style ID for a heading level.
func (s StyleConfig) HeadingStyle(level int) string {
	if id, ok := s.Headings[level]; ok && id != "" {
		return id
	}
	switch {
	case level <= 1:
		return StyleHeading1
	case level == 2:
		return StyleHeading2
	default:
		return StyleHeading3
	}
}

// ConvertConfig holds settings for a single Markdown-to-document conversion.
type ConvertConfig struct {
	Input  InputMode    `json:"input" yaml:"input" mapstructure:"input"`
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
	Page   PageConfig   `json:"page" yaml:"page" mapstructure:"page"`
	Fonts  FontConfig   `json:"fonts" yaml:"fonts" mapstructure:"fonts"`
	Styles StyleConfig  `json:"styles" yaml:"styles" mapstructure:"styles"`

	// Force overwrites an existing output file instead of skipping it.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// DefaultConvertConfig returns the settings used when no config file or
// flag overrides them.
func DefaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		Input:  InputMarkdown,
		Format: FormatDOCX,
		Page:   PageConfig{Top: 1, Bottom: 1, Left: 1, Right: 1},
		Fonts: FontConfig{
			Body:     "Calibri",
			EastAsia: "Microsoft YaHei",
			Code:     "Consolas",
			BodySize: 11,
			CodeSize: 10,
		},
		Styles: StyleConfig{
			Headings: map[int]string{
				1: StyleHeading1,
				2: StyleHeading2,
				3: StyleHeading3,
			},
			ShowCodeLanguage: true,
		},
	}
}

// Validate checks the configuration before a conversion starts.
func (c ConvertConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Input, validation.Required, validation.In(InputMarkdown, InputHTML)),
		validation.Field(&c.Format, validation.Required, validation.In(FormatDOCX, FormatRTF)),
		validation.Field(&c.Page),
		validation.Field(&c.Fonts),
		validation.Field(&c.Styles),
	)
}

// Validate checks that margins are non-negative and fit on a page.
func (p PageConfig) Validate() error {
	margin := []validation.Rule{validation.Min(0.0), validation.Max(4.0)}
	return validation.ValidateStruct(&p,
		validation.Field(&p.Top, margin...),
		validation.Field(&p.Bottom, margin...),
		validation.Field(&p.Left, margin...),
		validation.Field(&p.Right, margin...),
	)
}

// Validate checks that fonts are named and sizes are positive.
func (f FontConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Body, validation.Required),
		validation.Field(&f.Code, validation.Required),
		validation.Field(&f.BodySize, validation.Required, validation.Min(1.0), validation.Max(96.0)),
		validation.Field(&f.CodeSize, validation.Required, validation.Min(1.0), validation.Max(96.0)),
	)
}

// Validate checks that every heading mapping names a level 1-3 and a known
// style ID.
func (s StyleConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Headings, validation.By(func(value any) error {
			headings, _ := value.(map[int]string)
			for level, id := range headings {
				if level < 1 || level > MaxHeadingLevel {
					return fmt.Errorf("heading level %d out of range 1-%d", level, MaxHeadingLevel)
				}
				if !knownHeadingStyle(id) {
					return fmt.Errorf("heading level %d: unknown style %q", level, id)
				}
			}
			return nil
		})),
	)
}

func knownHeadingStyle(id string) bool {
	for _, s := range HeadingStyles {
		if s == id {
			return true
		}
	}
	return false
}

// CopyConfig lists the project files and directories the copy utility
// places into a destination subdirectory.
type CopyConfig struct {
	Files []string `json:"files" yaml:"files" mapstructure:"files"`
	Dirs  []string `json:"dirs" yaml:"dirs" mapstructure:"dirs"`

	// Dest is the destination subdirectory, relative to the source base.
	Dest string `json:"dest" yaml:"dest" mapstructure:"dest"`

	// WriteGitignore writes a default .gitignore into Dest when none was
	// copied.
	WriteGitignore bool `json:"write_gitignore" yaml:"write_gitignore" mapstructure:"write_gitignore"`
}

// DefaultCopyConfig returns the file set of a Vite web project.
func DefaultCopyConfig() CopyConfig {
	return CopyConfig{
		Files: []string{
			"README.md",
			"index.html",
			"package.json",
			"package-lock.json",
			"vite.config.js",
			"tailwind.config.js",
			"postcss.config.js",
			".gitignore",
		},
		Dirs:           []string{"src"},
		Dest:           "bundle",
		WriteGitignore: true,
	}
}

// Validate checks that a destination is set.
func (c CopyConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dest, validation.Required),
	)
}

// HistoryConfig holds settings for the optional conversion ledger.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default .mdword/history.db).
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}
