// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one Markdown article.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// DocumentMeta holds article metadata taken from YAML frontmatter. It is
// written into the generated document's properties.
type DocumentMeta struct {
	Title    string    `json:"title" yaml:"title"`
	Author   string    `json:"author" yaml:"author"`
	Subject  string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	Keywords []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Date     time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// ConversionResult describes a finished (or skipped) conversion.
type ConversionResult struct {
	Status     ConversionStatus `json:"status" yaml:"status"`
	InputPath  string           `json:"input_path" yaml:"input_path"`
	OutputPath string           `json:"output_path" yaml:"output_path"`
	Format     OutputFormat     `json:"format" yaml:"format"`
	Counts     ElementCounts    `json:"counts" yaml:"counts"`
	Bytes      int64            `json:"bytes" yaml:"bytes"`
}

// ConversionRecord is one row of the conversion ledger.
type ConversionRecord struct {
	ID          string           `json:"id" yaml:"id"`
	InputPath   string           `json:"input_path" yaml:"input_path"`
	OutputPath  string           `json:"output_path" yaml:"output_path"`
	Format      OutputFormat     `json:"format" yaml:"format"`
	Status      ConversionStatus `json:"status" yaml:"status"`
	Digest      string           `json:"digest" yaml:"digest"`
	Counts      ElementCounts    `json:"counts" yaml:"counts"`
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
	ConvertedAt time.Time        `json:"converted_at" yaml:"converted_at"`
}
