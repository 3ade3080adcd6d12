// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs one Markdown article through loading, classification,
// and document building, and writes the result to disk.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/mdword/internal/classify"
	"github.com/pdiddy/mdword/internal/docx"
	"github.com/pdiddy/mdword/internal/render"
	"github.com/pdiddy/mdword/internal/rtf"
	"github.com/pdiddy/mdword/internal/source"
	"github.com/pdiddy/mdword/pkg/types"
)

// Builder is a document under construction. The docx and rtf packages
// provide the implementations.
type Builder interface {
	classify.Sink
	io.WriterTo

	// SetMeta sets the document properties.
	SetMeta(meta types.DocumentMeta)
}

// NewBuilder returns an empty document for the configured output format.
func NewBuilder(cfg types.ConvertConfig) (Builder, error) {
	switch cfg.Format {
	case types.FormatDOCX, "":
		return docx.New(cfg), nil
	case types.FormatRTF:
		return rtf.New(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.Format)
	}
}

// Recorder receives one record per conversion attempt. history.Store
// implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithRecorder records each conversion attempt.
func WithRecorder(r Recorder) Option {
	return func(c *Converter) { c.recorder = r }
}

// WithRenderer sets the renderer used in HTML input mode.
func WithRenderer(r *render.Renderer) Option {
	return func(c *Converter) { c.renderer = r }
}

// WithBuilder replaces NewBuilder as the source of output documents.
func WithBuilder(fn func(types.ConvertConfig) (Builder, error)) Option {
	return func(c *Converter) { c.newBuilder = fn }
}

// Converter converts single articles. It is safe to reuse across calls but
// each call is sequential.
type Converter struct {
	cfg      types.ConvertConfig
	renderer *render.Renderer
	logger   *zap.Logger
	recorder Recorder
	now      func() time.Time

	newBuilder func(types.ConvertConfig) (Builder, error)
}

// New validates cfg and returns a Converter.
func New(cfg types.ConvertConfig, opts ...Option) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid convert config: %w", err)
	}
	c := &Converter{
		cfg:    cfg,
		logger:     zap.NewNop(),
		now:        time.Now,
		newBuilder: NewBuilder,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg.Input == types.InputHTML && c.renderer == nil {
		c.renderer = render.New(render.Options{})
	}
	return c, nil
}

// OutputPath returns the default output path for inPath: the same
// directory and base name with the format's extension.
func OutputPath(inPath string, format types.OutputFormat) string {
	base := strings.TrimSuffix(inPath, filepath.Ext(inPath))
	return base + format.Extension()
}

// Convert converts the article at inPath and writes the document to
// outPath (OutputPath when empty). A missing input fails even when the
// output exists; otherwise an existing output is skipped unless Force is
// set. The document is built in memory and written once, so a failed
// conversion never leaves a partial file. Errors raised by the document
// builder are returned unwrapped. A per-file status line is written to w.
func (c *Converter) Convert(ctx context.Context, inPath, outPath string, w io.Writer) (types.ConversionResult, error) {
	if outPath == "" {
		outPath = OutputPath(inPath, c.cfg.Format)
	}
	result := types.ConversionResult{
		InputPath:  inPath,
		OutputPath: outPath,
		Format:     c.cfg.Format,
	}
	rec := types.ConversionRecord{
		InputPath:  inPath,
		OutputPath: outPath,
		Format:     c.cfg.Format,
	}
	name := filepath.Base(inPath)

	if err := ctx.Err(); err != nil {
		return c.fail(ctx, w, name, result, rec, err)
	}

	article, err := source.Load(inPath, c.cfg.Input, c.renderer)
	if err != nil {
		return c.fail(ctx, w, name, result, rec, err)
	}
	rec.Digest = article.Digest
	c.logger.Debug("loaded article",
		zap.String("input", inPath),
		zap.Int("lines", len(article.Lines)),
		zap.String("title", article.Meta.Title))

	if !c.cfg.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (%s already exists)\n", name, outPath)
			c.logger.Debug("output exists", zap.String("output", outPath))
			result.Status = types.ConversionSkipped
			rec.Status = types.ConversionSkipped
			c.record(ctx, rec)
			return result, nil
		}
	}

	builder, err := c.newBuilder(c.cfg)
	if err != nil {
		return c.fail(ctx, w, name, result, rec, err)
	}
	meta := article.Meta
	if meta.Title == "" {
		meta.Title = strings.TrimSuffix(name, filepath.Ext(name))
	}
	builder.SetMeta(meta)

	counter := &countingSink{Sink: builder}
	if err := classify.Emit(article.Lines, counter); err != nil {
		result.Counts = counter.counts
		rec.Counts = counter.counts
		return c.fail(ctx, w, name, result, rec, err)
	}
	result.Counts = counter.counts
	rec.Counts = counter.counts

	var buf bytes.Buffer
	if _, err := builder.WriteTo(&buf); err != nil {
		return c.fail(ctx, w, name, result, rec, fmt.Errorf("serialising document: %w", err))
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return c.fail(ctx, w, name, result, rec, fmt.Errorf("creating output directory: %w", err))
		}
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return c.fail(ctx, w, name, result, rec, fmt.Errorf("writing %s: %w", outPath, err))
	}

	result.Status = types.ConversionDone
	result.Bytes = int64(buf.Len())
	rec.Status = types.ConversionDone

	fmt.Fprintf(w, "converted: %s -> %s (%d elements)\n", name, outPath, result.Counts.Total())
	c.logger.Info("converted",
		zap.String("input", inPath),
		zap.String("output", outPath),
		zap.String("format", string(c.cfg.Format)),
		zap.Int("elements", result.Counts.Total()),
		zap.Int64("bytes", result.Bytes))
	c.record(ctx, rec)
	return result, nil
}

func (c *Converter) fail(ctx context.Context, w io.Writer, name string, result types.ConversionResult, rec types.ConversionRecord, err error) (types.ConversionResult, error) {
	fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
	c.logger.Error("conversion failed", zap.String("input", result.InputPath), zap.Error(err))

	result.Status = types.ConversionFailed
	rec.Status = types.ConversionFailed
	rec.Error = err.Error()
	c.record(ctx, rec)
	return result, err
}

// record hands rec to the recorder. Ledger failures are logged and never
// fail the conversion.
func (c *Converter) record(ctx context.Context, rec types.ConversionRecord) {
	if c.recorder == nil {
		return
	}
	rec.ConvertedAt = c.now().UTC()
	if err := c.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		c.logger.Warn("recording conversion", zap.String("input", rec.InputPath), zap.Error(err))
	}
}

// countingSink tallies the elements its wrapped sink accepted.
type countingSink struct {
	classify.Sink
	counts types.ElementCounts
}

func (s *countingSink) AddHeading(text string, level int) error {
	return s.count(types.KindHeading, s.Sink.AddHeading(text, level))
}

func (s *countingSink) AddParagraph(runs []types.Run) error {
	return s.count(types.KindParagraph, s.Sink.AddParagraph(runs))
}

func (s *countingSink) AddListItem(text string) error {
	return s.count(types.KindListItem, s.Sink.AddListItem(text))
}

func (s *countingSink) AddQuote(text string) error {
	return s.count(types.KindQuote, s.Sink.AddQuote(text))
}

func (s *countingSink) AddCodeBlock(language, body string) error {
	return s.count(types.KindCodeBlock, s.Sink.AddCodeBlock(language, body))
}

func (s *countingSink) count(kind types.ElementKind, err error) error {
	if err == nil {
		s.counts.Add(kind)
	}
	return err
}
