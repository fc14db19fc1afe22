// Package output renders ingestion results as plain text or markdown artifacts.
package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/temirov/ingest/internal/aggregate"
	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/walker"
)

const (
	// DefaultSeparatorChar is repeated to build plain text block separators.
	DefaultSeparatorChar = "="
	// DefaultSeparatorWidth is the number of separator characters per line.
	DefaultSeparatorWidth = 48
	// DefaultTopLanguages is the number of languages listed in markdown statistics.
	DefaultTopLanguages = 10

	errorUnsupportedFormatFormat = "unsupported output format %q"
)

// Document is everything a renderer needs for one artifact.
type Document struct {
	Root        string
	GeneratedAt time.Time
	Walk        walker.Result
	// Aggregate configures the content pass; the renderer supplies its own formatter.
	Aggregate aggregate.Options
}

// Renderer writes a complete artifact to sink and returns the aggregation statistics.
type Renderer interface {
	Render(ctx context.Context, sink io.Writer, document Document) (types.AggregationStats, error)
}

// Settings carries the presentation options shared by the renderers.
type Settings struct {
	SeparatorChar  string
	SeparatorWidth int
	TopLanguages   int
}

// NewRenderer returns the renderer registered for format.
func NewRenderer(format string, settings Settings) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case types.FormatText:
		return NewPlainTextRenderer(settings.SeparatorChar, settings.SeparatorWidth), nil
	case types.FormatMarkdown:
		return NewMarkdownRenderer(settings.TopLanguages), nil
	default:
		return nil, fmt.Errorf(errorUnsupportedFormatFormat, format)
	}
}

// documentWriter remembers the first write error so sections can be written without per-line checks.
type documentWriter struct {
	writer io.Writer
	err    error
}

func newDocumentWriter(writer io.Writer) *documentWriter {
	return &documentWriter{writer: writer}
}

func (document *documentWriter) printf(format string, arguments ...any) {
	if document.err != nil {
		return
	}
	_, document.err = fmt.Fprintf(document.writer, format, arguments...)
}

func (document *documentWriter) line(text string) {
	document.printf("%s\n", text)
}

func (document *documentWriter) write(data []byte) {
	if document.err != nil {
		return
	}
	_, document.err = document.writer.Write(data)
}
