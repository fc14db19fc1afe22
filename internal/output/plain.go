package output

import (
	"context"
	"io"
	"strings"

	"github.com/temirov/ingest/internal/aggregate"
	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/utils"
)

const (
	plainHeaderDirectoryFormat = "Directory structure for: %s\n"
	plainHeaderGeneratedFormat = "Generated: %s\n"
	plainHeaderItemsFormat     = "Total items: %d\n"
	plainFileHeaderFormat      = "File: %s\n"
	plainSkippedFormat         = "[Skipped: %s]"
	plainReadErrorFormat       = "[Error reading file: %v]"
	plainTruncatedFormat       = "[... truncated: showing first %s of %s ...]\n"
	plainSummaryTitle          = "Summary"
	plainSummaryLineFormat     = "%s: %v\n"
	plainTokensFormat          = "Total tokens: %d (%s)\n"
)

// PlainTextRenderer writes a header, the directory tree and separator-framed file blocks.
type PlainTextRenderer struct {
	separator string
}

// NewPlainTextRenderer builds a renderer whose separator is separatorChar repeated separatorWidth times.
// Empty or non-positive values fall back to the defaults.
func NewPlainTextRenderer(separatorChar string, separatorWidth int) *PlainTextRenderer {
	if separatorChar == "" {
		separatorChar = DefaultSeparatorChar
	}
	if separatorWidth <= 0 {
		separatorWidth = DefaultSeparatorWidth
	}
	return &PlainTextRenderer{separator: strings.Repeat(separatorChar, separatorWidth)}
}

// Render implements Renderer.
func (renderer *PlainTextRenderer) Render(ctx context.Context, sink io.Writer, document Document) (types.AggregationStats, error) {
	header := newDocumentWriter(sink)
	header.printf(plainHeaderDirectoryFormat, document.Root)
	header.printf(plainHeaderGeneratedFormat, utils.FormatTimestamp(document.GeneratedAt))
	header.printf(plainHeaderItemsFormat, document.Walk.Items())
	header.line("")
	for _, treeLine := range document.Walk.TreeLines {
		header.line(treeLine)
	}
	header.line("")
	if header.err != nil {
		return types.AggregationStats{}, header.err
	}

	aggregateOptions := document.Aggregate
	aggregateOptions.Formatter = renderer
	stats, aggregateError := aggregate.Run(ctx, document.Walk.Files, sink, aggregateOptions)
	if aggregateError != nil {
		return stats, aggregateError
	}

	summary := newDocumentWriter(sink)
	summary.line(renderer.separator)
	summary.line(plainSummaryTitle)
	summary.line(renderer.separator)
	summary.printf(plainSummaryLineFormat, "Files processed", stats.FilesProcessed)
	summary.printf(plainSummaryLineFormat, "Files skipped", stats.FilesSkipped)
	summary.printf(plainSummaryLineFormat, "Errors", stats.Errors)
	summary.printf(plainSummaryLineFormat, "Total files", stats.TotalFiles())
	summary.printf(plainSummaryLineFormat, "Total size", utils.FormatFileSize(stats.TotalBytes))
	if stats.TokenModel != "" {
		summary.printf(plainTokensFormat, stats.TotalTokens, stats.TokenModel)
	}
	return stats, summary.err
}

// FormatBlock implements aggregate.BlockFormatter.
func (renderer *PlainTextRenderer) FormatBlock(writer io.Writer, block aggregate.Block) error {
	output := newDocumentWriter(writer)
	output.line(renderer.separator)
	output.printf(plainFileHeaderFormat, block.Entry.RelativePath)
	output.line(renderer.separator)
	output.line("")

	switch {
	case block.ReadError != nil:
		output.printf(plainReadErrorFormat, block.ReadError)
		output.line("")
	case block.Decision.Skip:
		output.printf(plainSkippedFormat, block.Decision.Reason)
		output.line("")
	default:
		output.write(block.Content)
		output.line("")
		if block.Truncated {
			output.printf(plainTruncatedFormat,
				utils.FormatFileSize(int64(len(block.Content))),
				utils.FormatFileSize(block.Entry.SizeBytes))
		}
	}
	output.line("")
	return output.err
}
