package output

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/temirov/ingest/internal/aggregate"
	"github.com/temirov/ingest/internal/language"
	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/utils"
)

const (
	markdownTitleFormat        = "# Project Ingest: %s\n\n"
	markdownGeneratedFormat    = "_Generated: %s_\n\n"
	markdownTocEntryFormat     = "- [%s](#%s)\n"
	markdownTocNestedFormat    = "  - [%s](#%s)\n"
	markdownSectionFormat      = "## %s\n\n"
	markdownSubsectionFormat   = "### %s\n\n"
	markdownBulletFormat       = "- **%s:** %s\n"
	markdownFileListFormat     = "- `%s` (%s, %s)\n"
	markdownCountRowFormat     = "| %s | %d | %.1f%% |\n"
	markdownBucketRowFormat    = "| %s | %d |\n"
	markdownSummaryRowFormat   = "| %s | %v |\n"
	markdownSkippedFormat      = "> **Skipped:** %s\n\n"
	markdownReadErrorFormat    = "> **Error reading file:** %v\n\n"
	markdownTruncatedFormat    = "> **Truncated:** showing first %s of %s\n\n"
	markdownTokensFormat       = "%d (%s)"
	markdownMinimumFenceLength = 3

	sectionTableOfContents = "Table of Contents"
	sectionOverview        = "Project Overview"
	sectionStatistics      = "Statistics"
	sectionTree            = "Directory Structure"
	sectionCategories      = "Files by Category"
	sectionContents        = "File Contents"
	sectionSummary         = "Processing Summary"

	fenceCharacter = "`"
	treeFenceTag   = "text"
)

// MarkdownRenderer writes a structured report: statistics and tree first, then every file.
type MarkdownRenderer struct {
	topLanguages int
}

// NewMarkdownRenderer builds a renderer listing at most topLanguages languages in its statistics.
func NewMarkdownRenderer(topLanguages int) *MarkdownRenderer {
	if topLanguages <= 0 {
		topLanguages = DefaultTopLanguages
	}
	return &MarkdownRenderer{topLanguages: topLanguages}
}

// Render implements Renderer.
func (renderer *MarkdownRenderer) Render(ctx context.Context, sink io.Writer, document Document) (types.AggregationStats, error) {
	statistics := collectStatistics(document.Walk.Files)

	preamble := newDocumentWriter(sink)
	renderer.writeTitle(preamble, document)
	renderer.writeTableOfContents(preamble, statistics)
	renderer.writeOverview(preamble, document, statistics)
	renderer.writeStatistics(preamble, statistics)
	renderer.writeTree(preamble, document)
	renderer.writeCategories(preamble, statistics)
	preamble.printf(markdownSectionFormat, sectionContents)
	if preamble.err != nil {
		return types.AggregationStats{}, preamble.err
	}

	aggregateOptions := document.Aggregate
	aggregateOptions.Formatter = renderer
	stats, aggregateError := aggregate.Run(ctx, document.Walk.Files, sink, aggregateOptions)
	if aggregateError != nil {
		return stats, aggregateError
	}

	summary := newDocumentWriter(sink)
	summary.printf(markdownSectionFormat, sectionSummary)
	summary.line("| Metric | Value |")
	summary.line("|---|---|")
	summary.printf(markdownSummaryRowFormat, "Files Processed", stats.FilesProcessed)
	summary.printf(markdownSummaryRowFormat, "Files Skipped", stats.FilesSkipped)
	summary.printf(markdownSummaryRowFormat, "Errors", stats.Errors)
	summary.printf(markdownSummaryRowFormat, "Total Files", stats.TotalFiles())
	summary.printf(markdownSummaryRowFormat, "Total Size", utils.FormatFileSize(stats.TotalBytes))
	if stats.TokenModel != "" {
		summary.printf(markdownSummaryRowFormat, "Total Tokens", formatTokens(stats))
	}
	return stats, summary.err
}

// FormatBlock implements aggregate.BlockFormatter.
func (renderer *MarkdownRenderer) FormatBlock(writer io.Writer, block aggregate.Block) error {
	output := newDocumentWriter(writer)
	output.printf(markdownSubsectionFormat, block.Entry.RelativePath)
	output.printf(markdownBulletFormat, "Language", block.Detection.Language)
	output.printf(markdownBulletFormat, "Size", utils.FormatFileSize(block.Entry.SizeBytes))
	output.printf(markdownBulletFormat, "Category", block.Detection.Category)
	output.line("")

	switch {
	case block.ReadError != nil:
		output.printf(markdownReadErrorFormat, block.ReadError)
	case block.Decision.Skip:
		output.printf(markdownSkippedFormat, block.Decision.Reason)
	default:
		fence := fenceFor(block.Content)
		output.line(fence + language.FenceTag(block.Detection.Language))
		output.write(block.Content)
		if len(block.Content) > 0 && block.Content[len(block.Content)-1] != '\n' {
			output.line("")
		}
		output.line(fence)
		output.line("")
		if block.Truncated {
			output.printf(markdownTruncatedFormat,
				utils.FormatFileSize(int64(len(block.Content))),
				utils.FormatFileSize(block.Entry.SizeBytes))
		}
	}
	return output.err
}

func (renderer *MarkdownRenderer) writeTitle(output *documentWriter, document Document) {
	output.printf(markdownTitleFormat, filepath.Base(document.Root))
	output.printf(markdownGeneratedFormat, utils.FormatTimestamp(document.GeneratedAt))
}

func (renderer *MarkdownRenderer) writeTableOfContents(output *documentWriter, statistics projectStatistics) {
	output.printf(markdownSectionFormat, sectionTableOfContents)
	for _, section := range []string{sectionOverview, sectionStatistics, sectionTree, sectionCategories} {
		output.printf(markdownTocEntryFormat, section, anchorFor(section))
	}
	for _, category := range statistics.categories {
		output.printf(markdownTocNestedFormat, category.name, anchorFor(category.name))
	}
	output.printf(markdownTocEntryFormat, sectionContents, anchorFor(sectionContents))
	output.printf(markdownTocEntryFormat, sectionSummary, anchorFor(sectionSummary))
	output.line("")
}

func (renderer *MarkdownRenderer) writeOverview(output *documentWriter, document Document, statistics projectStatistics) {
	output.printf(markdownSectionFormat, sectionOverview)
	output.printf(markdownBulletFormat, "Root", "`"+document.Root+"`")
	output.printf(markdownBulletFormat, "Files", strconv.Itoa(len(statistics.files)))
	output.printf(markdownBulletFormat, "Directories", strconv.Itoa(document.Walk.Directories))
	output.printf(markdownBulletFormat, "Total size", utils.FormatFileSize(statistics.totalBytes))
	if len(statistics.languages) > 0 {
		output.printf(markdownBulletFormat, "Primary language", statistics.languages[0].name)
	}
	if document.Walk.Errors > 0 {
		output.printf(markdownBulletFormat, "Unreadable directories", strconv.Itoa(document.Walk.Errors))
	}
	output.line("")
}

func (renderer *MarkdownRenderer) writeStatistics(output *documentWriter, statistics projectStatistics) {
	totalFiles := len(statistics.files)
	output.printf(markdownSectionFormat, sectionStatistics)

	output.printf(markdownSubsectionFormat, "Category Distribution")
	output.line("| Category | Files | Percentage |")
	output.line("|---|---|---|")
	for _, category := range statistics.categories {
		output.printf(markdownCountRowFormat, category.name, category.count, percentage(category.count, totalFiles))
	}
	output.line("")

	output.printf(markdownSubsectionFormat, "Top Languages")
	output.line("| Language | Files | Percentage |")
	output.line("|---|---|---|")
	for _, languageEntry := range statistics.topLanguages(renderer.topLanguages) {
		output.printf(markdownCountRowFormat, languageEntry.name, languageEntry.count, percentage(languageEntry.count, totalFiles))
	}
	output.line("")

	output.printf(markdownSubsectionFormat, "Size Distribution")
	output.line("| Size Range | Files |")
	output.line("|---|---|")
	for _, bucket := range statistics.sizeBuckets {
		output.printf(markdownBucketRowFormat, bucket.name, bucket.count)
	}
	output.line("")
}

func (renderer *MarkdownRenderer) writeTree(output *documentWriter, document Document) {
	output.printf(markdownSectionFormat, sectionTree)
	output.line(strings.Repeat(fenceCharacter, markdownMinimumFenceLength) + treeFenceTag)
	for _, treeLine := range document.Walk.TreeLines {
		output.line(treeLine)
	}
	output.line(strings.Repeat(fenceCharacter, markdownMinimumFenceLength))
	output.line("")
}

func (renderer *MarkdownRenderer) writeCategories(output *documentWriter, statistics projectStatistics) {
	output.printf(markdownSectionFormat, sectionCategories)
	for _, category := range statistics.categories {
		output.printf(markdownSubsectionFormat, category.name)
		for _, file := range statistics.filesByCategory[category.name] {
			output.printf(markdownFileListFormat, file.entry.RelativePath, file.detection.Language, utils.FormatFileSize(file.entry.SizeBytes))
		}
		output.line("")
	}
}

// fenceFor returns a backtick fence longer than any backtick run inside content.
func fenceFor(content []byte) string {
	longestRun, currentRun := 0, 0
	for _, character := range content {
		if character == '`' {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
			continue
		}
		currentRun = 0
	}
	fenceLength := markdownMinimumFenceLength
	if longestRun >= fenceLength {
		fenceLength = longestRun + 1
	}
	return strings.Repeat(fenceCharacter, fenceLength)
}

// anchorFor mirrors the heading anchors generated by common markdown viewers.
func anchorFor(heading string) string {
	var anchor strings.Builder
	for _, character := range strings.ToLower(heading) {
		switch {
		case unicode.IsLetter(character) || unicode.IsDigit(character) || character == '-' || character == '_':
			anchor.WriteRune(character)
		case character == ' ':
			anchor.WriteRune('-')
		}
	}
	return anchor.String()
}

func formatTokens(stats types.AggregationStats) string {
	return fmt.Sprintf(markdownTokensFormat, stats.TotalTokens, stats.TokenModel)
}
