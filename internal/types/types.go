// Package types defines every cross‑package data structure used by the ingest CLI.
package types

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"

	SourceFilename  = "filename"
	SourceExtension = "extension"
	SourceFallback  = "fallback"
	SourceUnknown   = "unknown"

	SkipReasonBinary = "binary"
	// SkipReasonTooLargeFormat wraps the human formatted file size.
	SkipReasonTooLargeFormat = "too-large(%s)"
	// SkipReasonUnreadableFormat wraps the stat or open error.
	SkipReasonUnreadableFormat = "unreadable(%v)"
)

// FileEntry is a path discovered during traversal. It is read-only once created.
type FileEntry struct {
	Path         string
	RelativePath string
	IsDirectory  bool
	SizeBytes    int64
}

// SkipDecision records whether a file is excluded from full ingestion and why.
type SkipDecision struct {
	Skip   bool
	Reason string
}

// LanguageDetection is the result of tagging a path with a language.
type LanguageDetection struct {
	Language   string
	Confidence string
	Source     string
	Category   string
}

// AggregationStats summarizes one aggregation run.
type AggregationStats struct {
	FilesProcessed int
	FilesSkipped   int
	Errors         int
	TotalBytes     int64
	TotalTokens    int
	TokenModel     string
}

// TotalFiles returns the number of files accounted for by the statistics.
func (stats AggregationStats) TotalFiles() int {
	return stats.FilesProcessed + stats.FilesSkipped + stats.Errors
}
