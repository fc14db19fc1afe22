// Package config holds the validated ingestion options and the YAML configuration files that seed them.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/utils"
)

const (
	// DefaultMaxFileSizeMB is the size ceiling above which files are skipped.
	DefaultMaxFileSizeMB = 10.0
	// DefaultTruncateSizeKB disables truncation.
	DefaultTruncateSizeKB = 0.0
	// DefaultConcurrency bounds the number of files read at once.
	DefaultConcurrency = 8
	// DefaultSeparatorChar builds plain text separators.
	DefaultSeparatorChar = "="
	// DefaultSeparatorWidth is the plain text separator length.
	DefaultSeparatorWidth = 48
	// DefaultTopLanguages is the number of languages listed in markdown statistics.
	DefaultTopLanguages = 10
	// DefaultTokenModel selects the tokenizer when token counting is enabled.
	DefaultTokenModel = "gpt-4o"

	defaultOutputNameFormat = "%s_ingest%s"
	textOutputExtension     = ".txt"
	markdownOutputExtension = ".md"
)

// ErrInvalidOptions is wrapped by every validation failure.
var ErrInvalidOptions = errors.New("invalid options")

// Options is the complete, typed configuration of one ingestion run.
type Options struct {
	Exclude        []string
	Include        []string
	MaxFileSizeMB  float64
	TruncateSizeKB float64
	Format         string
	Concurrency    int
	OutputPath     string
	UseGitignore   bool
	SeparatorChar  string
	SeparatorWidth int
	TopLanguages   int
	CountTokens    bool
	TokenModel     string
}

// DefaultOptions returns the options used when neither configuration files nor flags say otherwise.
func DefaultOptions() Options {
	return Options{
		MaxFileSizeMB:  DefaultMaxFileSizeMB,
		TruncateSizeKB: DefaultTruncateSizeKB,
		Format:         types.FormatText,
		Concurrency:    DefaultConcurrency,
		UseGitignore:   true,
		SeparatorChar:  DefaultSeparatorChar,
		SeparatorWidth: DefaultSeparatorWidth,
		TopLanguages:   DefaultTopLanguages,
		TokenModel:     DefaultTokenModel,
	}
}

// Validate checks every field once. The returned error wraps ErrInvalidOptions.
func (options Options) Validate() error {
	var problems []string
	if !(options.MaxFileSizeMB > 0) {
		problems = append(problems, fmt.Sprintf("max file size must be greater than 0 MB, got %v", options.MaxFileSizeMB))
	}
	if !(options.TruncateSizeKB >= 0) {
		problems = append(problems, fmt.Sprintf("truncate size must not be negative, got %v", options.TruncateSizeKB))
	}
	switch options.Format {
	case types.FormatText, types.FormatMarkdown:
	default:
		problems = append(problems, fmt.Sprintf("format must be %q or %q, got %q", types.FormatText, types.FormatMarkdown, options.Format))
	}
	if options.Concurrency < 1 {
		problems = append(problems, fmt.Sprintf("concurrency must be at least 1, got %d", options.Concurrency))
	}
	if utf8.RuneCountInString(options.SeparatorChar) != 1 {
		problems = append(problems, fmt.Sprintf("separator must be a single character, got %q", options.SeparatorChar))
	}
	if options.SeparatorWidth < 1 {
		problems = append(problems, fmt.Sprintf("separator width must be at least 1, got %d", options.SeparatorWidth))
	}
	if options.TopLanguages < 1 {
		problems = append(problems, fmt.Sprintf("top languages must be at least 1, got %d", options.TopLanguages))
	}
	for index, pattern := range options.Include {
		if strings.TrimSpace(pattern) == "" {
			problems = append(problems, fmt.Sprintf("include pattern %d is blank", index))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(problems, "; "))
	}
	return nil
}

// SizeLimitBytes returns MaxFileSizeMB in bytes.
func (options Options) SizeLimitBytes() int64 {
	return utils.MegabytesToBytes(options.MaxFileSizeMB)
}

// TruncateBytes returns TruncateSizeKB in bytes; zero disables truncation.
func (options Options) TruncateBytes() int64 {
	return utils.KilobytesToBytes(options.TruncateSizeKB)
}

// ResolveOutputPath returns OutputPath, or a name derived from root and the format
// inside workingDirectory when no output path was configured.
func (options Options) ResolveOutputPath(root string, workingDirectory string) string {
	if strings.TrimSpace(options.OutputPath) != "" {
		if filepath.IsAbs(options.OutputPath) || workingDirectory == "" {
			return options.OutputPath
		}
		return filepath.Join(workingDirectory, options.OutputPath)
	}
	extension := textOutputExtension
	if options.Format == types.FormatMarkdown {
		extension = markdownOutputExtension
	}
	rootName := filepath.Base(filepath.Clean(root))
	if rootName == "." || rootName == string(filepath.Separator) {
		rootName = utils.ApplicationName
	}
	return filepath.Join(workingDirectory, fmt.Sprintf(defaultOutputNameFormat, rootName, extension))
}
