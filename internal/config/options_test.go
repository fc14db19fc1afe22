package config_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/ingest/internal/config"
	"github.com/temirov/ingest/internal/types"
)

func TestDefaultOptionsAreValid(t *testing.T) {
	t.Parallel()

	if err := config.DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
}

func TestValidateRejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(*config.Options)
		expected string
	}{
		{name: "zero max size", mutate: func(options *config.Options) { options.MaxFileSizeMB = 0 }, expected: "max file size"},
		{name: "negative truncate", mutate: func(options *config.Options) { options.TruncateSizeKB = -1 }, expected: "truncate size"},
		{name: "unknown format", mutate: func(options *config.Options) { options.Format = "pdf" }, expected: "format must be"},
		{name: "zero concurrency", mutate: func(options *config.Options) { options.Concurrency = 0 }, expected: "concurrency"},
		{name: "long separator", mutate: func(options *config.Options) { options.SeparatorChar = "==" }, expected: "separator must"},
		{name: "zero separator width", mutate: func(options *config.Options) { options.SeparatorWidth = 0 }, expected: "separator width"},
		{name: "zero top languages", mutate: func(options *config.Options) { options.TopLanguages = 0 }, expected: "top languages"},
		{name: "blank include", mutate: func(options *config.Options) { options.Include = []string{"*.go", " "} }, expected: "include pattern 1"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			options := config.DefaultOptions()
			testCase.mutate(&options)
			err := options.Validate()
			if !errors.Is(err, config.ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
			if !strings.Contains(err.Error(), testCase.expected) {
				t.Fatalf("error %q does not mention %q", err, testCase.expected)
			}
		})
	}
}

func TestValidateAcceptsZeroTruncation(t *testing.T) {
	t.Parallel()

	options := config.DefaultOptions()
	options.TruncateSizeKB = 0
	options.Format = types.FormatMarkdown
	if err := options.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if options.TruncateBytes() != 0 {
		t.Fatalf("expected truncation disabled")
	}
}

func TestSizeConversions(t *testing.T) {
	t.Parallel()

	options := config.DefaultOptions()
	options.MaxFileSizeMB = 0.5
	options.TruncateSizeKB = 2
	if options.SizeLimitBytes() != 512*1024 {
		t.Fatalf("size limit = %d", options.SizeLimitBytes())
	}
	if options.TruncateBytes() != 2048 {
		t.Fatalf("truncate bytes = %d", options.TruncateBytes())
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	workingDirectory := filepath.Join(string(filepath.Separator), "work")
	root := filepath.Join(string(filepath.Separator), "src", "project")

	textOptions := config.DefaultOptions()
	if got := textOptions.ResolveOutputPath(root, workingDirectory); got != filepath.Join(workingDirectory, "project_ingest.txt") {
		t.Fatalf("text default output = %q", got)
	}

	markdownOptions := config.DefaultOptions()
	markdownOptions.Format = types.FormatMarkdown
	if got := markdownOptions.ResolveOutputPath(root, workingDirectory); got != filepath.Join(workingDirectory, "project_ingest.md") {
		t.Fatalf("markdown default output = %q", got)
	}

	explicitOptions := config.DefaultOptions()
	explicitOptions.OutputPath = "out/report.txt"
	if got := explicitOptions.ResolveOutputPath(root, workingDirectory); got != filepath.Join(workingDirectory, "out", "report.txt") {
		t.Fatalf("relative explicit output = %q", got)
	}
}
