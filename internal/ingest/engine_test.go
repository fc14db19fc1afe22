package ingest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/temirov/ingest/internal/config"
	"github.com/temirov/ingest/internal/ingest"
	"github.com/temirov/ingest/internal/types"
)

var fixedTime = time.Date(2024, time.May, 6, 7, 8, 9, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func writeFile(t *testing.T, filePath string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", filePath, err)
	}
}

func sampleRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "project")
	writeFile(t, filepath.Join(root, "README.md"), "# Project\n")
	writeFile(t, filepath.Join(root, "src", "index.js"), "console.log('hi');\n")
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(root, "debug.log"), "noise\n")
	writeFile(t, filepath.Join(root, "node_modules", "left-pad", "index.js"), "module.exports = 1;\n")
	return root
}

func optionsWithOutput(outputPath string, format string) config.Options {
	options := config.DefaultOptions()
	options.OutputPath = outputPath
	options.Format = format
	return options
}

func TestRunWritesPlainTextArtifact(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	outputPath := filepath.Join(t.TempDir(), "out.txt")

	result, err := ingest.Run(context.Background(), ingest.Request{
		Root:    root,
		Options: optionsWithOutput(outputPath, types.FormatText),
		Now:     fixedNow,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.OutputPath != outputPath {
		t.Fatalf("output path = %q, expected %q", result.OutputPath, outputPath)
	}
	if result.DiscoveredFiles != 2 || result.Stats.FilesProcessed != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Stats.TotalFiles() != result.DiscoveredFiles {
		t.Fatalf("conservation violated: %+v", result)
	}

	artifact, readErr := os.ReadFile(outputPath)
	if readErr != nil {
		t.Fatalf("read artifact: %v", readErr)
	}
	info, statErr := os.Stat(outputPath)
	if statErr != nil {
		t.Fatalf("stat artifact: %v", statErr)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("artifact mode = %v, expected 0644", info.Mode().Perm())
	}
	text := string(artifact)
	for _, expected := range []string{"File: src/index.js", "console.log('hi');", "File: README.md", "# Project"} {
		if !strings.Contains(text, expected) {
			t.Fatalf("expected %q in artifact:\n%s", expected, text)
		}
	}
	for _, unexpected := range []string{"debug.log", "node_modules", "left-pad"} {
		if strings.Contains(text, unexpected) {
			t.Fatalf("unexpected %q in artifact:\n%s", unexpected, text)
		}
	}
}

func TestRunWritesMarkdownArtifact(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	outputPath := filepath.Join(t.TempDir(), "out.md")

	result, err := ingest.Run(context.Background(), ingest.Request{
		Root:    root,
		Options: optionsWithOutput(outputPath, types.FormatMarkdown),
		Now:     fixedNow,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	artifact, readErr := os.ReadFile(result.OutputPath)
	if readErr != nil {
		t.Fatalf("read artifact: %v", readErr)
	}
	text := string(artifact)
	for _, expected := range []string{"# Project Ingest: project", "```javascript\nconsole.log('hi');\n```", "| Files Processed | 2 |", "| Total Files | 2 |"} {
		if !strings.Contains(text, expected) {
			t.Fatalf("expected %q in artifact:\n%s", expected, text)
		}
	}
}

func TestRunIncludeListOmitsEmptyDirectories(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	outputPath := filepath.Join(t.TempDir(), "out.txt")
	options := optionsWithOutput(outputPath, types.FormatText)
	options.Include = []string{"*.md"}

	result, err := ingest.Run(context.Background(), ingest.Request{Root: root, Options: options, Now: fixedNow})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	artifact, readErr := os.ReadFile(result.OutputPath)
	if readErr != nil {
		t.Fatalf("read artifact: %v", readErr)
	}
	text := string(artifact)
	if strings.Contains(text, "src/") {
		t.Fatalf("directory without included files listed:\n%s", text)
	}
	if !strings.Contains(text, "Total items: 1\n") {
		t.Fatalf("expected one item in header:\n%s", text)
	}
}

func TestRunIsByteIdentical(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	outputDirectory := t.TempDir()
	var artifacts []string
	var stats []types.AggregationStats
	for _, name := range []string{"first.txt", "second.txt"} {
		options := optionsWithOutput(filepath.Join(outputDirectory, name), types.FormatText)
		options.Concurrency = 4
		result, err := ingest.Run(context.Background(), ingest.Request{Root: root, Options: options, Now: fixedNow})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		content, readErr := os.ReadFile(result.OutputPath)
		if readErr != nil {
			t.Fatalf("read artifact: %v", readErr)
		}
		artifacts = append(artifacts, string(content))
		stats = append(stats, result.Stats)
	}
	if artifacts[0] != artifacts[1] {
		t.Fatalf("artifacts differ between runs")
	}
	if stats[0] != stats[1] {
		t.Fatalf("stats differ: %+v vs %+v", stats[0], stats[1])
	}
}

func TestRunExcludesOutputInsideRoot(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	outputPath := filepath.Join(root, "ingest.txt")
	options := optionsWithOutput(outputPath, types.FormatText)

	for iteration := 0; iteration < 2; iteration++ {
		result, err := ingest.Run(context.Background(), ingest.Request{Root: root, Options: options, Now: fixedNow})
		if err != nil {
			t.Fatalf("Run %d: %v", iteration, err)
		}
		if result.DiscoveredFiles != 2 {
			t.Fatalf("run %d discovered %d files, expected the artifact to be excluded", iteration, result.DiscoveredFiles)
		}
	}
}

func TestRunUsesWorkingDirectoryForDefaultOutput(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	workingDirectory := t.TempDir()
	result, err := ingest.Run(context.Background(), ingest.Request{
		Root:             root,
		Options:          config.DefaultOptions(),
		WorkingDirectory: workingDirectory,
		Now:              fixedNow,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.OutputPath != filepath.Join(workingDirectory, "project_ingest.txt") {
		t.Fatalf("unexpected default output %q", result.OutputPath)
	}
}

func TestRunFatalErrorsProduceNoOutput(t *testing.T) {
	t.Parallel()

	validRoot := sampleRoot(t)
	filePath := filepath.Join(validRoot, "README.md")

	invalidOptions := config.DefaultOptions()
	invalidOptions.MaxFileSizeMB = -1

	testCases := []struct {
		name        string
		root        string
		options     config.Options
		expectedErr error
	}{
		{name: "missing root", root: filepath.Join(t.TempDir(), "missing"), options: config.DefaultOptions()},
		{name: "root is a file", root: filePath, options: config.DefaultOptions(), expectedErr: ingest.ErrRootNotDirectory},
		{name: "invalid options", root: validRoot, options: invalidOptions, expectedErr: config.ErrInvalidOptions},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			outputDirectory := t.TempDir()
			options := testCase.options
			options.OutputPath = filepath.Join(outputDirectory, "out.txt")

			_, err := ingest.Run(context.Background(), ingest.Request{Root: testCase.root, Options: options, Now: fixedNow})
			if err == nil {
				t.Fatalf("expected error")
			}
			if testCase.expectedErr != nil && !errors.Is(err, testCase.expectedErr) {
				t.Fatalf("expected %v, got %v", testCase.expectedErr, err)
			}
			entries, readErr := os.ReadDir(outputDirectory)
			if readErr != nil {
				t.Fatalf("read output directory: %v", readErr)
			}
			if len(entries) != 0 {
				t.Fatalf("expected no output files, found %d", len(entries))
			}
		})
	}
}

func TestRunMissingOutputDirectoryIsFatal(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	outputPath := filepath.Join(t.TempDir(), "absent", "out.txt")
	if _, err := ingest.Run(context.Background(), ingest.Request{Root: root, Options: optionsWithOutput(outputPath, types.FormatText)}); err == nil {
		t.Fatalf("expected error when output directory is missing")
	}
}

func TestRunCancelledContextRemovesTemporaryOutput(t *testing.T) {
	t.Parallel()

	root := sampleRoot(t)
	outputDirectory := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ingest.Run(ctx, ingest.Request{
		Root:    root,
		Options: optionsWithOutput(filepath.Join(outputDirectory, "out.txt"), types.FormatText),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	entries, readErr := os.ReadDir(outputDirectory)
	if readErr != nil {
		t.Fatalf("read output directory: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temporary output to be removed, found %d entries", len(entries))
	}
}
