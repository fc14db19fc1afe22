package language_test

import (
	"testing"

	"github.com/temirov/ingest/internal/language"
	"github.com/temirov/ingest/internal/types"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     string
		expected types.LanguageDetection
	}{
		{
			name:     "filename table wins over extension",
			path:     "/repo/package.json",
			expected: types.LanguageDetection{Language: "json", Confidence: types.ConfidenceHigh, Source: types.SourceFilename, Category: language.CategoryData},
		},
		{
			name:     "dockerfile without extension",
			path:     "deploy/Dockerfile",
			expected: types.LanguageDetection{Language: "dockerfile", Confidence: types.ConfidenceHigh, Source: types.SourceFilename, Category: language.CategoryBuild},
		},
		{
			name:     "dotfile by name",
			path:     ".bashrc",
			expected: types.LanguageDetection{Language: "bash", Confidence: types.ConfidenceHigh, Source: types.SourceFilename, Category: language.CategoryScripting},
		},
		{
			name:     "javascript extension",
			path:     "src/index.js",
			expected: types.LanguageDetection{Language: "javascript", Confidence: types.ConfidenceMedium, Source: types.SourceExtension, Category: language.CategoryWebFrontend},
		},
		{
			name:     "extension is case insensitive",
			path:     "README.MD",
			expected: types.LanguageDetection{Language: "markdown", Confidence: types.ConfidenceMedium, Source: types.SourceExtension, Category: language.CategoryDocumentation},
		},
		{
			name:     "go source",
			path:     "cmd/main.go",
			expected: types.LanguageDetection{Language: "go", Confidence: types.ConfidenceMedium, Source: types.SourceExtension, Category: language.CategoryBackend},
		},
		{
			name:     "no extension falls back",
			path:     "scripts/run",
			expected: types.LanguageDetection{Language: "text", Confidence: types.ConfidenceLow, Source: types.SourceFallback, Category: language.CategoryOther},
		},
		{
			name:     "unlisted dotfile falls back",
			path:     ".envrc",
			expected: types.LanguageDetection{Language: "text", Confidence: types.ConfidenceLow, Source: types.SourceFallback, Category: language.CategoryOther},
		},
		{
			name:     "unknown extension",
			path:     "data/blob.xyz",
			expected: types.LanguageDetection{Language: "text", Confidence: types.ConfidenceLow, Source: types.SourceUnknown, Category: language.CategoryOther},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := language.Detect(testCase.path)
			if got != testCase.expected {
				t.Fatalf("Detect(%q) = %+v, expected %+v", testCase.path, got, testCase.expected)
			}
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"a.ts", "Makefile", "x", "y.unknown"} {
		first := language.Detect(path)
		for iteration := 0; iteration < 10; iteration++ {
			if again := language.Detect(path); again != first {
				t.Fatalf("Detect(%q) changed between calls: %+v vs %+v", path, first, again)
			}
		}
	}
}

func TestFenceTag(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"text":       "",
		"javascript": "javascript",
		"go-module":  "go",
		"ignore":     "gitignore",
	}
	for languageName, expected := range testCases {
		if got := language.FenceTag(languageName); got != expected {
			t.Errorf("FenceTag(%q) = %q, expected %q", languageName, got, expected)
		}
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	t.Parallel()

	categories := language.Categories()
	if categories[len(categories)-1] != language.CategoryOther {
		t.Fatalf("expected %q last, got %v", language.CategoryOther, categories)
	}
	categories[0] = "mutated"
	if language.Categories()[0] == "mutated" {
		t.Fatalf("Categories exposed internal state")
	}
}
