// Package language tags paths with a language, confidence and category using static tables.
package language

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/temirov/ingest/internal/types"
)

// LanguageText is the fallback language for paths no table recognizes.
const LanguageText = "text"

// Detect determines the language of filePath from its name alone. It performs no I/O and never fails.
func Detect(filePath string) types.LanguageDetection {
	baseName := path.Base(filepath.ToSlash(filePath))

	if language, found := filenameLanguages[baseName]; found {
		return detection(language, types.ConfidenceHigh, types.SourceFilename)
	}

	rawExtension := path.Ext(baseName)
	if rawExtension == "" || rawExtension == baseName {
		// Dotfiles such as ".envrc" have no extension beyond their own name.
		return detection(LanguageText, types.ConfidenceLow, types.SourceFallback)
	}
	if language, found := extensionLanguages[strings.ToLower(rawExtension)]; found {
		return detection(language, types.ConfidenceMedium, types.SourceExtension)
	}
	return detection(LanguageText, types.ConfidenceLow, types.SourceUnknown)
}

// CategoryOf returns the report category for language, CategoryOther when unknown.
func CategoryOf(language string) string {
	if category, found := languageCategories[language]; found {
		return category
	}
	return CategoryOther
}

// FenceTag returns the tag placed after the opening code fence for language.
// Plain text yields an empty tag.
func FenceTag(language string) string {
	if tag, found := fenceTags[language]; found {
		return tag
	}
	return language
}

// Categories returns the canonical ordering of report categories.
func Categories() []string {
	return append([]string(nil), categoryOrder...)
}

func detection(language, confidence, source string) types.LanguageDetection {
	return types.LanguageDetection{
		Language:   language,
		Confidence: confidence,
		Source:     source,
		Category:   CategoryOf(language),
	}
}
