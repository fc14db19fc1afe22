// Package ignore compiles default, gitignore and caller supplied patterns into one matcher.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/utils"
)

const (
	commentPrefix           = "#"
	directorySuffix         = "/"
	warningLoadIgnore       = "ignore file not loaded"
	errorBlankIncludeFormat = "include pattern %d is blank"
)

// defaultPatterns are denied for every run before any project or caller rule.
var defaultPatterns = []string{
	"node_modules/",
	utils.GitDirectoryName + directorySuffix,
	".svn/",
	".hg/",
	"dist/",
	"build/",
	"out/",
	"target/",
	"coverage/",
	".next/",
	".nuxt/",
	".cache/",
	"__pycache__/",
	".venv/",
	".tox/",
	".idea/",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Cargo.lock",
	"poetry.lock",
	"composer.lock",
	"*.log",
	".DS_Store",
	utils.GitIgnoreFileName,
	utils.IgnoreFileName,
}

// DefaultPatterns returns a copy of the built-in deny list.
func DefaultPatterns() []string {
	return append([]string(nil), defaultPatterns...)
}

// Options controls which sources feed the rule set.
type Options struct {
	Exclude      []string
	Include      []string
	UseGitignore bool
	Logger       *zap.Logger
}

// RuleSet decides whether a root-relative path is excluded from ingestion.
// It is immutable once built and safe for concurrent use.
type RuleSet struct {
	denyPatterns    []string
	includePatterns []string
	deny            *gitignore.GitIgnore
	include         *gitignore.GitIgnore
}

// Build assembles the rule set for root. Missing or unreadable ignore files add no rules.
func Build(root string, options Options) (*RuleSet, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	includePatterns := make([]string, 0, len(options.Include))
	for index, pattern := range options.Include {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			return nil, fmt.Errorf(errorBlankIncludeFormat, index)
		}
		includePatterns = append(includePatterns, trimmedPattern)
	}

	denyPatterns := DefaultPatterns()
	for _, pattern := range options.Exclude {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		denyPatterns = append(denyPatterns, trimmedPattern)
	}

	if options.UseGitignore {
		denyPatterns = append(denyPatterns, loadPatterns(filepath.Join(root, utils.GitIgnoreFileName), logger)...)
	}
	denyPatterns = append(denyPatterns, loadPatterns(filepath.Join(root, utils.IgnoreFileName), logger)...)

	ruleSet := &RuleSet{
		denyPatterns:    utils.DeduplicatePatterns(denyPatterns),
		includePatterns: utils.DeduplicatePatterns(includePatterns),
	}
	ruleSet.deny = gitignore.CompileIgnoreLines(ruleSet.denyPatterns...)
	if len(ruleSet.includePatterns) > 0 {
		ruleSet.include = gitignore.CompileIgnoreLines(ruleSet.includePatterns...)
	}

	logger.Debug("Compiled ignore rules",
		zap.String("root", root),
		zap.Int("denyPatterns", len(ruleSet.denyPatterns)),
		zap.Int("includePatterns", len(ruleSet.includePatterns)))
	return ruleSet, nil
}

// IsIgnored reports whether relativePath is excluded. Directories are only
// tested against the deny set so traversal can reach included files below them.
func (ruleSet *RuleSet) IsIgnored(relativePath string, isDirectory bool) bool {
	candidate := strings.TrimPrefix(filepath.ToSlash(relativePath), "./")
	if candidate == "" || candidate == "." {
		return false
	}
	if isDirectory {
		return ruleSet.deny.MatchesPath(strings.TrimSuffix(candidate, directorySuffix) + directorySuffix)
	}
	if ruleSet.deny.MatchesPath(candidate) {
		return true
	}
	if ruleSet.include != nil && !ruleSet.include.MatchesPath(candidate) {
		return true
	}
	return false
}

// DenyPatterns returns the ordered deny list the rule set was compiled from.
func (ruleSet *RuleSet) DenyPatterns() []string {
	return append([]string(nil), ruleSet.denyPatterns...)
}

// IncludePatterns returns the include allow-list, empty when every path is allowed.
func (ruleSet *RuleSet) IncludePatterns() []string {
	return append([]string(nil), ruleSet.includePatterns...)
}

// loadPatterns reads an ignore file, dropping comments and blank lines.
//
// #nosec G304
func loadPatterns(ignoreFilePath string, logger *zap.Logger) []string {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if !os.IsNotExist(openFileError) {
			logger.Debug(warningLoadIgnore, zap.String("path", ignoreFilePath), zap.Error(openFileError))
		}
		return nil
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		logger.Debug(warningLoadIgnore, zap.String("path", ignoreFilePath), zap.Error(scanError))
		return nil
	}
	return patterns
}
