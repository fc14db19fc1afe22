// Package ingest runs one complete ingestion: rules, walk, render, and atomic output.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/aggregate"
	"github.com/temirov/ingest/internal/config"
	"github.com/temirov/ingest/internal/ignore"
	"github.com/temirov/ingest/internal/output"
	"github.com/temirov/ingest/internal/tokenizer"
	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/walker"
)

const (
	temporaryOutputPattern = ".ingest-*.tmp"
	outputFileMode         = 0o644
	anchoredPatternPrefix  = "/"

	errorResolveRootFormat   = "resolve root %s: %w"
	errorStatRootFormat      = "stat root %s: %w"
	errorRootNotDirFormat    = "%s: %w"
	errorBuildRulesFormat    = "build ignore rules: %w"
	errorWalkFormat          = "walk %s: %w"
	errorTokenizerFormat     = "initialize tokenizer: %w"
	errorCreateOutputFormat  = "create output in %s: %w"
	errorRenderFormat        = "render %s output: %w"
	errorFlushOutputFormat   = "flush output: %w"
	errorCloseOutputFormat   = "close output: %w"
	errorChmodOutputFormat   = "set output permissions: %w"
	errorRenameOutputFormat  = "move output into place at %s: %w"
	errorResolveOutputFormat = "resolve output path %s: %w"
)

// ErrRootNotDirectory is returned when the requested root exists but is not a directory.
var ErrRootNotDirectory = errors.New("root is not a directory")

// Request describes one ingestion run.
type Request struct {
	Root             string
	Options          config.Options
	WorkingDirectory string
	Logger           *zap.Logger
	// Now defaults to time.Now and stamps the generated artifact.
	Now func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	OutputPath      string
	Stats           types.AggregationStats
	DiscoveredFiles int
	Elapsed         time.Duration
}

// Run validates the request and writes the artifact. Failures before the output is
// moved into place leave no file behind.
func Run(ctx context.Context, request Request) (Result, error) {
	startedAt := time.Now()
	logger := request.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := request.Now
	if now == nil {
		now = time.Now
	}

	options := request.Options
	if validationError := options.Validate(); validationError != nil {
		return Result{}, validationError
	}

	root, rootError := resolveRoot(request.Root)
	if rootError != nil {
		return Result{}, rootError
	}

	workingDirectory := request.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return Result{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}
	outputPath, outputError := filepath.Abs(options.ResolveOutputPath(root, workingDirectory))
	if outputError != nil {
		return Result{}, fmt.Errorf(errorResolveOutputFormat, options.OutputPath, outputError)
	}

	excludePatterns := append([]string{}, options.Exclude...)
	if selfPattern, inside := outputExcludePattern(root, outputPath); inside {
		excludePatterns = append(excludePatterns, selfPattern)
	}
	rules, rulesError := ignore.Build(root, ignore.Options{
		Exclude:      excludePatterns,
		Include:      options.Include,
		UseGitignore: options.UseGitignore,
		Logger:       logger,
	})
	if rulesError != nil {
		return Result{}, fmt.Errorf(errorBuildRulesFormat, rulesError)
	}

	walkResult, walkError := walker.Walk(root, rules, walker.Options{
		Logger:                logger,
		PruneEmptyDirectories: len(rules.IncludePatterns()) > 0,
	})
	if walkError != nil {
		return Result{}, fmt.Errorf(errorWalkFormat, root, walkError)
	}
	logger.Info("Discovered files",
		zap.String("root", root),
		zap.Int("files", len(walkResult.Files)),
		zap.Int("directories", walkResult.Directories))

	var tokenCounter tokenizer.Counter
	if options.CountTokens {
		counter, model, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.TokenModel})
		if counterError != nil {
			return Result{}, fmt.Errorf(errorTokenizerFormat, counterError)
		}
		logger.Debug("Token counting enabled", zap.String("model", model))
		tokenCounter = counter
	}

	renderer, rendererError := output.NewRenderer(options.Format, output.Settings{
		SeparatorChar:  options.SeparatorChar,
		SeparatorWidth: options.SeparatorWidth,
		TopLanguages:   options.TopLanguages,
	})
	if rendererError != nil {
		return Result{}, rendererError
	}

	document := output.Document{
		Root:        root,
		GeneratedAt: now(),
		Walk:        walkResult,
		Aggregate: aggregate.Options{
			Concurrency:    options.Concurrency,
			SizeLimitBytes: options.SizeLimitBytes(),
			TruncateBytes:  options.TruncateBytes(),
			TokenCounter:   tokenCounter,
			Logger:         logger,
		},
	}

	stats, writeError := writeAtomically(ctx, outputPath, renderer, document, options.Format)
	if writeError != nil {
		return Result{}, writeError
	}

	result := Result{
		OutputPath:      outputPath,
		Stats:           stats,
		DiscoveredFiles: len(walkResult.Files),
		Elapsed:         time.Since(startedAt),
	}
	logger.Info("Ingestion complete",
		zap.String("output", outputPath),
		zap.Int("processed", stats.FilesProcessed),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("errors", stats.Errors),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func resolveRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, root, absoluteError)
	}
	info, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return "", fmt.Errorf(errorStatRootFormat, absoluteRoot, statError)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(errorRootNotDirFormat, absoluteRoot, ErrRootNotDirectory)
	}
	return absoluteRoot, nil
}

// outputExcludePattern returns an anchored pattern for outputPath when it lies inside root.
func outputExcludePattern(root string, outputPath string) (string, bool) {
	relativePath, relativeError := filepath.Rel(root, outputPath)
	if relativeError != nil || relativePath == "." || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return "", false
	}
	return anchoredPatternPrefix + filepath.ToSlash(relativePath), true
}

// writeAtomically renders into a temporary file beside outputPath and renames it on success.
func writeAtomically(ctx context.Context, outputPath string, renderer output.Renderer, document output.Document, format string) (stats types.AggregationStats, err error) {
	destinationDirectory := filepath.Dir(outputPath)
	temporaryFile, createError := os.CreateTemp(destinationDirectory, temporaryOutputPattern)
	if createError != nil {
		return types.AggregationStats{}, fmt.Errorf(errorCreateOutputFormat, destinationDirectory, createError)
	}
	temporaryPath := temporaryFile.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = temporaryFile.Close()
		}
		_ = os.Remove(temporaryPath)
	}()

	bufferedWriter := bufio.NewWriter(temporaryFile)
	stats, renderError := renderer.Render(ctx, bufferedWriter, document)
	if renderError != nil {
		return stats, fmt.Errorf(errorRenderFormat, format, renderError)
	}
	if flushError := bufferedWriter.Flush(); flushError != nil {
		return stats, fmt.Errorf(errorFlushOutputFormat, flushError)
	}
	closed = true
	if closeError := temporaryFile.Close(); closeError != nil {
		return stats, fmt.Errorf(errorCloseOutputFormat, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, outputFileMode); chmodError != nil {
		return stats, fmt.Errorf(errorChmodOutputFormat, chmodError)
	}
	if renameError := os.Rename(temporaryPath, outputPath); renameError != nil {
		return stats, fmt.Errorf(errorRenameOutputFormat, outputPath, renameError)
	}
	return stats, nil
}
