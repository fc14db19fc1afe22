// Package aggregate streams classified file content into one sink with bounded concurrency.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/ingest/internal/classify"
	"github.com/temirov/ingest/internal/language"
	"github.com/temirov/ingest/internal/tokenizer"
	"github.com/temirov/ingest/internal/types"
)

const (
	errorWriteBlockFormat = "write block for %s: %w"
	errorOpenFormat       = "open %s: %w"
	errorReadFormat       = "read %s: %w"
)

// ErrNoFormatter is returned when Run is called without a BlockFormatter.
var ErrNoFormatter = errors.New("aggregate: block formatter is required")

// Block is the fully prepared result for one file, handed to the formatter in submission order.
// Tokens stays zero unless a token counter is configured.
type Block struct {
	Entry     types.FileEntry
	Decision  types.SkipDecision
	Detection types.LanguageDetection
	Content   []byte
	Truncated bool
	Tokens    int
	ReadError error
}

// BlockFormatter renders one Block into the output sink.
type BlockFormatter interface {
	FormatBlock(writer io.Writer, block Block) error
}

// Opener opens a classified file for reading.
type Opener func(filePath string) (io.ReadCloser, error)

// Options configures a run. SizeLimitBytes is the skip ceiling; TruncateBytes of zero disables truncation.
// Open defaults to os.Open.
type Options struct {
	Concurrency    int
	SizeLimitBytes int64
	TruncateBytes  int64
	Formatter      BlockFormatter
	TokenCounter   tokenizer.Counter
	Logger         *zap.Logger
	Open           Opener
}

// Run classifies and reads every file with at most Concurrency jobs in flight
// and writes the resulting blocks to sink in the order of files. Per-file
// failures become inline blocks; only a sink failure or context cancellation
// is returned as an error.
func Run(ctx context.Context, files []types.FileEntry, sink io.Writer, options Options) (types.AggregationStats, error) {
	var stats types.AggregationStats
	if options.Formatter == nil {
		return stats, ErrNoFormatter
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := options.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if options.TokenCounter != nil {
		stats.TokenModel = options.TokenCounter.Name()
	}
	if options.Open == nil {
		options.Open = openFile
	}

	runContext, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	group, groupContext := errgroup.WithContext(runContext)
	group.SetLimit(concurrency)

	pending := make(chan chan Block, concurrency)
	go dispatch(groupContext, group, files, pending, options, logger)

	var writeError error
	for slot := range pending {
		block := <-slot
		if writeError != nil {
			continue
		}
		if formatError := options.Formatter.FormatBlock(sink, block); formatError != nil {
			writeError = fmt.Errorf(errorWriteBlockFormat, block.Entry.RelativePath, formatError)
			cancelRun()
			continue
		}
		recordBlock(&stats, block)
	}

	if waitError := group.Wait(); waitError != nil && writeError == nil {
		writeError = waitError
	}
	if writeError != nil {
		return stats, writeError
	}
	if contextError := ctx.Err(); contextError != nil {
		return stats, contextError
	}
	return stats, nil
}

// dispatch submits one job per file and queues its result slot in submission order.
func dispatch(ctx context.Context, group *errgroup.Group, files []types.FileEntry, pending chan<- chan Block, options Options, logger *zap.Logger) {
	defer close(pending)
	for _, file := range files {
		slot := make(chan Block, 1)
		select {
		case pending <- slot:
		case <-ctx.Done():
			logger.Debug("Aggregation cancelled", zap.Error(ctx.Err()))
			return
		}
		entry := file
		group.Go(func() error {
			slot <- processFile(ctx, entry, options, logger)
			return nil
		})
	}
}

func processFile(ctx context.Context, entry types.FileEntry, options Options, logger *zap.Logger) Block {
	block := Block{Entry: entry, Detection: language.Detect(entry.Path)}
	if contextError := ctx.Err(); contextError != nil {
		block.ReadError = contextError
		return block
	}

	inspection := classify.Inspect(entry.Path, options.SizeLimitBytes)
	block.Decision = inspection.Decision
	block.Entry.SizeBytes = inspection.SizeBytes
	if block.Decision.Skip {
		logger.Debug("Skipping file", zap.String("path", entry.RelativePath), zap.String("reason", block.Decision.Reason))
		return block
	}

	content, truncated, readError := readContent(options.Open, entry.Path, inspection.SizeBytes, options.TruncateBytes)
	if readError != nil {
		logger.Warn("Failed to read file", zap.String("path", entry.RelativePath), zap.Error(readError))
		block.ReadError = readError
		return block
	}
	block.Content = content
	block.Truncated = truncated

	if options.TokenCounter != nil {
		countResult, countError := tokenizer.CountBytes(options.TokenCounter, content)
		if countError != nil {
			logger.Debug("Token count failed", zap.String("path", entry.RelativePath), zap.Error(countError))
		} else if countResult.Counted {
			block.Tokens = countResult.Tokens
		}
	}
	return block
}

// readContent reads the whole file, or its first truncateBytes when the file is larger.
// A truncated read never ends inside a UTF-8 sequence.
func readContent(open Opener, filePath string, sizeBytes int64, truncateBytes int64) ([]byte, bool, error) {
	fileHandle, openError := open(filePath)
	if openError != nil {
		return nil, false, fmt.Errorf(errorOpenFormat, filePath, openError)
	}
	defer fileHandle.Close()

	var reader io.Reader = fileHandle
	truncated := false
	if truncateBytes > 0 && sizeBytes > truncateBytes {
		reader = io.LimitReader(fileHandle, truncateBytes)
		truncated = true
	}
	content, readError := io.ReadAll(reader)
	if readError != nil {
		return nil, false, fmt.Errorf(errorReadFormat, filePath, readError)
	}
	if truncated {
		content = trimPartialRune(content)
	}
	return content, truncated, nil
}

// trimPartialRune drops an incomplete multi-byte sequence at the end of content.
// Complete but invalid bytes are left alone.
func trimPartialRune(content []byte) []byte {
	for back := 1; back <= utf8.UTFMax && back <= len(content); back++ {
		start := len(content) - back
		if !utf8.RuneStart(content[start]) {
			continue
		}
		if utf8.FullRune(content[start:]) {
			return content
		}
		return content[:start]
	}
	return content
}

// #nosec G304
func openFile(filePath string) (io.ReadCloser, error) {
	return os.Open(filePath)
}

func recordBlock(stats *types.AggregationStats, block Block) {
	switch {
	case block.ReadError != nil:
		stats.Errors++
	case block.Decision.Skip:
		stats.FilesSkipped++
	default:
		stats.FilesProcessed++
		stats.TotalBytes += int64(len(block.Content))
		stats.TotalTokens += block.Tokens
	}
}
