package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	consoleEncoding = "console"
	jsonEncoding    = "json"
)

// LoggerOptions tunes the application logger.
type LoggerOptions struct {
	Verbose bool
}

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// When stderr is not a terminal the logger emits JSON lines instead.
func NewApplicationLogger(options LoggerOptions) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = consoleEncoding
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		config.Encoding = jsonEncoding
	}
	if options.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if config.Encoding == consoleEncoding {
		config.EncoderConfig.TimeKey = ""
		config.EncoderConfig.NameKey = ""
	}
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}
