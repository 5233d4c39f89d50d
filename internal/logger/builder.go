// Package logger builds the zerolog logger from the log_config section.
package logger

import (
	"io"
	stdlog "log" // Standard Go log package, aliased to avoid conflict with zerolog field

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	opts    Options
	factory *WriterFactory
	err     error
}

// NewLoggerBuilder creates a builder with DefaultOptions
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		opts:    DefaultOptions(),
		factory: NewWriterFactory(),
	}
}

// WithConfig resolves cfg; a bad level is reported by Build
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	lb.opts, lb.err = OptionsFromConfig(cfg)
	return lb
}

// WithConsoleOutput redirects console output, stderr by default
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.factory.console = w
	return lb
}

// Build creates the logger and routes the standard log package through it
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	if lb.err != nil {
		return zerolog.Nop(), lb.err
	}

	writers := []io.Writer{lb.factory.CreateConsoleWriter(lb.opts.Format)}
	if lb.opts.FilePath != "" {
		fileWriter, err := lb.factory.CreateFileWriter(lb.opts)
		if err != nil {
			return zerolog.Nop(), common.WrapError(err, "failed to create log file writer")
		}
		writers = append(writers, fileWriter)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.opts.Level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lb.opts.Level)
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}
