package logger

import (
	"strings"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/rs/zerolog"
)

// Format selects the log line layout
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
	FormatText
)

// Options is the resolved form of config.LogConfig.
// Console output is always on; file output is on when FilePath is set.
type Options struct {
	Level      zerolog.Level
	Format     Format
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// DefaultOptions logs warnings and above to the console only, leaving stdout to the report
func DefaultOptions() Options {
	return Options{
		Level:      zerolog.WarnLevel,
		Format:     FormatConsole,
		MaxSizeMB:  config.DefaultMaxLogSizeMB,
		MaxBackups: config.DefaultMaxLogBackups,
	}
}

// OptionsFromConfig resolves the log section. An empty level means warn.
func OptionsFromConfig(cfg config.LogConfig) (Options, error) {
	opts := DefaultOptions()
	opts.Format = parseFormat(cfg.LogFormat)
	opts.FilePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		opts.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		opts.MaxBackups = cfg.MaxLogBackups
	}

	if strings.TrimSpace(cfg.LogLevel) == "" {
		return opts, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return opts, common.WrapError(err, "invalid log level")
	}
	opts.Level = level
	return opts, nil
}

func parseFormat(format string) Format {
	switch strings.ToLower(format) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}
