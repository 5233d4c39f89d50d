package orchestrator

import (
	"fmt"
	"io"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/logger"
	"github.com/rs/zerolog"
)

// Run loads configuration, applies overrides, runs one scan and returns the
// process exit code. The report goes to stdout; logs and fatal errors to stderr.
func Run(overrides Overrides, stdout, stderr io.Writer) int {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	cfg, err := loadConfig(overrides, bootstrap)
	if err != nil {
		return fail(stderr, err)
	}

	zLogger, err := logger.NewLoggerBuilder().
		WithConfig(cfg.LogConfig).
		WithConsoleOutput(stderr).
		Build()
	if err != nil {
		return fail(stderr, common.NewConfigurationError("log_config", "log_file", err.Error()))
	}

	so := NewScanOrchestrator(cfg, zLogger, stdout)
	report, err := so.ExecuteScan()
	if err != nil {
		return fail(stderr, err)
	}
	return ExitCode(report, nil)
}

func loadConfig(overrides Overrides, log zerolog.Logger) (*config.GlobalConfig, error) {
	cfg, err := config.LoadGlobalConfig(overrides.ConfigFile, log)
	if err != nil {
		return nil, err
	}
	if err := overrides.Apply(cfg); err != nil {
		return nil, err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "tcscanner: %v\n", err)
	return ExitCode(nil, err)
}
