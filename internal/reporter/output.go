package reporter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/rs/zerolog"
)

// OutputManager sends rendered reports to stdout or a file
type OutputManager struct {
	stdout      io.Writer
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewOutputManager creates an OutputManager writing to stdout when no file is given
func NewOutputManager(stdout io.Writer, logger zerolog.Logger) *OutputManager {
	return &OutputManager{
		stdout:      stdout,
		fileManager: common.NewFileManager(logger),
		logger:      logger.With().Str("module", "ReportOutput").Logger(),
	}
}

// Write renders report with rep and writes it to outputFile, or stdout when empty.
// Failures wrap common.ErrOutput.
func (m *OutputManager) Write(rep Reporter, report *models.Report, source, outputFile string) error {
	var buf bytes.Buffer
	if err := rep.Render(&buf, report, source); err != nil {
		return fmt.Errorf("%w: failed to render report: %v", common.ErrOutput, err)
	}

	if outputFile == "" {
		if _, err := m.stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("%w: failed to write report: %v", common.ErrOutput, err)
		}
		return nil
	}

	opts := common.DefaultFileWriteOptions()
	opts.Permissions = FilePermissions
	if err := m.fileManager.WriteFile(outputFile, buf.Bytes(), opts); err != nil {
		return fmt.Errorf("%w: %v", common.ErrOutput, err)
	}
	m.logger.Info().Str("path", outputFile).Msg("Report written")
	return nil
}
