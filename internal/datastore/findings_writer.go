// Package datastore exports scan findings to parquet files.
package datastore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// WriteResult contains the result of a write operation
type WriteResult struct {
	FilePath       string
	RecordsWritten int
	FileSize       int64
	WriteTime      time.Duration
}

// FindingsWriter writes the findings of one scan to a parquet file
type FindingsWriter struct {
	config      config.StorageConfig
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewFindingsWriter creates a writer for cfg.ParquetFile
func NewFindingsWriter(cfg config.StorageConfig, logger zerolog.Logger) (*FindingsWriter, error) {
	if cfg.ParquetFile == "" {
		return nil, common.NewValidationError("parquet_file", cfg.ParquetFile, "parquet file path cannot be empty")
	}
	moduleLogger := logger.With().Str("module", "FindingsWriter").Logger()
	return &FindingsWriter{
		config:      cfg,
		fileManager: common.NewFileManager(moduleLogger),
		logger:      moduleLogger,
	}, nil
}

// Write replaces the parquet file with one row per finding.
// Failures wrap common.ErrOutput.
func (w *FindingsWriter) Write(source string, scannedAt time.Time, findings []models.Finding) (*WriteResult, error) {
	start := time.Now()
	path := w.config.ParquetFile

	if err := w.fileManager.EnsureDirectory(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrOutput, err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: opening findings file '%s': %v", common.ErrOutput, path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			w.logger.Warn().Err(cerr).Str("path", path).Msg("Failed to close findings file")
		}
	}()

	rows := TransformFindings(source, scannedAt, findings)
	writer := parquet.NewWriter(file, parquet.SchemaOf(models.ParquetFinding{}), compressionOption(w.config.CompressionCodec, w.logger))
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			_ = writer.Close()
			return nil, fmt.Errorf("%w: writing finding for row %d: %v", common.ErrOutput, row.RowIndex, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing parquet writer: %v", common.ErrOutput, err)
	}

	result := &WriteResult{
		FilePath:       path,
		RecordsWritten: len(rows),
		WriteTime:      time.Since(start),
	}
	if info, err := file.Stat(); err == nil {
		result.FileSize = info.Size()
	}

	w.logger.Info().
		Str("path", path).
		Int("records", result.RecordsWritten).
		Dur("duration", result.WriteTime).
		Msg("Findings exported to parquet")
	return result, nil
}

// TransformFindings converts findings to parquet rows stamped with source and scan time
func TransformFindings(source string, scannedAt time.Time, findings []models.Finding) []models.ParquetFinding {
	rows := make([]models.ParquetFinding, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, models.ParquetFinding{
			SourceFile: source,
			RowIndex:   int32(f.RowIndex),
			Line:       int32(f.Line),
			RuleID:     f.RuleID,
			Severity:   string(f.Severity),
			Message:    f.Message,
			FieldName:  f.FieldName,
			ScannedAt:  scannedAt.UnixMilli(),
		})
	}
	return rows
}

// ReadFindings loads every row of a findings file
func ReadFindings(path string) ([]models.ParquetFinding, error) {
	osFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open findings file '%s': %w", path, err)
	}
	defer osFile.Close()

	stat, err := osFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat findings file '%s': %w", path, err)
	}

	pqFile, err := parquet.OpenFile(osFile, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file '%s': %w", path, err)
	}

	reader := parquet.NewReader(pqFile)
	defer reader.Close()

	var rows []models.ParquetFinding
	for {
		var row models.ParquetFinding
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error reading record from parquet file '%s': %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
