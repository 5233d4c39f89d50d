// Package rowsource reads the test-case table into records.
package rowsource

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/rs/zerolog"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is the parsed input: header, field keys per header cell, and the data rows
type Table struct {
	Path    string
	Columns []string
	// Keys holds the Fields key of each header cell: the logical name
	// for mapped columns, the header text otherwise.
	Keys    []string
	Records []models.Record
}

// Width returns the number of header cells
func (t *Table) Width() int {
	return len(t.Columns)
}

// CheckColumns returns an input error naming every required field key the
// header does not provide.
func (t *Table) CheckColumns(required []string, mapping config.ColumnMapping) error {
	present := make(map[string]bool, len(t.Keys))
	for _, k := range t.Keys {
		present[k] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, fmt.Sprintf("%q", mapping.HeaderFor(col)))
		}
	}
	if len(missing) > 0 {
		return common.NewInputError(t.Path, "header is missing required columns: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// CSVSource reads delimited files described by an InputConfig
type CSVSource struct {
	cfg         config.InputConfig
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewCSVSource creates a CSV row source
func NewCSVSource(cfg config.InputConfig, logger zerolog.Logger) *CSVSource {
	return &CSVSource{
		cfg:         cfg,
		fileManager: common.NewFileManager(logger),
		logger:      logger.With().Str("module", "RowSource").Logger(),
	}
}

// Load opens path, reads the whole table and closes the file on every path.
// All failures are *common.InputError.
func (s *CSVSource) Load(path string) (*Table, error) {
	file, err := s.fileManager.Open(path, common.FileReadOptions{MaxSize: s.cfg.MaxFileSizeBytes()})
	if err != nil {
		return nil, common.NewInputError(path, "cannot open input file", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Str("path", path).Msg("Failed to close input file")
		}
	}()

	table, err := s.Read(file, path)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("path", path).
		Int("columns", table.Width()).
		Int("rows", len(table.Records)).
		Msg("Input table loaded")
	return table, nil
}

// Read parses a table from r; name identifies the source in errors
func (s *CSVSource) Read(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.Comma = s.cfg.DelimiterRune()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, common.NewInputError(name, "empty file", nil)
	}
	if err != nil {
		return nil, common.NewInputError(name, "malformed header", err)
	}

	table := &Table{Path: name}
	if err := s.parseHeader(table, header); err != nil {
		return nil, err
	}

	index := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.NewInputError(name, fmt.Sprintf("malformed data row %d", index+1), err)
		}

		line, _ := reader.FieldPos(0)
		if isWhitespaceLine(row, table.Width()) {
			s.logger.Debug().Int("line", line).Msg("Skipping whitespace-only line")
			continue
		}

		index++
		table.Records = append(table.Records, models.NewRecord(index, line, len(row), s.fields(table.Keys, row)))
	}

	return table, nil
}

func (s *CSVSource) parseHeader(table *Table, header []string) error {
	byHeader := s.cfg.Columns.ByHeader()
	seen := make(map[string]int, len(header))
	keyOwner := make(map[string]string, len(header))

	var problems []string
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			problems = append(problems, fmt.Sprintf("header cell %d is blank", i+1))
		} else if first, dup := seen[name]; dup {
			problems = append(problems, fmt.Sprintf("header cell %d duplicates cell %d (%q)", i+1, first, name))
		} else {
			seen[name] = i + 1
		}

		key := name
		if logical, ok := byHeader[name]; ok {
			key = logical
		}
		if owner, taken := keyOwner[key]; taken && owner != name && name != "" {
			problems = append(problems, fmt.Sprintf("header cell %d (%q) collides with column %q mapped to %q", i+1, name, owner, key))
		} else if !taken {
			keyOwner[key] = name
		}
		table.Columns = append(table.Columns, name)
		table.Keys = append(table.Keys, key)
	}

	if len(problems) > 0 {
		return common.NewInputError(table.Path, "malformed header: "+strings.Join(problems, "; "), nil)
	}
	return nil
}

// fields maps cells to keys. Extra cells are dropped; missing cells stay absent.
func (s *CSVSource) fields(keys, row []string) map[string]string {
	out := make(map[string]string, len(keys))
	for i, key := range keys {
		if i >= len(row) {
			break
		}
		out[key] = row[i]
	}
	return out
}

// isWhitespaceLine reports a line holding nothing but spaces, which the csv
// reader returns as a single cell. It is skipped like an empty line.
// A one-column table keeps it so empty_row can flag it.
func isWhitespaceLine(row []string, headerWidth int) bool {
	return headerWidth > 1 && len(row) == 1 && strings.TrimSpace(row[0]) == ""
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
