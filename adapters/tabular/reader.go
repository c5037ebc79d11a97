// Package tabular reads and writes row-oriented tabular files. CSV and XLSX
// sources are handled behind one reader so channel feeds can arrive in
// either shape.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"marketlens/domain/table"

	"github.com/xuri/excelize/v2"
)

// FileSource reads one tabular file and implements ports.RowSource
type FileSource struct {
	name     string
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewFileSource creates a source for a CSV or XLSX file. The name
// identifies the source in error messages and channel stamping.
func NewFileSource(name, filePath string) *FileSource {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &FileSource{name: name, filePath: filePath, fileType: fileType}
}

// Name returns the source identifier
func (s *FileSource) Name() string {
	return s.name
}

// Read delivers the file's header and string records
func (s *FileSource) Read() (*table.RawTable, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(s.fileType), s.filePath)
	}

	var rows [][]string
	var err error
	switch s.fileType {
	case "xlsx":
		rows, err = s.readXLSX()
	default:
		rows, err = s.readCSV()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s has no header row", s.filePath)
	}

	raw := &table.RawTable{Name: s.name, Columns: rows[0]}
	if len(rows) > 1 {
		raw.Records = rows[1:]
	}
	return raw, nil
}

func (s *FileSource) readCSV() ([][]string, error) {
	file, err := os.Open(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are padded downstream
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (s *FileSource) readXLSX() ([][]string, error) {
	f, err := excelize.OpenFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		sheet = "Sheet1"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
