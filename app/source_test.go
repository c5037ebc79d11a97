package app

import (
	"errors"

	"marketlens/domain/table"
)

// memSource serves an in-memory raw table as a ports.RowSource
type memSource struct {
	name    string
	columns []string
	records [][]string
	err     error
}

func (s *memSource) Name() string { return s.name }

func (s *memSource) Read() (*table.RawTable, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &table.RawTable{Name: s.name, Columns: s.columns, Records: s.records}, nil
}

var errBoom = errors.New("boom")
