package ports

import (
	"marketlens/domain/table"
)

// RowSource delivers row-oriented tabular data from a named source.
// Implementations own the file-reading mechanics; the pipeline only sees
// a header plus string records.
type RowSource interface {
	// Name identifies the source in error messages
	Name() string

	// Read returns the raw header and records
	Read() (*table.RawTable, error)
}
