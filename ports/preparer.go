package ports

import (
	"marketlens/domain/dataset"
)

// DatasetPreparer runs the full preparation pipeline and returns the
// prepared-table bundle. Implementations must be pure functions of their
// configured inputs so callers can memoize the result.
type DatasetPreparer interface {
	PrepareAll() (*dataset.Bundle, error)
}
