package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDatasetNotFound is returned by Load when the dataset file is absent.
// It is fatal to startup; the caller surfaces it to the user and does not
// retry.
var ErrDatasetNotFound = errors.New("dataset file not found")

// SchemaError is returned by Load when required columns are missing from
// the dataset header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset schema mismatch: missing columns: %s",
		strings.Join(e.Missing, ", "))
}
