package xlsx

import (
	"errors"
	"fmt"
)

// ErrNoSheet indicates the workbook contains no sheets at all.
var ErrNoSheet = errors.New("workbook contains no sheets")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetError represents an error while reading or writing one part of a
// sheet.
type SheetError struct {
	Sheet string
	Part  string // "cells", "merges", "sizes", "visibility", "borders"
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.Sheet, e.Part, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
