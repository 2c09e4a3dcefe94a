package source

import "fmt"

// SourceReadError reports a failure to acquire the content of a source unit
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read source %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// TooManyUnitsError reports that more units were acquired than a single run accepts
type TooManyUnitsError struct {
	Count int
	Max   int
}

func (e *TooManyUnitsError) Error() string {
	return fmt.Sprintf("too many source units: %d supplied, at most %d accepted", e.Count, e.Max)
}

// Limit returns an error when units exceeds max; max <= 0 disables the check
func Limit(units []*Unit, max int) error {
	if max <= 0 || len(units) <= max {
		return nil
	}
	return &TooManyUnitsError{Count: len(units), Max: max}
}
