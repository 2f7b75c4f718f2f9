package catalog

import (
	"errors"
	"fmt"
)

// ErrMissingSource matches any MissingSourceError via errors.Is.
var ErrMissingSource = errors.New("catalog source missing")

// MissingSourceError reports a source file that could not be read.
// Building stops; no partial catalog is returned.
type MissingSourceError struct {
	Path   string
	Source string // "general" or "regional"
	Err    error
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("%s catalog source not found: %s", e.Source, e.Path)
}

func (e *MissingSourceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMissingSource) succeed.
func (e *MissingSourceError) Is(target error) bool {
	return target == ErrMissingSource
}
