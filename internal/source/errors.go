package source

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing is returned when a configured source path does not exist.
	ErrMissing = errors.New("data source missing")
	// ErrCorrupt is returned when a source exists but cannot be parsed.
	ErrCorrupt = errors.New("data source corrupt")
)

// Error describes a failed source read. It unwraps to both the kind
// sentinel (ErrMissing or ErrCorrupt) and the underlying cause.
type Error struct {
	Kind   error
	Source string // "page scores" or "metadata"
	Path   string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s %s", e.Kind, e.Source, e.Path)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Source, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func missing(src, path string, err error) error {
	return &Error{Kind: ErrMissing, Source: src, Path: path, Err: err}
}

func corrupt(src, path string, err error) error {
	return &Error{Kind: ErrCorrupt, Source: src, Path: path, Err: err}
}

// IsMissing reports whether err is a missing-source failure.
func IsMissing(err error) bool { return errors.Is(err, ErrMissing) }

// IsCorrupt reports whether err is a corrupt-source failure.
func IsCorrupt(err error) bool { return errors.Is(err, ErrCorrupt) }
