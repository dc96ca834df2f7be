package calendar

import "errors"

// ErrorKind classifies export failures.
type ErrorKind int

const (
	// EmptyShiftSet means there was nothing to export.
	EmptyShiftSet ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyShiftSet:
		return "EmptyShiftSet"
	default:
		return "Unknown"
	}
}

// ExportError is returned by Build and Export.
type ExportError struct {
	Kind ErrorKind
}

func (e *ExportError) Error() string {
	switch e.Kind {
	case EmptyShiftSet:
		return "no shifts found"
	default:
		return "calendar export failed"
	}
}

// Is matches any *ExportError of the same kind, so errors.Is(err, ErrEmptyShiftSet) works.
func (e *ExportError) Is(target error) bool {
	var other *ExportError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// ErrEmptyShiftSet is the sentinel for EmptyShiftSet.
var ErrEmptyShiftSet = &ExportError{Kind: EmptyShiftSet}
