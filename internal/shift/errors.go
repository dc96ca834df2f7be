package shift

import "fmt"

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	MalformedDate ErrorKind = iota + 1
	MalformedTime
	MalformedShiftLabel
	InvalidDateConstruction
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedDate:
		return "malformed date"
	case MalformedTime:
		return "malformed time"
	case MalformedShiftLabel:
		return "malformed shift label"
	case InvalidDateConstruction:
		return "invalid date construction"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError reports a label or component that does not fit the expected grammar.
// Input carries the offending text for diagnostics.
type ParseError struct {
	Kind  ErrorKind
	Input string
	Err   error
}

// Sentinels for errors.Is. A ParseError matches the sentinel of the same Kind.
var (
	ErrMalformedDate           = &ParseError{Kind: MalformedDate}
	ErrMalformedTime           = &ParseError{Kind: MalformedTime}
	ErrMalformedShiftLabel     = &ParseError{Kind: MalformedShiftLabel}
	ErrInvalidDateConstruction = &ParseError{Kind: InvalidDateConstruction}
)

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case MalformedDate:
		msg = fmt.Sprintf("could not parse date from %q", e.Input)
	case MalformedTime:
		msg = fmt.Sprintf("could not parse %q as time", e.Input)
	case MalformedShiftLabel:
		msg = fmt.Sprintf("couldn't parse shift info from %q", e.Input)
	case InvalidDateConstruction:
		msg = fmt.Sprintf("error parsing dates for %q", e.Input)
	default:
		msg = fmt.Sprintf("%s: %q", e.Kind, e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ParseError of the same Kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}
