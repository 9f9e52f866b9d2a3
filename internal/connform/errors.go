package connform

import "fmt"

// ErrorKind classifies a ValidationError.
type ErrorKind int

const (
	// MalformedDescriptor means host or path could not be assembled into a
	// structurally valid descriptor.
	MalformedDescriptor ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedDescriptor:
		return "malformed descriptor"
	default:
		return "unknown"
	}
}

// ValidationError is returned by BuildDescriptor.
type ValidationError struct {
	Kind ErrorKind
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
