package xray

import "fmt"

// MalformedResponseError indicates a payload is missing a field the protocol
// requires.
type MalformedResponseError struct {
	Field string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("payload is missing required field %q", e.Field)
}

// UnsupportedKindError indicates a report definition carries a report type
// outside the known set.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unrecognized report type: %q", e.Kind)
}
