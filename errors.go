package cloudevents

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeUnset indicates a time accessor was called while the event
	// time is unset, either because none was provided or because parsing
	// the provided value failed.
	ErrTimeUnset = errors.New("cloudevents: event time not set")
	// ErrMissingOutcome indicates the payload was accessed before the
	// event outcome was set.
	ErrMissingOutcome = errors.New("cloudevents: event outcome not set")
	// ErrInvalidOutcome indicates an outcome value outside fail, warning
	// and success.
	ErrInvalidOutcome = errors.New("cloudevents: invalid event outcome")
	// ErrMissingAttribute indicates a required event attribute is empty.
	ErrMissingAttribute = errors.New("cloudevents: missing required attribute")
	// ErrMissingData indicates a structured message body without a data
	// field.
	ErrMissingData = errors.New("cloudevents: structured body missing data field")
)

// UnknownModeError indicates a message mode outside binary and structured
// was passed to a binding.
type UnknownModeError struct {
	Mode MessageMode
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("cloudevents: unknown message mode %q", string(e.Mode))
}

// MalformedContentTypeError indicates a content type header without the
// ";" separator between media type and charset.
type MalformedContentTypeError struct {
	ContentType string
}

func (e *MalformedContentTypeError) Error() string {
	return fmt.Sprintf("cloudevents: malformed content type %q", e.ContentType)
}

// MissingHeaderError indicates required transport metadata was absent
// while reconstructing an event.
type MissingHeaderError struct {
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("cloudevents: missing required header %q", e.Header)
}
