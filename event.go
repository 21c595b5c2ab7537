package cloudevents

import (
	"encoding/json"
	"fmt"
)

// Event combines EventAttributes with an opaque data payload. The
// attribute record stays the single source of truth; the event adds
// payload handling and flat accessors. Events are immutable after
// construction.
type Event struct {
	attributes EventAttributes
	data       map[string]any
}

// NewEvent returns an Event owning attributes and data.
func NewEvent(attributes EventAttributes, data map[string]any) *Event {
	return &Event{attributes: attributes, data: data}
}

// Attributes returns a copy of the attribute record.
func (e *Event) Attributes() EventAttributes { return e.attributes }

// ID returns the unique event identifier.
func (e *Event) ID() string { return e.attributes.id }

// Source returns the event source.
func (e *Event) Source() string { return e.attributes.source }

// SpecVersion returns the CloudEvents specification version.
func (e *Event) SpecVersion() string { return e.attributes.specversion }

// Type returns the event type.
func (e *Event) Type() string { return e.attributes.eventType }

// DataContentType returns the payload media type.
func (e *Event) DataContentType() string { return e.attributes.datacontenttype }

// Subject returns the event subject.
func (e *Event) Subject() string { return e.attributes.subject }

// Time returns the event time.
func (e *Event) Time() EventTime { return e.attributes.time }

// Outcome returns the event outcome.
func (e *Event) Outcome() EventOutcome { return e.attributes.outcome }

// CorrelationID returns the workflow correlation token.
func (e *Event) CorrelationID() string { return e.attributes.correlationID }

// EventTimeISO8601 formats the event time as ISO-8601 with an explicit
// offset. See EventTime.ISO8601.
func (e *Event) EventTimeISO8601() (string, error) {
	return e.attributes.time.ISO8601()
}

// EventTimeUnixMilli returns the event time as whole milliseconds since
// the Unix epoch. See EventTime.UnixMilli.
func (e *Event) EventTimeUnixMilli() (int64, error) {
	return e.attributes.time.UnixMilli()
}

// Data returns the whole payload mapping as constructed. Returns
// ErrMissingOutcome when the outcome is not a member of the closed set.
func (e *Event) Data() (map[string]any, error) {
	if !e.attributes.outcome.Valid() {
		return nil, ErrMissingOutcome
	}
	return e.data, nil
}

// HasSuccessfulOutcome reports whether the outcome is success.
func (e *Event) HasSuccessfulOutcome() bool {
	return e.attributes.outcome == OutcomeSuccess
}

// ToMap returns the event as a map: the attribute map plus the data key.
// See EventAttributes.ToMap for the serializable flag.
func (e *Event) ToMap(serializable bool) map[string]any {
	m := e.attributes.ToMap(serializable)
	m[AttrData] = e.data
	return m
}

// ToJSON returns the serializable map form encoded as JSON, holding
// exactly the ten documented keys.
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e.ToMap(true))
}

// MarshalJSON implements json.Marshaler using the serializable map form.
func (e *Event) MarshalJSON() ([]byte, error) {
	return e.ToJSON()
}

// String returns a compact description for logs.
func (e *Event) String() string {
	return fmt.Sprintf("Event(id=%s, type=%s, correlation_id=%s)",
		e.attributes.id, e.attributes.eventType, e.attributes.correlationID)
}
