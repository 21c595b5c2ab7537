package cloudevents

import (
	"encoding/json"
	"fmt"
)

// Attribute keys used in wire dictionaries and transport metadata.
const (
	// AttrID is required by CloudEvents. Unique event identifier.
	AttrID = "id"
	// AttrSource is required by CloudEvents. Event source.
	AttrSource = "source"
	// AttrSpecVersion is required by CloudEvents. Spec version.
	AttrSpecVersion = "specversion"
	// AttrType is required by CloudEvents. Event type.
	AttrType = "type"
	// AttrDataContentType is optional in CloudEvents. Payload media type.
	AttrDataContentType = "datacontenttype"
	// AttrSubject is optional in CloudEvents. Event subject.
	AttrSubject = "subject"
	// AttrTime is optional in CloudEvents. Event timestamp.
	AttrTime = "time"
	// AttrOutcome is a meemoo extension. Event outcome.
	AttrOutcome = "outcome"
	// AttrCorrelationID is a meemoo extension. Workflow correlation token.
	AttrCorrelationID = "correlation_id"
	// AttrData holds the payload in structured message bodies.
	AttrData = "data"
)

// SpecVersion is the CloudEvents specification version implemented here.
const SpecVersion = "1.0"

// DefaultDataContentType is used when no payload media type is supplied.
const DefaultDataContentType = "application/json"

// AttributesConfig configures NewAttributes. Zero values select the
// documented defaults.
type AttributesConfig struct {
	// ID uniquely identifies the event within its source.
	// Defaults to a fresh DefaultIDGenerator value.
	ID string

	// Source identifies the context in which the event happened.
	Source string

	// Type describes the kind of event.
	Type string

	// DataContentType is the payload media type.
	// Defaults to DefaultDataContentType.
	DataContentType string

	// Subject describes the subject of the event in the context of the
	// source.
	Subject string

	// Time is the event timestamp as an ISO-8601 string, with "T" or
	// space separator and an optional UTC offset. Empty selects the
	// current UTC time. An unparsable value leaves the time unset.
	Time string

	// Outcome classifies the event result.
	// Defaults to OutcomeSuccess.
	Outcome EventOutcome

	// CorrelationID links related events across a workflow.
	// Defaults to a fresh NewCorrelationID value.
	CorrelationID string
}

// EventAttributes is the canonical metadata record of an event: the
// CloudEvents context attributes plus the meemoo extension attributes.
// Construct with NewAttributes; values are immutable after construction.
type EventAttributes struct {
	id              string
	source          string
	specversion     string
	eventType       string
	datacontenttype string
	subject         string
	time            EventTime
	outcome         EventOutcome
	correlationID   string
}

// NewAttributes builds EventAttributes from cfg with defaults applied. An
// unparsable Time is a soft failure: the time stays unset, construction
// succeeds and a warning is logged. An unset time is never retried.
func NewAttributes(cfg AttributesConfig) EventAttributes {
	a := EventAttributes{
		id:              cfg.ID,
		source:          cfg.Source,
		specversion:     SpecVersion,
		eventType:       cfg.Type,
		datacontenttype: cfg.DataContentType,
		subject:         cfg.Subject,
		outcome:         cfg.Outcome,
		correlationID:   cfg.CorrelationID,
	}
	if a.id == "" {
		a.id = DefaultIDGenerator()
	}
	if a.datacontenttype == "" {
		a.datacontenttype = DefaultDataContentType
	}
	if a.outcome == "" {
		a.outcome = OutcomeSuccess
	}
	if a.correlationID == "" {
		a.correlationID = NewCorrelationID()
	}
	if cfg.Time == "" {
		a.time = nowUTC()
		return a
	}
	t, err := ParseEventTime(cfg.Time)
	if err != nil {
		logger.Warn("CLOUDEVENTS: Unparsable event time", "time", cfg.Time, "error", err)
	}
	a.time = t
	return a
}

// ID returns the unique event identifier.
func (a EventAttributes) ID() string { return a.id }

// Source returns the event source.
func (a EventAttributes) Source() string { return a.source }

// SpecVersion returns the CloudEvents specification version.
func (a EventAttributes) SpecVersion() string { return a.specversion }

// Type returns the event type.
func (a EventAttributes) Type() string { return a.eventType }

// DataContentType returns the payload media type.
func (a EventAttributes) DataContentType() string { return a.datacontenttype }

// Subject returns the event subject.
func (a EventAttributes) Subject() string { return a.subject }

// Time returns the event time.
func (a EventAttributes) Time() EventTime { return a.time }

// Outcome returns the event outcome.
func (a EventAttributes) Outcome() EventOutcome { return a.outcome }

// CorrelationID returns the workflow correlation token.
func (a EventAttributes) CorrelationID() string { return a.correlationID }

// EventTimeISO8601 formats the event time as ISO-8601 with an explicit
// offset. See EventTime.ISO8601.
func (a EventAttributes) EventTimeISO8601() (string, error) {
	return a.time.ISO8601()
}

// EventTimeUnixMilli returns the event time as whole milliseconds since
// the Unix epoch. See EventTime.UnixMilli.
func (a EventAttributes) EventTimeUnixMilli() (int64, error) {
	return a.time.UnixMilli()
}

// ToMap returns the attributes as a map holding all nine attribute keys.
// When serializable is true every value takes its wire form, with the time
// as an ISO-8601 string or nil when unset; otherwise the map carries the
// live EventTime and EventOutcome values.
func (a EventAttributes) ToMap(serializable bool) map[string]any {
	if !serializable {
		return map[string]any{
			AttrID:              a.id,
			AttrSource:          a.source,
			AttrSpecVersion:     a.specversion,
			AttrType:            a.eventType,
			AttrDataContentType: a.datacontenttype,
			AttrSubject:         a.subject,
			AttrTime:            a.time,
			AttrOutcome:         a.outcome,
			AttrCorrelationID:   a.correlationID,
		}
	}
	var t any
	if iso, err := a.time.ISO8601(); err == nil {
		t = iso
	}
	return map[string]any{
		AttrID:              a.id,
		AttrSource:          a.source,
		AttrSpecVersion:     a.specversion,
		AttrType:            a.eventType,
		AttrDataContentType: a.datacontenttype,
		AttrSubject:         a.subject,
		AttrTime:            t,
		AttrOutcome:         a.outcome.String(),
		AttrCorrelationID:   a.correlationID,
	}
}

// Strings returns the attributes in transport metadata form: every value a
// string, the time key omitted when the time is unset.
func (a EventAttributes) Strings() map[string]string {
	m := map[string]string{
		AttrID:              a.id,
		AttrSource:          a.source,
		AttrSpecVersion:     a.specversion,
		AttrType:            a.eventType,
		AttrDataContentType: a.datacontenttype,
		AttrSubject:         a.subject,
		AttrOutcome:         a.outcome.String(),
		AttrCorrelationID:   a.correlationID,
	}
	if iso, err := a.time.ISO8601(); err == nil {
		m[AttrTime] = iso
	}
	return m
}

// ToJSON returns the serializable map form encoded as JSON.
func (a EventAttributes) ToJSON() ([]byte, error) {
	return json.Marshal(a.ToMap(true))
}

// MarshalJSON implements json.Marshaler using the serializable map form.
func (a EventAttributes) MarshalJSON() ([]byte, error) {
	return a.ToJSON()
}

// Validate checks required-field presence: id, source, specversion, type
// and correlation_id must be non-empty and the outcome must be a member of
// the closed set. No further validation belongs to this layer.
func (a EventAttributes) Validate() error {
	for _, f := range []struct{ key, value string }{
		{AttrID, a.id},
		{AttrSource, a.source},
		{AttrSpecVersion, a.specversion},
		{AttrType, a.eventType},
		{AttrCorrelationID, a.correlationID},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingAttribute, f.key)
		}
	}
	if !a.outcome.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, string(a.outcome))
	}
	return nil
}

// String returns a compact description for logs.
func (a EventAttributes) String() string {
	return fmt.Sprintf("EventAttributes(id=%s, type=%s, correlation_id=%s)",
		a.id, a.eventType, a.correlationID)
}
