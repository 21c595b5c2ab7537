package cloudevents

import (
	"encoding/json"
	"fmt"
)

// ProtocolBinding converts events to and from a transport message type M.
// A protocol is a transport mechanism; a protocol binding specifies how
// events are transformed into transport messages and back. One binding
// implementation exists per supported transport.
type ProtocolBinding[M any] interface {
	// ToProtocol converts an event into a transport message packed
	// according to mode.
	ToProtocol(e *Event, mode MessageMode) (M, error)
	// FromProtocol reconstructs an event from a transport message.
	FromProtocol(msg M) (*Event, error)
	// GenerateAttributes returns the transport metadata derived from
	// the event attributes.
	GenerateAttributes(e *Event) map[string]string
}

// EncodeBody renders a message body for mode: the payload alone as JSON in
// binary mode, the whole event in structured mode.
func EncodeBody(e *Event, mode MessageMode) ([]byte, error) {
	switch mode {
	case MessageModeBinary:
		data, err := e.Data()
		if err != nil {
			return nil, err
		}
		return json.Marshal(data)
	case MessageModeStructured:
		return e.ToJSON()
	default:
		return nil, &UnknownModeError{Mode: mode}
	}
}

// DecodeBody decodes a message body according to mode. Structured bodies
// unwrap the top-level data key.
func DecodeBody(body []byte, mode MessageMode) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("cloudevents: decode body: %w", err)
	}
	switch mode {
	case MessageModeBinary:
		return m, nil
	case MessageModeStructured:
		v, ok := m[AttrData]
		if !ok {
			return nil, ErrMissingData
		}
		if v == nil {
			return nil, nil
		}
		data, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cloudevents: structured data field: expected object, got %T", v)
		}
		return data, nil
	default:
		return nil, &UnknownModeError{Mode: mode}
	}
}

// RequiredHeaders are the transport metadata keys every inbound message
// must carry.
var RequiredHeaders = []string{AttrType, AttrSource, AttrSubject, AttrOutcome, AttrCorrelationID}

// AttributesFromMetadata reconstructs EventAttributes from transport
// metadata. Each RequiredHeaders key must be present, with the outcome a
// member of the closed set. The id, time and datacontenttype keys are
// restored when present; a missing id is regenerated and a missing time
// becomes the current UTC time.
func AttributesFromMetadata(md map[string]string) (EventAttributes, error) {
	for _, key := range RequiredHeaders {
		if _, ok := md[key]; !ok {
			return EventAttributes{}, &MissingHeaderError{Header: key}
		}
	}
	outcome, err := ParseOutcome(md[AttrOutcome])
	if err != nil {
		return EventAttributes{}, err
	}
	return NewAttributes(AttributesConfig{
		ID:              md[AttrID],
		Source:          md[AttrSource],
		Type:            md[AttrType],
		DataContentType: md[AttrDataContentType],
		Subject:         md[AttrSubject],
		Time:            md[AttrTime],
		Outcome:         outcome,
		CorrelationID:   md[AttrCorrelationID],
	}), nil
}
