// Package sdk bridges event envelopes to the official CloudEvents Go SDK.
//
// ToSDK and FromSDK translate between [cloudevents.Event] and the SDK's
// event type, so envelopes can ride any transport the SDK supports without
// a dedicated binding here. The outcome and correlation id travel as
// CloudEvents extension attributes; extension names allow only lowercase
// letters and digits, so the correlation id is carried as "correlationid".
package sdk

import (
	"encoding/json"
	"fmt"
	"time"

	ce "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/types"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

const (
	// ExtOutcome is the extension attribute carrying the outcome.
	ExtOutcome = "outcome"

	// ExtCorrelationID is the extension attribute carrying the
	// correlation id.
	ExtCorrelationID = "correlationid"
)

// ToSDK converts an event into an SDK event. The data payload is attached
// with the event's content type; accessing it fails when the outcome is
// unset.
func ToSDK(e *cloudevents.Event) (ce.Event, error) {
	if e == nil {
		return ce.Event{}, fmt.Errorf("cloudevents: nil event")
	}

	se := ce.NewEvent()
	se.SetID(e.ID())
	se.SetSource(e.Source())
	se.SetSpecVersion(e.SpecVersion())
	se.SetType(e.Type())
	if e.Subject() != "" {
		se.SetSubject(e.Subject())
	}
	if t, ok := e.Attributes().Time().Time(); ok {
		se.SetTime(t)
	}
	if err := se.SetExtension(ExtOutcome, e.Outcome().String()); err != nil {
		return ce.Event{}, fmt.Errorf("cloudevents: set outcome extension: %w", err)
	}
	if err := se.SetExtension(ExtCorrelationID, e.CorrelationID()); err != nil {
		return ce.Event{}, fmt.Errorf("cloudevents: set correlation id extension: %w", err)
	}

	data, err := e.Data()
	if err != nil {
		return ce.Event{}, err
	}
	if err := se.SetData(e.DataContentType(), data); err != nil {
		return ce.Event{}, fmt.Errorf("cloudevents: set data: %w", err)
	}
	return se, nil
}

// FromSDK converts an SDK event back into an event. The outcome extension
// is required; a missing correlation id extension yields a generated one.
func FromSDK(se *ce.Event) (*cloudevents.Event, error) {
	if se == nil {
		return nil, fmt.Errorf("cloudevents: nil event")
	}

	exts := se.Extensions()
	rawOutcome, ok := exts[ExtOutcome]
	if !ok {
		return nil, &cloudevents.MissingHeaderError{Header: ExtOutcome}
	}
	outcomeStr, err := types.ToString(rawOutcome)
	if err != nil {
		return nil, fmt.Errorf("cloudevents: outcome extension: %w", err)
	}
	outcome, err := cloudevents.ParseOutcome(outcomeStr)
	if err != nil {
		return nil, err
	}

	var correlationID string
	if raw, ok := exts[ExtCorrelationID]; ok {
		if correlationID, err = types.ToString(raw); err != nil {
			return nil, fmt.Errorf("cloudevents: correlation id extension: %w", err)
		}
	}

	cfg := cloudevents.AttributesConfig{
		ID:              se.ID(),
		Source:          se.Source(),
		Type:            se.Type(),
		DataContentType: se.DataContentType(),
		Subject:         se.Subject(),
		Outcome:         outcome,
		CorrelationID:   correlationID,
	}
	if t := se.Time(); !t.IsZero() {
		cfg.Time = t.UTC().Format(time.RFC3339Nano)
	}

	var payload map[string]any
	if len(se.Data()) > 0 {
		if err := json.Unmarshal(se.Data(), &payload); err != nil {
			return nil, fmt.Errorf("cloudevents: decode data: %w", err)
		}
	}
	return cloudevents.NewEvent(cloudevents.NewAttributes(cfg), payload), nil
}
