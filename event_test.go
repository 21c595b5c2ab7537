package cloudevents_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

func newTestEvent(t *testing.T) *cloudevents.Event {
	t.Helper()
	attrs := cloudevents.NewAttributes(cloudevents.AttributesConfig{
		ID:            "event-1",
		Source:        "sipin",
		Type:          "be.meemoo.sipin.bag.transfer",
		Subject:       "bag-42.zip",
		Time:          "2025-08-19T13:05:11.892067+02:00",
		CorrelationID: "abc123",
	})
	return cloudevents.NewEvent(attrs, map[string]any{
		"path":   "/incoming/bag-42.zip",
		"status": "ok",
	})
}

func TestEventAccessors(t *testing.T) {
	t.Parallel()

	e := newTestEvent(t)

	if e.ID() != "event-1" {
		t.Errorf("ID = %q", e.ID())
	}
	if e.Source() != "sipin" {
		t.Errorf("Source = %q", e.Source())
	}
	if e.SpecVersion() != "1.0" {
		t.Errorf("SpecVersion = %q", e.SpecVersion())
	}
	if e.Type() != "be.meemoo.sipin.bag.transfer" {
		t.Errorf("Type = %q", e.Type())
	}
	if e.DataContentType() != "application/json" {
		t.Errorf("DataContentType = %q", e.DataContentType())
	}
	if e.Subject() != "bag-42.zip" {
		t.Errorf("Subject = %q", e.Subject())
	}
	if e.Outcome() != cloudevents.OutcomeSuccess {
		t.Errorf("Outcome = %q", e.Outcome())
	}
	if e.CorrelationID() != "abc123" {
		t.Errorf("CorrelationID = %q", e.CorrelationID())
	}

	// The attribute record stays the single source of truth.
	if e.Attributes().ID() != e.ID() {
		t.Error("Attributes().ID should match the flat accessor")
	}

	iso, err := e.EventTimeISO8601()
	if err != nil {
		t.Fatalf("EventTimeISO8601: %v", err)
	}
	if iso != "2025-08-19T13:05:11.892067+02:00" {
		t.Errorf("EventTimeISO8601 = %q", iso)
	}
	ms, err := e.EventTimeUnixMilli()
	if err != nil {
		t.Fatalf("EventTimeUnixMilli: %v", err)
	}
	if ms != 1755601511892 {
		t.Errorf("EventTimeUnixMilli = %d", ms)
	}
}

func TestEventData(t *testing.T) {
	t.Parallel()

	e := newTestEvent(t)

	data, err := e.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if data["path"] != "/incoming/bag-42.zip" {
		t.Errorf("payload = %v", data)
	}
}

func TestEventData_MissingOutcome(t *testing.T) {
	t.Parallel()

	var attrs cloudevents.EventAttributes
	e := cloudevents.NewEvent(attrs, map[string]any{"path": "x"})

	_, err := e.Data()
	if !errors.Is(err, cloudevents.ErrMissingOutcome) {
		t.Errorf("Data error = %v, want ErrMissingOutcome", err)
	}
}

func TestEventHasSuccessfulOutcome(t *testing.T) {
	t.Parallel()

	if !newTestEvent(t).HasSuccessfulOutcome() {
		t.Error("default outcome should be success")
	}

	attrs := cloudevents.NewAttributes(cloudevents.AttributesConfig{Outcome: cloudevents.OutcomeFail})
	if cloudevents.NewEvent(attrs, nil).HasSuccessfulOutcome() {
		t.Error("fail outcome should not count as successful")
	}
}

func TestEventToJSON(t *testing.T) {
	t.Parallel()

	e := newTestEvent(t)

	b, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{
		"id", "source", "specversion", "type", "datacontenttype",
		"subject", "time", "outcome", "correlation_id", "data",
	}
	if len(m) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(m), m)
	}
	for _, k := range want {
		if _, ok := m[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}

	data, ok := m["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %T", m["data"])
	}
	if data["status"] != "ok" {
		t.Errorf("data = %v", data)
	}

	direct, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(direct) != string(b) {
		t.Errorf("MarshalJSON disagrees with ToJSON:\n%s\n%s", direct, b)
	}
}

func TestEventToJSON_NilData(t *testing.T) {
	t.Parallel()

	attrs := cloudevents.NewAttributes(cloudevents.AttributesConfig{Source: "sipin"})
	e := cloudevents.NewEvent(attrs, nil)

	b, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, ok := m["data"]
	if !ok {
		t.Fatal("data key should be present")
	}
	if v != nil {
		t.Errorf("data = %v, want null", v)
	}
}

func TestEventToMap_Raw(t *testing.T) {
	t.Parallel()

	e := newTestEvent(t)

	m := e.ToMap(false)
	if len(m) != 10 {
		t.Fatalf("expected 10 keys, got %d", len(m))
	}
	if _, ok := m["outcome"].(cloudevents.EventOutcome); !ok {
		t.Errorf("raw map should carry the live outcome, got %T", m["outcome"])
	}
}

func TestEventString(t *testing.T) {
	t.Parallel()

	s := newTestEvent(t).String()
	if s == "" {
		t.Fatal("String should not be empty")
	}
	for _, want := range []string{"event-1", "be.meemoo.sipin.bag.transfer", "abc123"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, should contain %q", s, want)
		}
	}
}
