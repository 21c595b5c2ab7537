package nats_test

import (
	"errors"
	"testing"

	natsgo "github.com/nats-io/nats.go"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
	"github.com/viaacode/meemoo-cloudevents-go/nats"
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
	return cloudevents.NewEvent(attrs, map[string]any{"path": "/incoming/bag-42.zip"})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mode        cloudevents.MessageMode
		contentType string
	}{
		{"binary", cloudevents.MessageModeBinary, "application/json; charset=utf-8"},
		{"structured", cloudevents.MessageModeStructured, "application/cloudevents+json; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			binding := nats.New(nats.Config{})
			e := newTestEvent(t)

			msg, err := binding.ToProtocol(e, tt.mode)
			if err != nil {
				t.Fatalf("ToProtocol: %v", err)
			}
			if msg.Header.Get(nats.HeaderContentType) != tt.contentType {
				t.Errorf("content type header = %q, want %q",
					msg.Header.Get(nats.HeaderContentType), tt.contentType)
			}

			got, err := binding.FromProtocol(msg)
			if err != nil {
				t.Fatalf("FromProtocol: %v", err)
			}
			if got.Type() != e.Type() {
				t.Errorf("Type = %q, want %q", got.Type(), e.Type())
			}
			if got.Source() != e.Source() {
				t.Errorf("Source = %q, want %q", got.Source(), e.Source())
			}
			if got.Subject() != e.Subject() {
				t.Errorf("Subject = %q, want %q", got.Subject(), e.Subject())
			}
			if got.Outcome() != e.Outcome() {
				t.Errorf("Outcome = %q, want %q", got.Outcome(), e.Outcome())
			}
			if got.CorrelationID() != e.CorrelationID() {
				t.Errorf("CorrelationID = %q, want %q", got.CorrelationID(), e.CorrelationID())
			}
			data, err := got.Data()
			if err != nil {
				t.Fatalf("Data: %v", err)
			}
			if data["path"] != "/incoming/bag-42.zip" {
				t.Errorf("data = %v", data)
			}
		})
	}
}

func TestToProtocol_Subject(t *testing.T) {
	t.Parallel()

	binding := nats.New(nats.Config{})

	msg, err := binding.ToProtocol(newTestEvent(t), cloudevents.MessageModeBinary)
	if err != nil {
		t.Fatalf("ToProtocol: %v", err)
	}
	// The event type routes the message.
	if msg.Subject != "be.meemoo.sipin.bag.transfer" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if msg.Header.Get("correlation_id") != "abc123" {
		t.Errorf("correlation_id header = %q", msg.Header.Get("correlation_id"))
	}
}

func TestToProtocol_UnknownMode(t *testing.T) {
	t.Parallel()

	binding := nats.New(nats.Config{})

	_, err := binding.ToProtocol(newTestEvent(t), cloudevents.MessageMode("avro"))
	var modeErr *cloudevents.UnknownModeError
	if !errors.As(err, &modeErr) {
		t.Fatalf("expected UnknownModeError, got %v", err)
	}
}

func TestFromProtocol_NilMessage(t *testing.T) {
	t.Parallel()

	binding := nats.New(nats.Config{})

	if _, err := binding.FromProtocol(nil); err == nil {
		t.Error("nil message should fail")
	}
}

func TestFromProtocol_MissingContentType(t *testing.T) {
	t.Parallel()

	binding := nats.New(nats.Config{})

	msg := natsgo.NewMsg("bag.transfer")
	msg.Header.Set("type", "bag.transfer")
	msg.Data = []byte(`{}`)

	_, err := binding.FromProtocol(msg)
	var headerErr *cloudevents.MissingHeaderError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected MissingHeaderError, got %v", err)
	}
	if headerErr.Header != nats.HeaderContentType {
		t.Errorf("Header = %q", headerErr.Header)
	}
}

func TestFromProtocol_MalformedContentType(t *testing.T) {
	t.Parallel()

	binding := nats.New(nats.Config{})

	msg := natsgo.NewMsg("bag.transfer")
	msg.Header.Set(nats.HeaderContentType, "application/json")
	msg.Data = []byte(`{}`)

	_, err := binding.FromProtocol(msg)
	var ctErr *cloudevents.MalformedContentTypeError
	if !errors.As(err, &ctErr) {
		t.Fatalf("expected MalformedContentTypeError, got %v", err)
	}
}

func TestFromProtocol_CapitalizedHeaders(t *testing.T) {
	t.Parallel()

	binding := nats.New(nats.Config{})

	msg := natsgo.NewMsg("bag.transfer")
	msg.Header.Set("Type", "be.meemoo.sipin.bag.transfer")
	msg.Header.Set("Source", "sipin")
	msg.Header.Set("Subject", "bag-42.zip")
	msg.Header.Set("Outcome", "success")
	msg.Header.Set("Correlation_id", "abc123")
	msg.Header.Set("content-type", "application/json; charset=utf-8")
	msg.Data = []byte(`{"path":"x"}`)

	got, err := binding.FromProtocol(msg)
	if err != nil {
		t.Fatalf("headers should match case-insensitively: %v", err)
	}
	if got.Type() != "be.meemoo.sipin.bag.transfer" {
		t.Errorf("Type = %q", got.Type())
	}
	if got.CorrelationID() != "abc123" {
		t.Errorf("CorrelationID = %q", got.CorrelationID())
	}
}

func TestGenerateAttributes(t *testing.T) {
	t.Parallel()

	binding := nats.New(nats.Config{})

	attrs := binding.GenerateAttributes(newTestEvent(t))
	if len(attrs) != 9 {
		t.Errorf("len = %d, want 9", len(attrs))
	}
	if attrs["source"] != "sipin" {
		t.Errorf("source = %q", attrs["source"])
	}
}
