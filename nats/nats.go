// Package nats implements the NATS protocol binding for event envelopes.
//
// The binding converts directly to and from [*nats.Msg]. The event type
// becomes the NATS subject, the event attributes travel as message headers
// and the content type under [HeaderContentType]. Inbound header keys are
// matched case-insensitively since other producers may capitalize them.
//
//	binding := nats.New(nats.Config{})
//
//	msg, err := binding.ToProtocol(event, cloudevents.MessageModeBinary)
//	if err != nil {
//	    return err
//	}
//	err = nc.PublishMsg(msg)
package nats

import (
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

// HeaderContentType is the message header carrying the content type.
const HeaderContentType = "Content-Type"

// Config configures a NATS binding.
type Config struct {
	// Logger for conversion logging.
	// Defaults to the package default logger.
	Logger cloudevents.Logger
}

// Binding translates events to and from NATS messages.
type Binding struct {
	logger cloudevents.Logger
}

var _ cloudevents.ProtocolBinding[*nats.Msg] = (*Binding)(nil)

// New creates a NATS binding.
func New(cfg Config) *Binding {
	return &Binding{logger: cfg.Logger}
}

func (b *Binding) log() cloudevents.Logger {
	if b.logger != nil {
		return b.logger
	}
	return cloudevents.DefaultLogger()
}

// ToProtocol converts an event into a NATS message. The event type is used
// as the subject; the event attributes and the content type travel as
// headers in both modes.
func (b *Binding) ToProtocol(e *cloudevents.Event, mode cloudevents.MessageMode) (*nats.Msg, error) {
	contentType, err := cloudevents.ContentTypeForMode(mode)
	if err != nil {
		return nil, err
	}
	body, err := cloudevents.EncodeBody(e, mode)
	if err != nil {
		return nil, err
	}
	msg := nats.NewMsg(e.Type())
	for k, v := range b.GenerateAttributes(e) {
		msg.Header.Set(k, v)
	}
	msg.Header.Set(HeaderContentType, contentType)
	msg.Data = body
	b.log().Debug("CLOUDEVENTS: Encoded NATS message",
		"id", e.ID(),
		"subject", msg.Subject,
		"mode", mode.String())
	return msg, nil
}

// FromProtocol converts a NATS message back into an event. The message mode
// is inferred from the content-type header; the event attributes are
// reconstructed from the remaining headers.
func (b *Binding) FromProtocol(msg *nats.Msg) (*cloudevents.Event, error) {
	if msg == nil {
		return nil, fmt.Errorf("cloudevents: nil NATS message")
	}
	md := make(map[string]string, len(msg.Header))
	for k, vs := range msg.Header {
		if len(vs) == 0 {
			continue
		}
		md[strings.ToLower(k)] = vs[0]
	}
	contentType := md[strings.ToLower(HeaderContentType)]
	if contentType == "" {
		return nil, &cloudevents.MissingHeaderError{Header: HeaderContentType}
	}
	mediaType, _, err := cloudevents.ParseContentType(contentType)
	if err != nil {
		return nil, err
	}
	mode := cloudevents.ModeFromContentType(mediaType)

	attrs, err := cloudevents.AttributesFromMetadata(md)
	if err != nil {
		return nil, err
	}
	data, err := cloudevents.DecodeBody(msg.Data, mode)
	if err != nil {
		return nil, err
	}
	b.log().Debug("CLOUDEVENTS: Decoded NATS message",
		"id", attrs.ID(),
		"subject", msg.Subject,
		"mode", mode.String())
	return cloudevents.NewEvent(attrs, data), nil
}

// GenerateAttributes returns the event attributes as NATS header values.
func (b *Binding) GenerateAttributes(e *cloudevents.Event) map[string]string {
	return e.Attributes().Strings()
}
