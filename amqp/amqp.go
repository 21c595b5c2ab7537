// Package amqp implements the AMQP 0-9-1 protocol binding for event
// envelopes.
//
// The binding translates an [cloudevents.Event] into a value-type [Message]
// carrying the encoded body, the event attributes as AMQP headers, and the
// content-type, correlation-id and message-id properties. Every call to
// ToProtocol returns a freshly constructed Message; nothing is shared
// between calls.
//
// # Usage
//
//	binding := amqp.New(amqp.Config{})
//
//	// Outbound: convert an event and hand it to an amqp091 channel.
//	msg, err := binding.ToProtocol(event, cloudevents.MessageModeBinary)
//	if err != nil {
//	    return err
//	}
//	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg.Publishing())
//
//	// Inbound: convert a consumed delivery back into an event.
//	event, err := binding.FromProtocol(amqp.FromDelivery(delivery))
//
// Inbound messages must carry a content-type property; the message mode is
// inferred from it. Plain JSON means binary mode, anything else structured
// mode.
package amqp

import (
	"fmt"

	amqp091 "github.com/rabbitmq/amqp091-go"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

// Config configures an AMQP binding.
type Config struct {
	// Logger for conversion logging.
	// Defaults to the package default logger.
	Logger cloudevents.Logger
}

// Binding translates events to and from AMQP messages.
type Binding struct {
	logger cloudevents.Logger
}

var _ cloudevents.ProtocolBinding[Message] = (*Binding)(nil)

// New creates an AMQP binding.
func New(cfg Config) *Binding {
	return &Binding{logger: cfg.Logger}
}

func (b *Binding) log() cloudevents.Logger {
	if b.logger != nil {
		return b.logger
	}
	return cloudevents.DefaultLogger()
}

// Message is the transport shape handed to an AMQP client.
//
// Unlike other transports, AMQP surfaces the correlation id and message id
// as dedicated properties next to the headers.
type Message struct {
	// Body is the encoded message body.
	Body []byte

	// Headers carries the event attributes as AMQP headers.
	Headers map[string]string

	// ContentType is the AMQP content-type property.
	ContentType string

	// CorrelationID is the AMQP correlation-id property.
	CorrelationID string

	// ID is the AMQP message-id property.
	ID string
}

// Publishing converts the message into an [amqp091.Publishing] ready for
// Channel.PublishWithContext.
func (m Message) Publishing() amqp091.Publishing {
	headers := make(amqp091.Table, len(m.Headers))
	for k, v := range m.Headers {
		headers[k] = v
	}
	return amqp091.Publishing{
		Headers:       headers,
		ContentType:   m.ContentType,
		CorrelationId: m.CorrelationID,
		MessageId:     m.ID,
		Body:          m.Body,
	}
}

// FromDelivery converts a consumed [amqp091.Delivery] into a Message for
// [Binding.FromProtocol]. Non-string header values are formatted with
// fmt.Sprint.
func FromDelivery(d amqp091.Delivery) Message {
	headers := make(map[string]string, len(d.Headers))
	for k, v := range d.Headers {
		switch v := v.(type) {
		case string:
			headers[k] = v
		case []byte:
			headers[k] = string(v)
		default:
			headers[k] = fmt.Sprint(v)
		}
	}
	return Message{
		Body:          d.Body,
		Headers:       headers,
		ContentType:   d.ContentType,
		CorrelationID: d.CorrelationId,
		ID:            d.MessageId,
	}
}

// ToProtocol converts an event into an AMQP message. The event attributes
// travel as headers in both modes; the body and content-type depend on the
// mode.
func (b *Binding) ToProtocol(e *cloudevents.Event, mode cloudevents.MessageMode) (Message, error) {
	contentType, err := cloudevents.ContentTypeForMode(mode)
	if err != nil {
		return Message{}, err
	}
	body, err := cloudevents.EncodeBody(e, mode)
	if err != nil {
		return Message{}, err
	}
	b.log().Debug("CLOUDEVENTS: Encoded AMQP message",
		"id", e.ID(),
		"type", e.Type(),
		"mode", mode.String())
	return Message{
		Body:          body,
		Headers:       b.GenerateAttributes(e),
		ContentType:   contentType,
		CorrelationID: e.CorrelationID(),
		ID:            e.ID(),
	}, nil
}

// FromProtocol converts an AMQP message back into an event. The message
// mode is inferred from the content-type property; the event attributes are
// reconstructed from the headers. When the headers carry no id, the AMQP
// message-id property is used instead.
func (b *Binding) FromProtocol(msg Message) (*cloudevents.Event, error) {
	if msg.ContentType == "" {
		return nil, &cloudevents.MissingHeaderError{Header: "content_type"}
	}
	mediaType, _, err := cloudevents.ParseContentType(msg.ContentType)
	if err != nil {
		return nil, err
	}
	mode := cloudevents.ModeFromContentType(mediaType)

	headers := msg.Headers
	if _, ok := headers[cloudevents.AttrID]; !ok && msg.ID != "" {
		headers = make(map[string]string, len(msg.Headers)+1)
		for k, v := range msg.Headers {
			headers[k] = v
		}
		headers[cloudevents.AttrID] = msg.ID
	}

	attrs, err := cloudevents.AttributesFromMetadata(headers)
	if err != nil {
		return nil, err
	}
	data, err := cloudevents.DecodeBody(msg.Body, mode)
	if err != nil {
		return nil, err
	}
	b.log().Debug("CLOUDEVENTS: Decoded AMQP message",
		"id", attrs.ID(),
		"type", attrs.Type(),
		"mode", mode.String())
	return cloudevents.NewEvent(attrs, data), nil
}

// GenerateAttributes returns the event attributes as AMQP header values.
func (b *Binding) GenerateAttributes(e *cloudevents.Event) map[string]string {
	return e.Attributes().Strings()
}
