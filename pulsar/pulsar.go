// Package pulsar implements the Apache Pulsar protocol binding for event
// envelopes.
//
// Pulsar carries no dedicated content-type field, so the binding stores the
// content type inside the message properties under [PropContentType], next
// to the event attributes. The correlation id doubles as the partition key
// so related events land on the same partition.
//
// # Usage
//
//	binding := pulsar.New(pulsar.Config{})
//
//	msg, err := binding.ToProtocol(event, cloudevents.MessageModeStructured)
//	if err != nil {
//	    return err
//	}
//	_, err = producer.Send(ctx, msg.ProducerMessage())
//
//	// Inbound: consumer messages satisfy ConsumerMessage directly.
//	event, err := binding.FromProtocol(pulsar.FromConsumerMessage(received))
package pulsar

import (
	"github.com/apache/pulsar-client-go/pulsar"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

// PropContentType is the message property carrying the content type.
const PropContentType = "content_type"

// Config configures a Pulsar binding.
type Config struct {
	// Logger for conversion logging.
	// Defaults to the package default logger.
	Logger cloudevents.Logger
}

// Binding translates events to and from Pulsar messages.
type Binding struct {
	logger cloudevents.Logger
}

var _ cloudevents.ProtocolBinding[Message] = (*Binding)(nil)

// New creates a Pulsar binding.
func New(cfg Config) *Binding {
	return &Binding{logger: cfg.Logger}
}

func (b *Binding) log() cloudevents.Logger {
	if b.logger != nil {
		return b.logger
	}
	return cloudevents.DefaultLogger()
}

// Message is the transport shape handed to a Pulsar client. The properties
// carry the event attributes plus the content type.
type Message struct {
	// Payload is the encoded message body.
	Payload []byte

	// Properties carries the event attributes and the content type.
	Properties map[string]string
}

// ProducerMessage converts the message into a [pulsar.ProducerMessage]
// ready for Producer.Send. The correlation id becomes the partition key and
// the event time is mirrored into the Pulsar event time when parsable.
func (m Message) ProducerMessage() *pulsar.ProducerMessage {
	pm := &pulsar.ProducerMessage{
		Payload:    m.Payload,
		Properties: m.Properties,
		Key:        m.Properties[cloudevents.AttrCorrelationID],
	}
	if raw, ok := m.Properties[cloudevents.AttrTime]; ok {
		if et, err := cloudevents.ParseEventTime(raw); err == nil {
			if t, ok := et.Time(); ok {
				pm.EventTime = t
			}
		}
	}
	return pm
}

// ConsumerMessage is the part of a received Pulsar message the binding
// needs. [pulsar.Message] satisfies it.
type ConsumerMessage interface {
	Payload() []byte
	Properties() map[string]string
}

var _ ConsumerMessage = pulsar.Message(nil)

// FromConsumerMessage converts a received Pulsar message into a Message for
// [Binding.FromProtocol].
func FromConsumerMessage(msg ConsumerMessage) Message {
	return Message{
		Payload:    msg.Payload(),
		Properties: msg.Properties(),
	}
}

// ToProtocol converts an event into a Pulsar message. The event attributes
// and the content type travel as properties in both modes.
func (b *Binding) ToProtocol(e *cloudevents.Event, mode cloudevents.MessageMode) (Message, error) {
	contentType, err := cloudevents.ContentTypeForMode(mode)
	if err != nil {
		return Message{}, err
	}
	payload, err := cloudevents.EncodeBody(e, mode)
	if err != nil {
		return Message{}, err
	}
	props := b.GenerateAttributes(e)
	props[PropContentType] = contentType
	b.log().Debug("CLOUDEVENTS: Encoded Pulsar message",
		"id", e.ID(),
		"type", e.Type(),
		"mode", mode.String())
	return Message{
		Payload:    payload,
		Properties: props,
	}, nil
}

// FromProtocol converts a Pulsar message back into an event. The message
// mode is inferred from the content-type property; the event attributes are
// reconstructed from the remaining properties.
func (b *Binding) FromProtocol(msg Message) (*cloudevents.Event, error) {
	contentType, ok := msg.Properties[PropContentType]
	if !ok || contentType == "" {
		return nil, &cloudevents.MissingHeaderError{Header: PropContentType}
	}
	mediaType, _, err := cloudevents.ParseContentType(contentType)
	if err != nil {
		return nil, err
	}
	mode := cloudevents.ModeFromContentType(mediaType)

	attrs, err := cloudevents.AttributesFromMetadata(msg.Properties)
	if err != nil {
		return nil, err
	}
	data, err := cloudevents.DecodeBody(msg.Payload, mode)
	if err != nil {
		return nil, err
	}
	b.log().Debug("CLOUDEVENTS: Decoded Pulsar message",
		"id", attrs.ID(),
		"type", attrs.Type(),
		"mode", mode.String())
	return cloudevents.NewEvent(attrs, data), nil
}

// GenerateAttributes returns the event attributes as Pulsar property
// values.
func (b *Binding) GenerateAttributes(e *cloudevents.Event) map[string]string {
	return e.Attributes().Strings()
}
