// Package kafka implements the Apache Kafka protocol binding for event
// envelopes.
//
// The binding converts directly to and from [kafka.Message], so outbound
// messages can be handed to a kafka.Writer and consumed messages fed back
// without an intermediate shape. The event attributes travel as message
// headers, the content type under [HeaderContentType]. The correlation id
// becomes the message key so related events share a partition.
//
//	binding := kafka.New(kafka.Config{})
//
//	msg, err := binding.ToProtocol(event, cloudevents.MessageModeBinary)
//	if err != nil {
//	    return err
//	}
//	err = writer.WriteMessages(ctx, msg)
package kafka

import (
	"github.com/segmentio/kafka-go"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

// HeaderContentType is the message header carrying the content type.
const HeaderContentType = "content_type"

// Config configures a Kafka binding.
type Config struct {
	// Logger for conversion logging.
	// Defaults to the package default logger.
	Logger cloudevents.Logger
}

// Binding translates events to and from Kafka messages.
type Binding struct {
	logger cloudevents.Logger
}

var _ cloudevents.ProtocolBinding[kafka.Message] = (*Binding)(nil)

// New creates a Kafka binding.
func New(cfg Config) *Binding {
	return &Binding{logger: cfg.Logger}
}

func (b *Binding) log() cloudevents.Logger {
	if b.logger != nil {
		return b.logger
	}
	return cloudevents.DefaultLogger()
}

// ToProtocol converts an event into a Kafka message. The event attributes
// and the content type travel as headers in both modes; the correlation id
// becomes the message key and the event time the message timestamp.
func (b *Binding) ToProtocol(e *cloudevents.Event, mode cloudevents.MessageMode) (kafka.Message, error) {
	contentType, err := cloudevents.ContentTypeForMode(mode)
	if err != nil {
		return kafka.Message{}, err
	}
	body, err := cloudevents.EncodeBody(e, mode)
	if err != nil {
		return kafka.Message{}, err
	}
	attrs := b.GenerateAttributes(e)
	headers := make([]kafka.Header, 0, len(attrs)+1)
	for k, v := range attrs {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	headers = append(headers, kafka.Header{Key: HeaderContentType, Value: []byte(contentType)})

	msg := kafka.Message{
		Key:     []byte(e.CorrelationID()),
		Value:   body,
		Headers: headers,
	}
	if t, ok := e.Attributes().Time().Time(); ok {
		msg.Time = t
	}
	b.log().Debug("CLOUDEVENTS: Encoded Kafka message",
		"id", e.ID(),
		"type", e.Type(),
		"mode", mode.String())
	return msg, nil
}

// FromProtocol converts a Kafka message back into an event. The message
// mode is inferred from the content-type header; the event attributes are
// reconstructed from the remaining headers.
func (b *Binding) FromProtocol(msg kafka.Message) (*cloudevents.Event, error) {
	md := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		md[h.Key] = string(h.Value)
	}
	contentType, ok := md[HeaderContentType]
	if !ok || contentType == "" {
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
	data, err := cloudevents.DecodeBody(msg.Value, mode)
	if err != nil {
		return nil, err
	}
	b.log().Debug("CLOUDEVENTS: Decoded Kafka message",
		"id", attrs.ID(),
		"type", attrs.Type(),
		"mode", mode.String())
	return cloudevents.NewEvent(attrs, data), nil
}

// GenerateAttributes returns the event attributes as Kafka header values.
func (b *Binding) GenerateAttributes(e *cloudevents.Event) map[string]string {
	return e.Attributes().Strings()
}
