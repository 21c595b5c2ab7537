// Package redisstream implements the Redis Streams protocol binding for
// event envelopes.
//
// A stream entry is a flat field-value map with no separate payload slot,
// so the encoded body travels in the [FieldData] field next to the event
// attributes and the [FieldContentType] field.
//
//	binding := redisstream.New(redisstream.Config{})
//
//	msg, err := binding.ToProtocol(event, cloudevents.MessageModeBinary)
//	if err != nil {
//	    return err
//	}
//	err = rdb.XAdd(ctx, msg.XAddArgs("sipin.events")).Err()
package redisstream

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

const (
	// FieldData is the stream field carrying the encoded body.
	FieldData = "data"

	// FieldContentType is the stream field carrying the content type.
	FieldContentType = "content_type"
)

// Config configures a Redis Streams binding.
type Config struct {
	// Logger for conversion logging.
	// Defaults to the package default logger.
	Logger cloudevents.Logger
}

// Binding translates events to and from Redis stream entries.
type Binding struct {
	logger cloudevents.Logger
}

var _ cloudevents.ProtocolBinding[Message] = (*Binding)(nil)

// New creates a Redis Streams binding.
func New(cfg Config) *Binding {
	return &Binding{logger: cfg.Logger}
}

func (b *Binding) log() cloudevents.Logger {
	if b.logger != nil {
		return b.logger
	}
	return cloudevents.DefaultLogger()
}

// Message is the transport shape handed to a Redis client. Values holds the
// event attributes, the content type and the encoded body as stream fields.
type Message struct {
	Values map[string]any
}

// XAddArgs converts the message into [redis.XAddArgs] for Client.XAdd on
// the given stream.
func (m Message) XAddArgs(stream string) *redis.XAddArgs {
	return &redis.XAddArgs{
		Stream: stream,
		Values: m.Values,
	}
}

// FromXMessage converts a read stream entry into a Message for
// [Binding.FromProtocol].
func FromXMessage(msg redis.XMessage) Message {
	return Message{Values: msg.Values}
}

// ToProtocol converts an event into a stream entry. The event attributes,
// the content type and the encoded body all travel as fields.
func (b *Binding) ToProtocol(e *cloudevents.Event, mode cloudevents.MessageMode) (Message, error) {
	contentType, err := cloudevents.ContentTypeForMode(mode)
	if err != nil {
		return Message{}, err
	}
	body, err := cloudevents.EncodeBody(e, mode)
	if err != nil {
		return Message{}, err
	}
	attrs := b.GenerateAttributes(e)
	values := make(map[string]any, len(attrs)+2)
	for k, v := range attrs {
		values[k] = v
	}
	values[FieldContentType] = contentType
	values[FieldData] = string(body)
	b.log().Debug("CLOUDEVENTS: Encoded Redis stream entry",
		"id", e.ID(),
		"type", e.Type(),
		"mode", mode.String())
	return Message{Values: values}, nil
}

// FromProtocol converts a stream entry back into an event. The message mode
// is inferred from the content-type field; the event attributes are
// reconstructed from the remaining fields and the body decoded from the
// data field. Non-string field values are formatted with fmt.Sprint.
func (b *Binding) FromProtocol(msg Message) (*cloudevents.Event, error) {
	md := make(map[string]string, len(msg.Values))
	for k, v := range msg.Values {
		switch v := v.(type) {
		case string:
			md[k] = v
		case []byte:
			md[k] = string(v)
		default:
			md[k] = fmt.Sprint(v)
		}
	}
	contentType, ok := md[FieldContentType]
	if !ok || contentType == "" {
		return nil, &cloudevents.MissingHeaderError{Header: FieldContentType}
	}
	mediaType, _, err := cloudevents.ParseContentType(contentType)
	if err != nil {
		return nil, err
	}
	mode := cloudevents.ModeFromContentType(mediaType)

	raw, ok := md[FieldData]
	if !ok {
		return nil, &cloudevents.MissingHeaderError{Header: FieldData}
	}
	attrs, err := cloudevents.AttributesFromMetadata(md)
	if err != nil {
		return nil, err
	}
	data, err := cloudevents.DecodeBody([]byte(raw), mode)
	if err != nil {
		return nil, err
	}
	b.log().Debug("CLOUDEVENTS: Decoded Redis stream entry",
		"id", attrs.ID(),
		"type", attrs.Type(),
		"mode", mode.String())
	return cloudevents.NewEvent(attrs, data), nil
}

// GenerateAttributes returns the event attributes as stream field values.
func (b *Binding) GenerateAttributes(e *cloudevents.Event) map[string]string {
	return e.Attributes().Strings()
}
