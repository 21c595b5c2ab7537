// Package cloudevents implements the meemoo event envelope: a CloudEvents
// 1.0 attribute model, an event type wrapping attributes and payload, and
// the shared pieces of the protocol bindings that translate events to and
// from broker message shapes.
//
// The transport bindings live in sibling packages named for their broker
// (amqp, pulsar, kafka, nats, redisstream); each implements
// [ProtocolBinding] for its client's message type. This package carries no
// transport code: bindings stop at the client message types and never open
// connections.
//
// # Quick Start
//
//	attrs := cloudevents.NewAttributes(cloudevents.AttributesConfig{
//		Source:  "sipin",
//		Type:    "be.meemoo.sipin.bag.transfer",
//		Subject: "bag-42.zip",
//	})
//	event := cloudevents.NewEvent(attrs, map[string]any{
//		"path": "/incoming/bag-42.zip",
//	})
//
//	binding := amqp.New(amqp.Config{})
//	msg, err := binding.ToProtocol(event, cloudevents.MessageModeBinary)
//	if err != nil {
//		return err
//	}
//	pub := msg.Publishing() // hand to an amqp091 channel
//
// # Message Modes
//
// [MessageModeBinary] ships the payload alone as the message body with all
// attributes out-of-band as transport metadata, content type
// "application/json; charset=utf-8". [MessageModeStructured] ships the
// whole event (attributes plus data) as the body, content type
// "application/cloudevents+json; charset=utf-8". Inbound, the media type
// selects the mode: "application/json" means binary, anything else
// structured.
//
// # Event Time
//
// [EventTime] accepts ISO-8601 input with "T" or space separator and an
// optional UTC offset. Input without an offset keeps its wall clock
// reading and counts as UTC in both accessors; explicit offsets round-trip
// through [EventTime.ISO8601] exactly. An unparsable input is a soft
// failure: construction succeeds with the time unset and the accessors
// return [ErrTimeUnset].
//
// # Errors
//
// Binding errors surface immediately and carry context for programmatic
// inspection: [MissingHeaderError] names the absent metadata key,
// [MalformedContentTypeError] the rejected header value and
// [UnknownModeError] the unrecognized mode. Sentinels ([ErrTimeUnset],
// [ErrMissingOutcome], [ErrInvalidOutcome], [ErrMissingData]) are
// errors.Is-compatible. Retry policy belongs to the transport clients, not
// to this layer.
package cloudevents
