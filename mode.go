package cloudevents

import "strings"

// MessageMode selects how an event is packed into a transport message.
//
// In CloudEvents, two message modes exist:
//   - binary: event attributes travel separately from the payload
//   - structured: event attributes are included in the payload, the
//     payload itself moves to the data field
type MessageMode string

const (
	// MessageModeBinary carries the attributes as transport metadata and
	// the payload alone in the body.
	MessageModeBinary MessageMode = "binary"
	// MessageModeStructured carries the whole event in the body.
	MessageModeStructured MessageMode = "structured"
)

// String returns the mode as its wire value.
func (m MessageMode) String() string {
	return string(m)
}

// Valid reports whether m is one of the two defined modes.
func (m MessageMode) Valid() bool {
	return m == MessageModeBinary || m == MessageModeStructured
}

// Media types marking the two message modes.
const (
	MediaTypeJSON        = "application/json"
	MediaTypeCloudEvents = "application/cloudevents+json"
)

// Content type header values derived per message mode.
const (
	ContentTypeBinary     = MediaTypeJSON + "; charset=utf-8"
	ContentTypeStructured = MediaTypeCloudEvents + "; charset=utf-8"
)

// ContentTypeForMode returns the content type header value for mode.
func ContentTypeForMode(mode MessageMode) (string, error) {
	switch mode {
	case MessageModeBinary:
		return ContentTypeBinary, nil
	case MessageModeStructured:
		return ContentTypeStructured, nil
	default:
		return "", &UnknownModeError{Mode: mode}
	}
}

// ParseContentType splits a content type header into its media type and
// parameter part, both trimmed and lowercased. A header without the ";"
// separator is rejected with a MalformedContentTypeError.
func ParseContentType(contentType string) (mediaType, params string, err error) {
	mediaType, params, found := strings.Cut(contentType, ";")
	if !found {
		return "", "", &MalformedContentTypeError{ContentType: contentType}
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	params = strings.ToLower(strings.TrimSpace(params))
	return mediaType, params, nil
}

// ModeFromContentType maps a media type to the message mode it marks.
// "application/json" marks binary mode, anything else structured.
func ModeFromContentType(mediaType string) MessageMode {
	if mediaType == MediaTypeJSON {
		return MessageModeBinary
	}
	return MessageModeStructured
}
