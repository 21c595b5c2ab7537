package cloudevents

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator generates unique event IDs.
type IDGenerator func() string

// DefaultIDGenerator is used by NewAttributes when no ID is supplied.
// The default generates RFC 4122 UUID v4 strings. Replace it for
// deterministic IDs in tests.
var DefaultIDGenerator IDGenerator = uuid.NewString

// NewCorrelationID generates an opaque correlation token: a UUID v4 with
// the hyphen separators stripped.
func NewCorrelationID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
