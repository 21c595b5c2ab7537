package cloudevents

import (
	"encoding/json"
	"fmt"
)

// EventOutcome classifies the result of the operation an event describes.
//
// An EventOutcome can only be one of three values:
//   - fail
//   - warning
//   - success
type EventOutcome string

const (
	// OutcomeFail marks a failed operation.
	OutcomeFail EventOutcome = "fail"
	// OutcomeWarning marks an operation that succeeded with reservations.
	OutcomeWarning EventOutcome = "warning"
	// OutcomeSuccess marks a successful operation.
	OutcomeSuccess EventOutcome = "success"
)

// ParseOutcome converts a string into an EventOutcome.
// Values outside the closed set are rejected with ErrInvalidOutcome.
func ParseOutcome(s string) (EventOutcome, error) {
	o := EventOutcome(s)
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
	return o, nil
}

// Valid reports whether o is one of the three defined outcomes.
func (o EventOutcome) Valid() bool {
	switch o {
	case OutcomeFail, OutcomeWarning, OutcomeSuccess:
		return true
	}
	return false
}

// String returns the outcome as its wire value.
func (o EventOutcome) String() string {
	return string(o)
}

// Dict returns the outcome as a singleton mapping keyed "outcome".
func (o EventOutcome) Dict() map[string]string {
	return map[string]string{AttrOutcome: o.String()}
}

// ToJSON returns the Dict form encoded as JSON.
func (o EventOutcome) ToJSON() ([]byte, error) {
	return json.Marshal(o.Dict())
}
