// Package config provides environment variable loading for event attribute
// configuration.
//
// Environment variable names follow the pattern:
//
//	{Prefix}_{FIELD}
//
// With the default prefix:
//
//	CLOUDEVENTS_SOURCE=sipin
//	CLOUDEVENTS_TYPE=be.meemoo.sipin.bag.transfer
//	CLOUDEVENTS_SUBJECT=bag-42.zip
//	CLOUDEVENTS_DATACONTENTTYPE=application/json
//	CLOUDEVENTS_OUTCOME=success
//
// Only deployment-level attributes are loadable. Per-event values (id, time,
// correlation id) are generated at construction and cannot come from the
// environment.
package config

import (
	"fmt"
	"os"

	cloudevents "github.com/viaacode/meemoo-cloudevents-go"
)

// Loader reads environment variables into an attribute configuration.
type Loader struct {
	// Prefix for environment variable names.
	// Default: "CLOUDEVENTS".
	Prefix string

	// lookup overrides os.LookupEnv for testing.
	lookup func(string) (string, bool)
}

func (l Loader) prefix() string {
	if l.Prefix == "" {
		return "CLOUDEVENTS"
	}
	return l.Prefix
}

func (l Loader) lookupEnv(key string) (string, bool) {
	if l.lookup != nil {
		return l.lookup(key)
	}
	return os.LookupEnv(key)
}

// Load populates dst with values from environment variables.
//
// Only fields with set environment variables are modified; all other fields
// retain their current values. This makes Load suitable for overlaying
// environment overrides on top of programmatic defaults.
func (l Loader) Load(dst *cloudevents.AttributesConfig) error {
	if dst == nil {
		return fmt.Errorf("config: dst must not be nil")
	}
	prefix := l.prefix()

	if raw, ok := l.lookupEnv(prefix + "_SOURCE"); ok {
		dst.Source = raw
	}
	if raw, ok := l.lookupEnv(prefix + "_TYPE"); ok {
		dst.Type = raw
	}
	if raw, ok := l.lookupEnv(prefix + "_SUBJECT"); ok {
		dst.Subject = raw
	}
	if raw, ok := l.lookupEnv(prefix + "_DATACONTENTTYPE"); ok {
		dst.DataContentType = raw
	}
	if raw, ok := l.lookupEnv(prefix + "_OUTCOME"); ok {
		outcome, err := cloudevents.ParseOutcome(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", prefix+"_OUTCOME", err)
		}
		dst.Outcome = outcome
	}
	return nil
}

// Keys returns the environment variable names that [Loader.Load] checks.
// Useful for documentation and debugging.
func (l Loader) Keys() []string {
	prefix := l.prefix()
	return []string{
		prefix + "_SOURCE",
		prefix + "_TYPE",
		prefix + "_SUBJECT",
		prefix + "_DATACONTENTTYPE",
		prefix + "_OUTCOME",
	}
}

// Load populates dst using the default Loader with prefix "CLOUDEVENTS".
func Load(dst *cloudevents.AttributesConfig) error {
	return Loader{}.Load(dst)
}

// Keys returns env var names using the default Loader with prefix
// "CLOUDEVENTS".
func Keys() []string {
	return Loader{}.Keys()
}
