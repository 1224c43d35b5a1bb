// Package event defines Northroot's shared data model: digests, typed
// identifiers, and the four polymorphic event variants (Authorization,
// Execution, Checkpoint, Attestation) that share a common header.
package event

import (
	"fmt"
	"regexp"
	"time"
)

var profileIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{16,128}$`)

// ProfileId identifies a canonicalization profile in wire data. It is
// distinct from canon.Profile (a compile-time constant type) because event
// payloads carry it as arbitrary, validated user data.
type ProfileId string

// Validate checks ProfileId against its grammar: 16-128 characters drawn
// from [A-Za-z0-9_-].
func (p ProfileId) Validate() error {
	if !profileIDPattern.MatchString(string(p)) {
		return fmt.Errorf("event: invalid profile id %q", string(p))
	}
	return nil
}

var dottedIDPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]{0,254}$`)

// PrincipalId identifies the agent or operator acting in an event. Dotted
// identifiers, bounded length, restricted character set.
type PrincipalId string

func (p PrincipalId) Validate() error {
	if !dottedIDPattern.MatchString(string(p)) {
		return fmt.Errorf("event: invalid principal id %q", string(p))
	}
	return nil
}

// ToolName identifies a callable tool. Same grammar as PrincipalId.
type ToolName string

func (t ToolName) Validate() error {
	if !dottedIDPattern.MatchString(string(t)) {
		return fmt.Errorf("event: invalid tool name %q", string(t))
	}
	return nil
}

// Timestamp is an RFC3339 UTC instant normalized to a single canonical
// lexical form: YYYY-MM-DDTHH:MM:SSZ, optionally with fractional seconds,
// always with a literal "Z" offset — never a numeric offset.
type Timestamp string

const (
	tsLayoutSeconds = "2006-01-02T15:04:05Z"
	tsLayoutNanos   = "2006-01-02T15:04:05.999999999Z"
)

// NewTimestamp canonicalizes a time.Time to UTC and formats it under the
// fractional-seconds layout when it carries a sub-second component.
func NewTimestamp(t time.Time) Timestamp {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return Timestamp(t.Format(tsLayoutSeconds))
	}
	return Timestamp(t.Format(tsLayoutNanos))
}

// Validate parses the timestamp under RFC3339 and rejects any form using a
// non-"Z" offset.
func (ts Timestamp) Validate() error {
	s := string(ts)
	if len(s) == 0 || s[len(s)-1] != 'Z' {
		return fmt.Errorf("event: timestamp %q must end in Z", s)
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		return fmt.Errorf("event: invalid timestamp %q: %w", s, err)
	}
	return nil
}

func (ts Timestamp) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, string(ts))
}
