package event

import (
	"encoding/json"
	"fmt"
)

// envelope peeks at the event_type discriminator shared by every variant,
// without committing to a concrete struct.
type envelope struct {
	EventType Type `json:"event_type"`
}

// ParseTyped inspects raw's event_type field and unmarshals it into the
// matching concrete struct, returned as `any`. Callers type-switch on the
// result (*Authorization, *Execution, *Checkpoint, *Attestation).
func ParseTyped(raw []byte) (any, Type, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "", fmt.Errorf("event: malformed envelope: %w", err)
	}
	switch env.EventType {
	case TypeAuthorization:
		var a Authorization
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, env.EventType, fmt.Errorf("event: malformed authorization: %w", err)
		}
		if err := a.deriveKind(); err != nil {
			return nil, env.EventType, err
		}
		return &a, env.EventType, nil
	case TypeExecution:
		var e Execution
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, env.EventType, fmt.Errorf("event: malformed execution: %w", err)
		}
		return &e, env.EventType, nil
	case TypeCheckpoint:
		var c Checkpoint
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, env.EventType, fmt.Errorf("event: malformed checkpoint: %w", err)
		}
		return &c, env.EventType, nil
	case TypeAttestation:
		var at Attestation
		if err := json.Unmarshal(raw, &at); err != nil {
			return nil, env.EventType, fmt.Errorf("event: malformed attestation: %w", err)
		}
		return &at, env.EventType, nil
	default:
		return nil, env.EventType, fmt.Errorf("event: unknown event_type %q", env.EventType)
	}
}

// deriveKind sets Kind from which of Grant/Action is present, and rejects
// an authorization carrying both or neither.
func (a *Authorization) deriveKind() error {
	switch {
	case a.Grant != nil && a.Action == nil:
		a.Kind = AuthorizationKindGrant
	case a.Action != nil && a.Grant == nil:
		a.Kind = AuthorizationKindAction
	default:
		return fmt.Errorf("event: authorization must carry exactly one of grant or action")
	}
	return nil
}

// EventId returns the id of the event regardless of its concrete type.
// Panics on an unrecognized type — callers are expected to pass a value
// returned from ParseTyped.
func EventId(v any) Digest {
	switch e := v.(type) {
	case *Authorization:
		return e.Header.EventId
	case *Execution:
		return e.Header.EventId
	case *Checkpoint:
		return e.Header.EventId
	case *Attestation:
		return e.Header.EventId
	default:
		panic(fmt.Sprintf("event: EventId called on unrecognized type %T", v))
	}
}
