package cliapp

import (
	"testing"

	"github.com/northroot/northroot/internal/event"
)

func TestFilter_ByType(t *testing.T) {
	exec := &event.Execution{Header: event.Header{EventType: event.TypeExecution}}
	auth := &event.Authorization{Header: event.Header{EventType: event.TypeAuthorization}}

	f := ByType(event.TypeExecution)
	if !f.Match(exec) {
		t.Error("expected execution to match")
	}
	if f.Match(auth) {
		t.Error("expected authorization to not match")
	}
}

func TestFilter_AndShortCircuits(t *testing.T) {
	exec := &event.Execution{
		Header: event.Header{EventType: event.TypeExecution, PrincipalId: "agent.alpha"},
	}
	f := And(ByType(event.TypeExecution), ByPrincipal("agent.beta"))
	if f.Match(exec) {
		t.Error("expected And to reject on principal mismatch")
	}
}

func TestFilter_TimeRange(t *testing.T) {
	mid := &event.Execution{Header: event.Header{EventType: event.TypeExecution, OccurredAt: "2026-06-01T00:00:00Z"}}
	f := ByTimeRange("2026-01-01T00:00:00Z", "2026-12-31T00:00:00Z")
	if !f.Match(mid) {
		t.Error("expected event within range to match")
	}

	early := &event.Execution{Header: event.Header{EventType: event.TypeExecution, OccurredAt: "2025-01-01T00:00:00Z"}}
	if f.Match(early) {
		t.Error("expected event before range to be rejected")
	}
}
