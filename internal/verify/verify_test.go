package verify

import (
	"encoding/json"
	"testing"

	"github.com/northroot/northroot/internal/canon"
	"github.com/northroot/northroot/internal/digest"
	"github.com/northroot/northroot/internal/event"
	"github.com/northroot/northroot/internal/eventid"
	"github.com/northroot/northroot/internal/quantity"
)

func mustDigest(s string) digest.Digest {
	return digest.New(digest.AlgSHA256, []byte(s))
}

// sealEvent marshals v, computes its event_id, and embeds it — mirroring
// the write path (canonicalize -> compute id -> embed -> frame).
func sealEvent(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	id, err := eventid.Compute(raw, canon.ProfileNorthrootV1)
	if err != nil {
		t.Fatalf("compute id: %v", err)
	}
	sealed, err := eventid.Embed(raw, id)
	if err != nil {
		t.Fatalf("embed id: %v", err)
	}
	return sealed
}

func authWithCap(t *testing.T, caps []event.Meter) (raw []byte, id digest.Digest, intentDigest digest.Digest) {
	intentDigest = mustDigest("intent-1")
	auth := event.Authorization{
		Header: event.Header{
			EventType:          event.TypeAuthorization,
			EventVersion:       "1",
			OccurredAt:         event.NewTimestamp(fixedTime()),
			PrincipalId:        "agent.alpha",
			CanonicalProfileId: event.ProfileId(canon.ProfileNorthrootV1),
			Intents:            event.Intents{IntentDigest: intentDigest},
		},
		PolicyId:     "policy-1",
		PolicyDigest: mustDigest("policy-bytes"),
		Decision:     event.DecisionAllow,
		DecisionCode: "ok",
		Grant: &event.Bounds{
			AllowedTools: []event.ToolName{"search"},
			MeterCaps:    caps,
		},
	}
	raw = sealEvent(t, auth)
	var withId struct {
		EventId digest.Digest `json:"event_id"`
	}
	json.Unmarshal(raw, &withId)
	return raw, withId.EventId, intentDigest
}

func execUsing(t *testing.T, authId, intentDigest digest.Digest, used []event.Meter) []byte {
	exec := event.Execution{
		Header: event.Header{
			EventType:          event.TypeExecution,
			EventVersion:       "1",
			OccurredAt:         event.NewTimestamp(fixedTime()),
			PrincipalId:        "agent.alpha",
			CanonicalProfileId: event.ProfileId(canon.ProfileNorthrootV1),
			Intents:            event.Intents{IntentDigest: intentDigest},
		},
		AuthEventId: authId,
		ToolName:    "search",
		MeterUsed:   used,
		Outcome:     event.OutcomeSuccess,
	}
	return sealEvent(t, exec)
}

// a meter bound violation.
func TestBatch_MeterBoundViolation(t *testing.T) {
	authRaw, authId, intent := authWithCap(t, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1000")}})
	execRaw := execUsing(t, authId, intent, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1500")}})

	results, err := Batch([][]byte{authRaw, execRaw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[1].Verdict != Violation {
		t.Errorf("got %v, want Violation: %s", results[1].Verdict, results[1].Reason)
	}
}

// mixed quantity tags.
func TestBatch_MixedTagsIncomparable(t *testing.T) {
	authRaw, authId, intent := authWithCap(t, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1000")}})
	execRaw := execUsing(t, authId, intent, []event.Meter{{Unit: "tokens.input", Amount: quantity.Dec("500", 2)}})

	results, err := Batch([][]byte{authRaw, execRaw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[1].Verdict != Invalid {
		t.Errorf("got %v, want Invalid", results[1].Verdict)
	}
}

// an unpriced USD cap.
func TestBatch_UnpricedUSDCap(t *testing.T) {
	authRaw, authId, intent := authWithCap(t, []event.Meter{{Unit: "usd", Amount: quantity.Dec("10000", 2)}})
	execRaw := execUsing(t, authId, intent, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1000")}})

	results, err := Batch([][]byte{authRaw, execRaw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[1].Verdict != Invalid {
		t.Errorf("got %v, want Invalid (no conversion context supplied)", results[1].Verdict)
	}
}

// linkage requirement: a nonexistent authorization reference yields Invalid.
func TestBatch_ExecutionReferencingMissingAuth(t *testing.T) {
	bogusId := mustDigest("nonexistent")
	execRaw := execUsing(t, bogusId, mustDigest("intent-1"), []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1")}})

	results, err := Batch([][]byte{execRaw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Verdict != Invalid {
		t.Errorf("got %v, want Invalid", results[0].Verdict)
	}
}

// linkage requirement: a denied authorization reference yields Invalid.
func TestBatch_ExecutionReferencingDeniedAuth(t *testing.T) {
	intent := mustDigest("intent-1")
	auth := event.Authorization{
		Header: event.Header{
			EventType:          event.TypeAuthorization,
			EventVersion:       "1",
			OccurredAt:         event.NewTimestamp(fixedTime()),
			PrincipalId:        "agent.alpha",
			CanonicalProfileId: event.ProfileId(canon.ProfileNorthrootV1),
			Intents:            event.Intents{IntentDigest: intent},
		},
		PolicyId:     "policy-1",
		PolicyDigest: mustDigest("policy-bytes"),
		Decision:     event.DecisionDeny,
		DecisionCode: "blocked",
		Grant:        &event.Bounds{AllowedTools: []event.ToolName{"search"}, MeterCaps: []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1")}}},
	}
	authRaw := sealEvent(t, auth)
	var withId struct {
		EventId digest.Digest `json:"event_id"`
	}
	json.Unmarshal(authRaw, &withId)

	execRaw := execUsing(t, withId.EventId, intent, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1")}})

	results, err := Batch([][]byte{authRaw, execRaw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Verdict != Denied {
		t.Errorf("auth verdict = %v, want Denied", results[0].Verdict)
	}
	if results[1].Verdict != Invalid {
		t.Errorf("exec verdict = %v, want Invalid", results[1].Verdict)
	}
}

// usage strictly within the cap yields Ok.
func TestBatch_MeterWithinBounds(t *testing.T) {
	authRaw, authId, intent := authWithCap(t, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1000")}})
	execRaw := execUsing(t, authId, intent, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("500")}})

	results, err := Batch([][]byte{authRaw, execRaw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[1].Verdict != Ok {
		t.Errorf("got %v, want Ok: %s", results[1].Verdict, results[1].Reason)
	}
}

// verifier monotonicity: increasing meter_used cannot move a verdict back
// from Violation to Ok.
func TestBatch_MonotonicityIncreasingUsageStaysViolation(t *testing.T) {
	authRaw, authId, intent := authWithCap(t, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1000")}})
	over := execUsing(t, authId, intent, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1500")}})
	moreOver := execUsing(t, authId, intent, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("2500")}})

	results, err := Batch([][]byte{authRaw, over, moreOver}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[1].Verdict != Violation || results[2].Verdict != Violation {
		t.Errorf("got %v, %v; want both Violation", results[1].Verdict, results[2].Verdict)
	}
}

// a Checkpoint event must round-trip through the real write path (marshal,
// compute id, embed, verify) and land Ok, not just construct cleanly as a
// Go struct.
func TestBatch_CheckpointRoundTrip(t *testing.T) {
	tip := mustDigest("prior-event")
	cp := event.Checkpoint{
		Header: event.Header{
			EventType:          event.TypeCheckpoint,
			EventVersion:       "1",
			OccurredAt:         event.NewTimestamp(fixedTime()),
			PrincipalId:        "agent.alpha",
			CanonicalProfileId: event.ProfileId(canon.ProfileNorthrootV1),
			Intents:            event.Intents{IntentDigest: mustDigest("intent-1")},
		},
		ChainTipEventId: tip,
		ChainTipHeight:  quantity.IntFromUint64(7),
	}
	raw := sealEvent(t, cp)

	results, err := Batch([][]byte{raw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Verdict != Ok {
		t.Errorf("got %v, want Ok: %s", results[0].Verdict, results[0].Reason)
	}
}

// a checkpoint whose chain_tip_event_id is not a sha-256 digest is Invalid.
func TestBatch_CheckpointBadTipAlg(t *testing.T) {
	cp := event.Checkpoint{
		Header: event.Header{
			EventType:          event.TypeCheckpoint,
			EventVersion:       "1",
			OccurredAt:         event.NewTimestamp(fixedTime()),
			PrincipalId:        "agent.alpha",
			CanonicalProfileId: event.ProfileId(canon.ProfileNorthrootV1),
			Intents:            event.Intents{IntentDigest: mustDigest("intent-1")},
		},
		ChainTipEventId: digest.Digest{Alg: "sha-1", B64: "deadbeef"},
		ChainTipHeight:  quantity.IntFromUint64(1),
	}
	raw := sealEvent(t, cp)

	results, err := Batch([][]byte{raw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Verdict != Invalid {
		t.Errorf("got %v, want Invalid", results[0].Verdict)
	}
}

func TestBatch_FailureOutcomeRequiresErrorCode(t *testing.T) {
	authRaw, authId, intent := authWithCap(t, []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1000")}})
	exec := event.Execution{
		Header: event.Header{
			EventType:          event.TypeExecution,
			EventVersion:       "1",
			OccurredAt:         event.NewTimestamp(fixedTime()),
			PrincipalId:        "agent.alpha",
			CanonicalProfileId: event.ProfileId(canon.ProfileNorthrootV1),
			Intents:            event.Intents{IntentDigest: intent},
		},
		AuthEventId: authId,
		ToolName:    "search",
		MeterUsed:   []event.Meter{{Unit: "tokens.input", Amount: quantity.Int("1")}},
		Outcome:     event.OutcomeFailure,
	}
	execRaw := sealEvent(t, exec)

	results, err := Batch([][]byte{authRaw, execRaw}, Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[1].Verdict != Invalid {
		t.Errorf("got %v, want Invalid (failure without error_code)", results[1].Verdict)
	}
}
