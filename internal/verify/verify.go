package verify

import (
	"encoding/json"

	"github.com/northroot/northroot/internal/canon"
	"github.com/northroot/northroot/internal/event"
	"github.com/northroot/northroot/internal/eventid"
)

// Options configures a verification pass.
type Options struct {
	Profile    canon.Profile
	Conversion *ConversionContext
}

// Batch runs a two-pass verify: build a map of authorization event_id ->
// *event.Authorization from the first pass over raw, then verify every
// event against it in a second pass. rawEvents is the already-decoded
// JSON payload of each frame, in journal order.
func Batch(rawEvents [][]byte, opts Options) ([]Result, error) {
	auths := make(map[string]*event.Authorization)

	for _, raw := range rawEvents {
		v, typ, err := event.ParseTyped(raw)
		if err != nil || typ != event.TypeAuthorization {
			continue
		}
		auth := v.(*event.Authorization)
		auths[auth.Header.EventId.String()] = auth
	}

	results := make([]Result, 0, len(rawEvents))
	for _, raw := range rawEvents {
		results = append(results, one(raw, auths, opts))
	}
	return results, nil
}

// one verifies a single raw event against the authorization map built in
// Batch's first pass.
func one(raw []byte, auths map[string]*event.Authorization, opts Options) Result {
	v, typ, err := event.ParseTyped(raw)
	if err != nil {
		return withMeta(invalid("malformed event: "+err.Error()), "", string(typ))
	}

	id := event.EventId(v)
	recomputed, err := eventid.Compute(raw, opts.Profile)
	if err != nil {
		return withMeta(invalid("event id recomputation failed: "+err.Error()), id.String(), string(typ))
	}
	if !recomputed.Equal(id) {
		return withMeta(invalid("event_id mismatch"), id.String(), string(typ))
	}

	var r Result
	switch e := v.(type) {
	case *event.Authorization:
		r = verifyAuthorization(e)
	case *event.Execution:
		r = verifyExecution(e, auths, opts)
	case *event.Checkpoint:
		r = verifyCheckpoint(e)
	case *event.Attestation:
		r = verifyAttestation(e)
	default:
		r = invalid("unrecognized event type")
	}
	return withMeta(r, id.String(), string(typ))
}

func withMeta(r Result, id, typ string) Result {
	r.EventId = id
	r.Type = typ
	return r
}

func verifyAuthorization(a *event.Authorization) Result {
	if a.Header.EventVersion != "1" {
		return invalid("unsupported event_version")
	}
	if a.Decision == event.DecisionDeny {
		return denied("authorization decision was deny")
	}
	if a.Decision != event.DecisionAllow {
		return invalid("unrecognized decision")
	}
	switch a.Kind {
	case event.AuthorizationKindGrant:
		if a.Grant == nil || len(a.Grant.AllowedTools) == 0 {
			return invalid("grant authorization must have non-empty allowed_tools")
		}
		if len(a.Grant.MeterCaps) == 0 {
			return invalid("grant authorization must have non-empty meter_caps")
		}
	case event.AuthorizationKindAction:
		if a.Action == nil || a.Action.ToolParamsDigest.Alg != "sha-256" {
			return invalid("action authorization must carry a sha-256 tool_params_digest")
		}
	default:
		return invalid("authorization missing grant or action")
	}
	return ok()
}

func verifyExecution(e *event.Execution, auths map[string]*event.Authorization, opts Options) Result {
	auth, found := auths[e.AuthEventId.String()]
	if !found {
		return invalid("auth_event_id does not reference a known authorization")
	}
	if !e.Header.Intents.IntentDigest.Equal(auth.Header.Intents.IntentDigest) {
		return invalid("intent_digest does not match the referenced authorization")
	}
	if auth.Decision != event.DecisionAllow {
		return invalid("referenced authorization did not allow")
	}

	var meterResult Result
	switch auth.Kind {
	case event.AuthorizationKindGrant:
		meterResult = checkMeterBounds(e.MeterUsed, auth.Grant.MeterCaps, opts.Conversion, e.ModelId, e.Provider)
	case event.AuthorizationKindAction:
		if e.ToolName != auth.Action.ToolName {
			return invalid("tool_name does not match the referenced action authorization")
		}
		if len(auth.Action.MeterReservation) > 0 {
			meterResult = checkMeterBounds(e.MeterUsed, auth.Action.MeterReservation, opts.Conversion, e.ModelId, e.Provider)
		} else {
			meterResult = ok()
		}
	default:
		return invalid("referenced authorization has no grant or action")
	}
	if meterResult.Verdict != Ok {
		return meterResult
	}

	if e.Outcome == event.OutcomeFailure && e.ErrorCode == "" {
		return invalid("failure outcome requires a non-empty error_code")
	}
	return ok()
}

func verifyCheckpoint(c *event.Checkpoint) Result {
	if c.ChainTipEventId.Alg != "sha-256" {
		return invalid("chain_tip_event_id must use sha-256")
	}
	return ok()
}

func verifyAttestation(a *event.Attestation) Result {
	if a.CheckpointEventId.Alg != "sha-256" {
		return invalid("checkpoint_event_id must use sha-256")
	}
	if len(a.Signatures) == 0 {
		return invalid("attestation must carry at least one signature")
	}
	return ok()
}

// DecodeEvents is a convenience helper that decodes each raw journal
// payload into a map of its top-level fields (values kept as raw JSON);
// nothing is re-serialized or canonicalized. It is not used by the
// verification algorithm itself, which always operates on the raw bytes as
// stored.
func DecodeEvents(rawEvents [][]byte) ([]any, error) {
	out := make([]any, 0, len(rawEvents))
	for _, raw := range rawEvents {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
