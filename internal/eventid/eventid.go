// Package eventid computes Northroot's domain-separated content identifier
// for an event: SHA-256 over canonical bytes with the event_id field
// removed, prefixed by a stable domain tag and profile string.
//
package eventid

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/northroot/northroot/internal/canon"
	"github.com/northroot/northroot/internal/digest"
)

// DomainTag is the stable domain separator mixed into every event-id hash.
// Changing it invalidates every historical event id.
const DomainTag = "northroot/event-id/v1"

// Compute strips event_id from raw, canonicalizes what remains under
// profile, and hashes the domain-separated preimage.
//
// raw must be a JSON object (an event payload, with or without an
// "event_id" field already present). Canonicalization is strict:
// CanonicalizeStrict fails closed on any hygiene warning, since event
// identity must never be computed over a document whose canonical form is
// ambiguous.
func Compute(raw []byte, profile canon.Profile) (digest.Digest, error) {
	stripped, err := stripEventId(raw)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("eventid: %w", err)
	}

	canonical, _, err := canon.CanonicalizeStrict(stripped, profile)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("eventid: canonicalize: %w", err)
	}

	preimage := make([]byte, 0, len(DomainTag)+1+len(profile)+1+len(canonical))
	preimage = append(preimage, DomainTag...)
	preimage = append(preimage, 0x00)
	preimage = append(preimage, profile...)
	preimage = append(preimage, 0x00)
	preimage = append(preimage, canonical...)

	sum := sha256.Sum256(preimage)
	return digest.New(digest.AlgSHA256, sum[:]), nil
}

// Embed returns raw with its "event_id" field set to id, for storage after
// Compute has produced the identity. The original raw is not mutated.
func Embed(raw []byte, id digest.Digest) ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("eventid: embed: %w", err)
	}
	idBytes, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("eventid: embed: marshal id: %w", err)
	}
	obj["event_id"] = idBytes
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("eventid: embed: marshal object: %w", err)
	}
	return out, nil
}

// stripEventId removes the top-level "event_id" key, if present, returning
// a re-marshaled JSON object. Using encoding/json here (rather than
// internal/canon's own parser) is deliberate: this step runs before
// canonicalization and must not itself impose canonical-form requirements
// on fields other than event_id — canon.CanonicalizeStrict is what enforces
// the hygiene contract, immediately afterward.
func stripEventId(raw []byte) ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", err)
	}
	delete(obj, "event_id")
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("re-marshal: %w", err)
	}
	return out, nil
}

// Verify recomputes the event id for raw (with its current event_id field,
// if any, ignored) and reports whether it matches want.
func Verify(raw []byte, profile canon.Profile, want digest.Digest) (bool, error) {
	got, err := Compute(raw, profile)
	if err != nil {
		return false, err
	}
	return got.Equal(want), nil
}
