package event

import "github.com/northroot/northroot/internal/quantity"

// Type discriminates the four event variants carried in the EventType field
// of a Header. It is a plain string in wire JSON, not a Go sum type, since
// events travel as JSON objects end to end.
type Type string

const (
	TypeAuthorization Type = "authorization"
	TypeExecution     Type = "execution"
	TypeCheckpoint    Type = "checkpoint"
	TypeAttestation   Type = "attestation"
)

// Decision is an Authorization's allow/deny outcome.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

// Outcome is an Execution's success/failure result.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// AuthorizationKind distinguishes the two shapes an Authorization's payload
// can take: a broad Grant (bounds the whole session) or a narrow Action
// (one tool call, one reservation).
type AuthorizationKind string

const (
	AuthorizationKindGrant  AuthorizationKind = "grant"
	AuthorizationKindAction AuthorizationKind = "action"
)

// Intents carries the digests that tie an event back to the human or
// upstream intent that produced it.
type Intents struct {
	IntentDigest     Digest  `json:"intent_digest"`
	IntentRef        string  `json:"intent_ref,omitempty"`
	UserIntentDigest *Digest `json:"user_intent_digest,omitempty"`
}

// Header carries the fields every event variant shares, regardless of
// EventType.
type Header struct {
	EventId             Digest      `json:"event_id"`
	EventType           Type        `json:"event_type"`
	EventVersion        string      `json:"event_version"`
	PrevEventId         *Digest     `json:"prev_event_id,omitempty"`
	OccurredAt          Timestamp   `json:"occurred_at"`
	PrincipalId         PrincipalId `json:"principal_id"`
	CanonicalProfileId  ProfileId   `json:"canonical_profile_id"`
	Intents             Intents     `json:"intents"`
}

// Authorization grants or denies a scope of action: either a broad Grant
// with Bounds, or a narrow single-tool Action.
type Authorization struct {
	Header
	PolicyId     string            `json:"policy_id"`
	PolicyDigest Digest            `json:"policy_digest"`
	Decision     Decision          `json:"decision"`
	DecisionCode string            `json:"decision_code"`
	Kind         AuthorizationKind `json:"-"`

	// Grant fields, present when Kind == AuthorizationKindGrant.
	Grant *Bounds `json:"grant,omitempty"`

	// Action fields, present when Kind == AuthorizationKindAction.
	Action *ActionAuthorization `json:"action,omitempty"`
}

// ActionAuthorization is the narrow authorization shape: one tool call,
// optionally reserving a fixed meter budget for it.
type ActionAuthorization struct {
	ToolName           ToolName `json:"tool_name"`
	ToolParamsDigest   Digest   `json:"tool_params_digest"`
	MeterReservation   []Meter  `json:"meter_reservation,omitempty"`
}

// Execution records a tool call made under a prior Authorization.
type Execution struct {
	Header
	AuthEventId            Digest    `json:"auth_event_id"`
	ToolName               ToolName  `json:"tool_name"`
	StartedAt              Timestamp `json:"started_at,omitempty"`
	EndedAt                Timestamp `json:"ended_at,omitempty"`
	MeterUsed              []Meter   `json:"meter_used"`
	Outcome                Outcome   `json:"outcome"`
	ErrorCode              string    `json:"error_code,omitempty"`
	OutputDigest           *Digest   `json:"output_digest,omitempty"`
	ModelId                string    `json:"model_id,omitempty"`
	Provider               string    `json:"provider,omitempty"`
	PricingSnapshotDigest  *Digest   `json:"pricing_snapshot_digest,omitempty"`
}

// Checkpoint records the tip of an event chain at a point in time, for
// later chain-integrity validation (internal/chaincheck).
type Checkpoint struct {
	Header
	ChainTipEventId Digest             `json:"chain_tip_event_id"`
	ChainTipHeight  quantity.Quantity  `json:"chain_tip_height"`
}

// Signature is one entry in an Attestation's signature list.
type Signature struct {
	Alg   string `json:"alg"`
	KeyId string `json:"key_id"`
	Sig   string `json:"sig"`
}

// Attestation carries external signatures over a Checkpoint. Cryptographic
// verification of the signatures themselves is out of scope for the core;
// the verifier only checks structure (non-empty signature list).
type Attestation struct {
	Header
	CheckpointEventId Digest      `json:"checkpoint_event_id"`
	Signatures        []Signature `json:"signatures"`
}
