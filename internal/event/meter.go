package event

import "github.com/northroot/northroot/internal/quantity"

// Meter pairs a free-form unit name with a typed quantity. Units are not a
// closed enum — "tokens.input", "usd", "compute.seconds" and anything else
// a tool wants to report — but the verifier's comparison behavior is
// unit-name driven (internal/verify).
type Meter struct {
	Unit   string             `json:"unit"`
	Amount quantity.Quantity  `json:"amount"`
}

// Bounds attaches to an Authorization grant: the ceilings an execution
// must stay within.
type Bounds struct {
	AllowedTools      []ToolName          `json:"allowed_tools"`
	MeterCaps         []Meter             `json:"meter_caps"`
	RateLimits        []string            `json:"rate_limits,omitempty"`
	ConcurrencyLimit  *quantity.Quantity  `json:"concurrency_limit,omitempty"`
	ExpiresAt         Timestamp           `json:"expires_at,omitempty"`
}
