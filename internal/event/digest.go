package event

import "github.com/northroot/northroot/internal/digest"

// Digest is the event package's alias of internal/digest.Digest, kept as a
// distinct name at call sites that talk about event fields specifically
// (tool_params_digest, intent_digest, output_digest, ...) versus the
// event-id digest itself.
type Digest = digest.Digest
