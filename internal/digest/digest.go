// Package digest defines the content-hash identifier type shared by every
// event, intent, and bound in Northroot's data model.
package digest

import (
	"encoding/base64"
	"fmt"
)

// Alg identifies a supported digest algorithm.
type Alg string

// AlgSHA256 is the only supported algorithm. The tag is carried on the wire
// so a future algorithm can be introduced without an ambiguous migration.
const AlgSHA256 Alg = "sha-256"

// widths maps an algorithm to its expected decoded byte length.
var widths = map[Alg]int{
	AlgSHA256: 32,
}

// Digest is a (algorithm, base64url-nopad) pair. It is the content-addressed
// identifier used for event IDs, profile digests, and referenced digests
// throughout the event model.
type Digest struct {
	Alg Alg    `json:"alg"`
	B64 string `json:"b64"`
}

// New builds a Digest from raw bytes, encoding them as unpadded base64url.
func New(alg Alg, raw []byte) Digest {
	return Digest{Alg: alg, B64: base64.RawURLEncoding.EncodeToString(raw)}
}

// Bytes decodes the digest back into raw bytes, validating its width
// against the algorithm's expected output size.
func (d Digest) Bytes() ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(d.B64)
	if err != nil {
		return nil, fmt.Errorf("digest: invalid base64url: %w", err)
	}
	want, ok := widths[d.Alg]
	if !ok {
		return nil, fmt.Errorf("digest: unsupported algorithm %q", d.Alg)
	}
	if len(raw) != want {
		return nil, fmt.Errorf("digest: alg %q expects %d bytes, got %d", d.Alg, want, len(raw))
	}
	return raw, nil
}

// Validate checks the digest's algorithm and decoded width without
// returning the raw bytes.
func (d Digest) Validate() error {
	_, err := d.Bytes()
	return err
}

// Equal reports whether two digests refer to the same algorithm and bytes.
func (d Digest) Equal(other Digest) bool {
	return d.Alg == other.Alg && d.B64 == other.B64
}

// IsZero reports whether d is the zero value (no algorithm, no bytes).
func (d Digest) IsZero() bool {
	return d.Alg == "" && d.B64 == ""
}

func (d Digest) String() string {
	return string(d.Alg) + ":" + d.B64
}
