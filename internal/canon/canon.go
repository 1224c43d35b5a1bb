// Package canon implements Northroot's strict JSON canonicalizer: it turns
// any JSON-value input into the unique byte sequence that every
// implementation of the event-ID algorithm must agree on, and a hygiene
// report describing anything about the input that could threaten that
// determinism.
package canon

// Profile names a canonicalization ruleset. Northroot ships exactly one,
// northroot-canonical-v1, but the profile is threaded through explicitly
// (never a package-level global) so a future profile can be added without
// an ambiguous default.
type Profile string

// ProfileNorthrootV1 is the reference profile consumed by the event-ID
// hasher.
const ProfileNorthrootV1 Profile = "northroot-canonical-v1"

// Canonicalize parses raw JSON bytes and serializes them into canonical
// form under the given profile. It always returns a hygiene Report,
// even when err is non-nil: the report is data, not a side channel.
// bytes is nil whenever the document contains a hygiene finding
// serious enough that no canonical encoding exists (raw numbers,
// non-finite number literals, runaway nesting depth, a non-string
// object key, or a malformed quantity object) — in that case err is the
// first such finding, typed as *Error.
func Canonicalize(input []byte, profile Profile) (out []byte, report Report, err error) {
	c := newCollector()
	p := newParser(input, c)
	v, parseErr := p.parseDocument()

	report = c.report(string(profile))

	if report.Status == StatusInvalid {
		// A hard finding that stops the parser mid-container (nesting too
		// deep, a nested non-string key) surfaces from it as a plain
		// syntax error; report the recorded finding instead.
		if _, typed := parseErr.(*Error); !typed {
			for _, w := range report.Warnings {
				if hardKinds[w.Kind] {
					parseErr = newErr(ErrorKind(w.Kind), w.Path)
					break
				}
			}
		}
		return nil, report, parseErr
	}
	if v == nil {
		return nil, report, parseErr
	}

	var buf []byte
	serialize(v, &buf)
	return buf, report, nil
}

// CanonicalizeStrict behaves like Canonicalize but fails on any hygiene
// finding at all, including the "soft" ones (duplicate keys, invalid
// UTF-8, oversized strings) that Canonicalize tolerates and still emits
// bytes for. Used wherever determinism must be guaranteed rather than
// merely best-effort — in particular by internal/eventid.
func CanonicalizeStrict(input []byte, profile Profile) (out []byte, report Report, err error) {
	out, report, err = Canonicalize(input, profile)
	if err != nil {
		return nil, report, err
	}
	if report.Status != StatusOk {
		return nil, report, firstError(report)
	}
	return out, report, nil
}

// firstError reconstructs an *Error from the first hygiene warning in a
// report, for callers (like CanonicalizeStrict) that need to fail closed
// on findings Canonicalize itself tolerated.
func firstError(r Report) error {
	if len(r.Warnings) == 0 {
		return nil
	}
	w := r.Warnings[0]
	return newErr(ErrorKind(w.Kind), w.Path)
}
