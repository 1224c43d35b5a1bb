package canon

// WarningKind names a recognized hygiene anomaly. Several of these share a
// name with an ErrorKind: when one of those fires, the document as a whole
// cannot be canonicalized (Status becomes Invalid) even though the finding
// is still recorded like any other warning, since the canonicalizer
// returns a hygiene report even on failure.
type WarningKind string

const (
	WarningRawJsonNumber   WarningKind = "RawJsonNumber"
	WarningNonFiniteNumber WarningKind = "NonFiniteNumber"
	WarningDuplicateKeys   WarningKind = "DuplicateKeys"
	WarningInvalidUtf8     WarningKind = "InvalidUtf8"
	WarningStringTooLong   WarningKind = "StringTooLong"
	WarningDepthExceeded   WarningKind = "DepthExceeded"
	WarningKeyNotString    WarningKind = "KeyNotString"
	WarningInvalidQuantity WarningKind = "InvalidQuantity"
)

// hardKinds are warnings that also preclude producing canonical bytes at
// all: there is no canonical encoding of a raw number, a non-finite
// number literal, runaway nesting, a non-string key, or a malformed
// quantity object.
var hardKinds = map[WarningKind]bool{
	WarningRawJsonNumber:   true,
	WarningNonFiniteNumber: true,
	WarningDepthExceeded:   true,
	WarningKeyNotString:    true,
	WarningInvalidQuantity: true,
}

// Status summarizes a hygiene Report.
type Status string

const (
	StatusOk       Status = "Ok"
	StatusWarnings Status = "Warnings"
	StatusInvalid  Status = "Invalid"
)

// Warning is a single hygiene finding: its kind and the dotted path at
// which it occurred.
type Warning struct {
	Kind WarningKind `json:"kind"`
	Path string      `json:"path"`
}

// Report is the hygiene report returned alongside canonical bytes (or an
// error) from Canonicalize/CanonicalizeStrict.
type Report struct {
	Status    Status           `json:"status"`
	Warnings  []Warning        `json:"warnings"`
	Metrics   map[string]int   `json:"metrics"`
	ProfileID string           `json:"profile_id"`
}

// metricName maps a warning kind to its cumulative-count key in
// Report.Metrics, using snake_case pluralized names (e.g.
// "raw_json_numbers").
func metricName(k WarningKind) string {
	switch k {
	case WarningRawJsonNumber:
		return "raw_json_numbers"
	case WarningNonFiniteNumber:
		return "non_finite_numbers"
	case WarningDuplicateKeys:
		return "duplicate_keys"
	case WarningInvalidUtf8:
		return "invalid_utf8"
	case WarningStringTooLong:
		return "string_too_long"
	case WarningDepthExceeded:
		return "depth_exceeded"
	case WarningKeyNotString:
		return "key_not_string"
	case WarningInvalidQuantity:
		return "invalid_quantity"
	default:
		return string(k)
	}
}

// collector accumulates hygiene findings while the parser walks the input.
// Only the first hard error is surfaced to the caller as err, but every
// finding (hard or soft) is recorded in the report.
type collector struct {
	warnings []Warning
	metrics  map[string]int
	invalid  bool
}

func newCollector() *collector {
	return &collector{metrics: make(map[string]int)}
}

func (c *collector) addWarning(kind WarningKind, path string) {
	c.warnings = append(c.warnings, Warning{Kind: kind, Path: path})
	c.metrics[metricName(kind)]++
	if hardKinds[kind] {
		c.invalid = true
	}
}

// addError records a hard hygiene finding alongside the *Error that will
// (if it is the first one) be returned to the caller.
func (c *collector) addError(kind WarningKind, err *Error) {
	c.addWarning(kind, err.Path)
}

func (c *collector) report(profileID string) Report {
	status := StatusOk
	if len(c.warnings) > 0 {
		status = StatusWarnings
	}
	if c.invalid {
		status = StatusInvalid
	}
	return Report{
		Status:    status,
		Warnings:  c.warnings,
		Metrics:   c.metrics,
		ProfileID: profileID,
	}
}
