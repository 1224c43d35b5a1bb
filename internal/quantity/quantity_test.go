package quantity

import (
	"encoding/json"
	"testing"
)

func TestCompare_IntWithinAndExceeds(t *testing.T) {
	if got := Compare(Int("1000"), Int("1000")); got != WithinBounds {
		t.Errorf("equal ints: got %v, want WithinBounds", got)
	}
	if got := Compare(Int("1500"), Int("1000")); got != ExceedsBounds {
		t.Errorf("over cap: got %v, want ExceedsBounds", got)
	}
	if got := Compare(Int("500"), Int("1000")); got != WithinBounds {
		t.Errorf("under cap: got %v, want WithinBounds", got)
	}
}

func TestCompare_DecNormalizesScale(t *testing.T) {
	// 5.00 (500, scale 2) vs 5.0 (50, scale 1) must compare equal, never truncate.
	if got := Compare(Dec("500", 2), Dec("50", 1)); got != WithinBounds {
		t.Errorf("got %v, want WithinBounds", got)
	}
	if got := Compare(Dec("501", 2), Dec("50", 1)); got != ExceedsBounds {
		t.Errorf("got %v, want ExceedsBounds", got)
	}
}

func TestCompare_RatCrossMultiply(t *testing.T) {
	// 1/3 vs 1/2 -> within bounds (1/3 < 1/2)
	if got := Compare(Rat("1", "3"), Rat("1", "2")); got != WithinBounds {
		t.Errorf("got %v, want WithinBounds", got)
	}
	// 2/3 vs 1/2 -> exceeds (2/3 > 1/2)
	if got := Compare(Rat("2", "3"), Rat("1", "2")); got != ExceedsBounds {
		t.Errorf("got %v, want ExceedsBounds", got)
	}
	// negative denominator sign handling: -1/-3 == 1/3
	if got := Compare(Rat("-1", "-3"), Rat("1", "2")); got != WithinBounds {
		t.Errorf("got %v, want WithinBounds", got)
	}
}

func TestCompare_F64NaNIncomparable(t *testing.T) {
	nan := F64FromFloat(nan())
	if got := Compare(nan, F64FromFloat(1.0)); got != Incomparable {
		t.Errorf("got %v, want Incomparable", got)
	}
	if got := Compare(F64FromFloat(1.0), nan); got != Incomparable {
		t.Errorf("got %v, want Incomparable", got)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

// mixed tags are always Incomparable, never implicitly coerced.
func TestCompare_MixedTagsIncomparable(t *testing.T) {
	cases := []struct{ a, b Quantity }{
		{Int("1000"), Dec("500", 2)},
		{Dec("500", 2), Rat("1", "2")},
		{Rat("1", "2"), F64FromFloat(1.0)},
		{F64FromFloat(1.0), Int("1")},
	}
	for _, c := range cases {
		if got := Compare(c.a, c.b); got != Incomparable {
			t.Errorf("Compare(%v, %v) = %v, want Incomparable", c.a, c.b, got)
		}
	}
}

func TestMultiply_IntTimesDecUsesDecimalScale(t *testing.T) {
	q, ok := Multiply(Int("3"), Dec("250", 2)) // 3 * 2.50 = 7.50
	if !ok {
		t.Fatal("expected ok")
	}
	if q.Tag != TagDec || q.M != "750" || q.S != 2 {
		t.Errorf("got %+v, want dec{750,2}", q)
	}
}

func TestMultiply_DecTimesDecAddsScales(t *testing.T) {
	q, ok := Multiply(Dec("5", 1), Dec("5", 1)) // 0.5 * 0.5 = 0.25
	if !ok {
		t.Fatal("expected ok")
	}
	if q.Tag != TagDec || q.M != "25" || q.S != 2 {
		t.Errorf("got %+v, want dec{25,2}", q)
	}
}

func TestMultiply_RatOperandsUnsupported(t *testing.T) {
	if _, ok := Multiply(Rat("1", "2"), Int("3")); ok {
		t.Error("rat multiplication should report ok=false")
	}
}

func TestValidate_RatZeroDenominator(t *testing.T) {
	if err := Rat("1", "0").Validate(); err == nil {
		t.Error("expected error for zero denominator")
	}
}

func TestUint64_RoundTripsThroughIntFromUint64(t *testing.T) {
	q := IntFromUint64(42)
	if q.Tag != TagInt || q.V != "42" {
		t.Fatalf("got %+v, want int{42}", q)
	}
	n, ok := q.Uint64()
	if !ok || n != 42 {
		t.Errorf("Uint64() = %d, %v, want 42, true", n, ok)
	}
}

func TestUint64_RejectsWrongTagAndNegative(t *testing.T) {
	if _, ok := Dec("5", 1).Uint64(); ok {
		t.Error("dec quantity should not report a uint64")
	}
	if _, ok := Int("-1").Uint64(); ok {
		t.Error("negative int quantity should not report a uint64")
	}
}

// dec{m,s} and f64{bits} must never marshal s/bits as a raw JSON number:
// canon.CanonicalizeStrict rejects any number token, regardless of path.
func TestMarshalJSON_ScaleAndBitsAreQuotedStrings(t *testing.T) {
	raw, err := json.Marshal(Dec("500", 2))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(m["s"]) != `"2"` {
		t.Errorf(`s = %s, want "2" (a quoted string)`, m["s"])
	}

	raw, err = json.Marshal(F64(1))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	m = nil
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(m["bits"]) != `"1"` {
		t.Errorf(`bits = %s, want "1" (a quoted string)`, m["bits"])
	}
}
