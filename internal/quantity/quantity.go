// Package quantity implements Northroot's tagged-sum numeric type and the
// arbitrary-precision comparisons the verifier needs over it.
//
// Raw JSON numbers are never canonical (see internal/canon); every quantity
// that crosses the wire is one of the four variants below, each carrying
// enough information to reconstruct an exact value without floating-point
// rounding.
package quantity

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Tag discriminates the Quantity variants.
type Tag string

const (
	TagInt Tag = "int"
	TagDec Tag = "dec"
	TagRat Tag = "rat"
	TagF64 Tag = "f64"
)

// Quantity is a tagged sum over four numeric representations. Only one
// of the variant fields is meaningful, selected by Tag.
type Quantity struct {
	Tag Tag `json:"type"`

	// int{v}
	V string `json:"v,omitempty"`

	// dec{m,s}
	M string `json:"m,omitempty"`
	S uint64 `json:"s,omitempty,string"`

	// rat{n,d}
	N string `json:"n,omitempty"`
	D string `json:"d,omitempty"`

	// f64{bits}, wire-encoded as a quoted decimal string like every other
	// numeric so it survives CanonicalizeStrict.
	Bits uint64 `json:"bits,omitempty,string"`
}

// Int constructs an int{v} quantity from a decimal string.
func Int(v string) Quantity { return Quantity{Tag: TagInt, V: v} }

// Dec constructs a dec{m,s} quantity: mantissa m (decimal string) x 10^-s.
func Dec(m string, s uint64) Quantity { return Quantity{Tag: TagDec, M: m, S: s} }

// Rat constructs a rat{n,d} quantity: n/d, both decimal strings.
func Rat(n, d string) Quantity { return Quantity{Tag: TagRat, N: n, D: d} }

// F64 constructs an f64{bits} quantity from the 64-bit pattern of an
// IEEE-754 double, preserving NaN payloads and signed zero.
func F64(bits uint64) Quantity { return Quantity{Tag: TagF64, Bits: bits} }

// F64FromFloat is a convenience constructor for a plain float64.
func F64FromFloat(f float64) Quantity { return F64(math.Float64bits(f)) }

// IntFromUint64 constructs an int{v} quantity from a uint64, for counters
// and heights that need to cross the wire as a wrapped quantity rather
// than a raw JSON number.
func IntFromUint64(n uint64) Quantity { return Int(strconv.FormatUint(n, 10)) }

// Uint64 reports the int{v} variant's value as a uint64. Only TagInt
// quantities that parse as a non-negative integer within uint64 range
// succeed; anything else reports ok=false.
func (q Quantity) Uint64() (uint64, bool) {
	if q.Tag != TagInt {
		return 0, false
	}
	n, ok := parseBigInt(q.V)
	if !ok || n.Sign() < 0 || !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}

// Validate checks that a Quantity is well-formed for its tag: decimal
// strings parse, and rat/dec denominators and scales are sane.
func (q Quantity) Validate() error {
	switch q.Tag {
	case TagInt:
		if _, ok := parseBigInt(q.V); !ok {
			return fmt.Errorf("quantity: invalid int value %q", q.V)
		}
	case TagDec:
		if _, ok := parseBigInt(q.M); !ok {
			return fmt.Errorf("quantity: invalid dec mantissa %q", q.M)
		}
	case TagRat:
		n, ok := parseBigInt(q.N)
		if !ok {
			return fmt.Errorf("quantity: invalid rat numerator %q", q.N)
		}
		d, ok := parseBigInt(q.D)
		if !ok {
			return fmt.Errorf("quantity: invalid rat denominator %q", q.D)
		}
		_ = n
		if d.Sign() == 0 {
			return fmt.Errorf("quantity: rat denominator must be non-zero")
		}
	case TagF64:
		// any bit pattern is a valid (possibly NaN) double.
	default:
		return fmt.Errorf("quantity: unknown tag %q", q.Tag)
	}
	return nil
}

// IsNaN reports whether the f64 variant's bit pattern decodes to NaN.
func (q Quantity) IsNaN() bool {
	if q.Tag != TagF64 {
		return false
	}
	return math.IsNaN(math.Float64frombits(q.Bits))
}

func parseBigInt(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	n := new(big.Int)
	_, ok := n.SetString(s, 10)
	if !ok {
		return nil, false
	}
	return n, true
}

// CompareResult is the outcome of comparing a used amount against a cap.
type CompareResult int

const (
	WithinBounds CompareResult = iota
	ExceedsBounds
	Incomparable
)

func (r CompareResult) String() string {
	switch r {
	case WithinBounds:
		return "WithinBounds"
	case ExceedsBounds:
		return "ExceedsBounds"
	default:
		return "Incomparable"
	}
}

// Compare is the typed comparator: used is compared against cap. Mixed
// tags are always Incomparable; same-tag
// comparisons use arbitrary-precision arithmetic so no intermediate
// rounding occurs.
func Compare(used, cap Quantity) CompareResult {
	if used.Tag != cap.Tag {
		return Incomparable
	}
	switch used.Tag {
	case TagInt:
		u, ok1 := parseBigInt(used.V)
		c, ok2 := parseBigInt(cap.V)
		if !ok1 || !ok2 {
			return Incomparable
		}
		return cmpToResult(u.Cmp(c))

	case TagDec:
		u, ok1 := parseBigInt(used.M)
		c, ok2 := parseBigInt(cap.M)
		if !ok1 || !ok2 {
			return Incomparable
		}
		// Normalize to the larger scale by right-padding the
		// smaller-scale mantissa with zeros. Never truncate.
		us, cs := new(big.Int).Set(u), new(big.Int).Set(c)
		switch {
		case used.S < cap.S:
			us.Mul(us, pow10(cap.S-used.S))
		case cap.S < used.S:
			cs.Mul(cs, pow10(used.S-cap.S))
		}
		return cmpToResult(us.Cmp(cs))

	case TagRat:
		un, ok1 := parseBigInt(used.N)
		ud, ok2 := parseBigInt(used.D)
		cn, ok3 := parseBigInt(cap.N)
		cd, ok4 := parseBigInt(cap.D)
		if !ok1 || !ok2 || !ok3 || !ok4 || ud.Sign() == 0 || cd.Sign() == 0 {
			return Incomparable
		}
		// Cross-multiply: used.n/used.d vs cap.n/cap.d, accounting for
		// the sign of each denominator (multiplying through by a negative
		// product of denominators flips the inequality).
		lhs := new(big.Int).Mul(un, cd)
		rhs := new(big.Int).Mul(cn, ud)
		if ud.Sign()*cd.Sign() < 0 {
			lhs.Neg(lhs)
			rhs.Neg(rhs)
		}
		return cmpToResult(lhs.Cmp(rhs))

	case TagF64:
		if used.IsNaN() || cap.IsNaN() {
			return Incomparable
		}
		uf := math.Float64frombits(used.Bits)
		cf := math.Float64frombits(cap.Bits)
		switch {
		case uf > cf:
			return ExceedsBounds
		case uf < cf:
			return WithinBounds
		default:
			return WithinBounds
		}

	default:
		return Incomparable
	}
}

func cmpToResult(c int) CompareResult {
	if c > 0 {
		return ExceedsBounds
	}
	return WithinBounds
}

func pow10(n uint64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(n), nil)
}

// Multiply implements the unit-conversion multiplication rules:
// int*int=int, int*dec=dec, dec*dec=dec (scales
// add). Mixed rat/f64 operands and overflow both report ok=false, which
// callers treat as missing evidence rather than a hard error.
func Multiply(a, b Quantity) (result Quantity, ok bool) {
	switch {
	case a.Tag == TagInt && b.Tag == TagInt:
		x, ok1 := parseBigInt(a.V)
		y, ok2 := parseBigInt(b.V)
		if !ok1 || !ok2 {
			return Quantity{}, false
		}
		return Int(new(big.Int).Mul(x, y).String()), true

	case a.Tag == TagInt && b.Tag == TagDec:
		return Multiply(b, a)

	case a.Tag == TagDec && b.Tag == TagInt:
		m, ok1 := parseBigInt(a.M)
		v, ok2 := parseBigInt(b.V)
		if !ok1 || !ok2 {
			return Quantity{}, false
		}
		return Dec(new(big.Int).Mul(m, v).String(), a.S), true

	case a.Tag == TagDec && b.Tag == TagDec:
		m1, ok1 := parseBigInt(a.M)
		m2, ok2 := parseBigInt(b.M)
		if !ok1 || !ok2 {
			return Quantity{}, false
		}
		scale := a.S + b.S
		if scale < a.S { // uint64 overflow
			return Quantity{}, false
		}
		return Dec(new(big.Int).Mul(m1, m2).String(), scale), true

	default:
		return Quantity{}, false
	}
}
