package canon

import (
	"math/big"

	"github.com/northroot/northroot/internal/quantity"
)

var quantityTags = map[string]quantity.Tag{
	string(quantity.TagInt): quantity.TagInt,
	string(quantity.TagDec): quantity.TagDec,
	string(quantity.TagRat): quantity.TagRat,
	string(quantity.TagF64): quantity.TagF64,
}

// quantityShapeReason checks whether v is shaped like one of Northroot's
// tagged-sum quantity variants (it carries a "type" field naming one) and,
// if so, validates its companion fields against that variant. It returns
// "" for objects that either aren't quantity-shaped at all, or are and
// check out; a non-empty reason means the object names a quantity tag but
// violates that tag's required shape.
func quantityShapeReason(v *value) string {
	if v.kind != kindObject {
		return ""
	}
	fields := make(map[string]*value, len(v.entries))
	var typeVal *value
	for _, e := range v.entries {
		if e.key == "type" {
			typeVal = e.val
		}
		fields[e.key] = e.val
	}
	if typeVal == nil || typeVal.kind != kindString {
		return ""
	}
	tag, known := quantityTags[typeVal.str]
	if !known {
		return ""
	}

	switch tag {
	case quantity.TagInt:
		if !isDecimalIntField(fields["v"], false) {
			return "int quantity requires a decimal-string v"
		}
	case quantity.TagDec:
		if !isDecimalIntField(fields["m"], false) {
			return "dec quantity requires a decimal-string m"
		}
		if !isDecimalIntField(fields["s"], true) {
			return "dec quantity's s, when present, must be a decimal-string scale"
		}
	case quantity.TagRat:
		if !isDecimalIntField(fields["n"], false) {
			return "rat quantity requires a decimal-string n"
		}
		if !isDecimalIntField(fields["d"], false) {
			return "rat quantity requires a decimal-string d"
		}
		if n, ok := new(big.Int).SetString(fields["d"].str, 10); ok && n.Sign() == 0 {
			return "rat quantity denominator must be non-zero"
		}
	case quantity.TagF64:
		if !isDecimalIntField(fields["bits"], true) {
			return "f64 quantity's bits, when present, must be a decimal-string bit pattern"
		}
	}
	return ""
}

// isDecimalIntField reports whether f is a well-formed decimal-integer
// string field. When optional is true, a missing field also counts as
// well-formed (the wire format omits zero-valued s/bits).
func isDecimalIntField(f *value, optional bool) bool {
	if f == nil {
		return optional
	}
	if f.kind != kindString {
		return false
	}
	_, ok := new(big.Int).SetString(f.str, 10)
	return ok
}
