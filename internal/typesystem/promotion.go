package typesystem

// magnitudeRank orders arithmetic kinds by the maximum magnitude each can
// represent: 127 < 255 < 32767 < 65535 < ... < 2^64-1 < max float32 <
// max float64 < unbounded big integer.
var magnitudeRank = map[NumericKind]int{
	NumI8:  1,
	NumU8:  2,
	NumI16: 3,
	NumU16: 4,
	NumI32: 5,
	NumU32: 6,
	NumI64: 7,
	NumU64: 8,
	NumF32: 9,
	NumF64: 10,
	NumBig: 11,
}

// Promote picks the result type of an arithmetic binary expression: the
// operand type with the greater representable magnitude wins, ties keep
// the left operand's type. Returns false when either side is
// non-arithmetic.
func Promote(left, right Type) (Type, bool) {
	lp, lok := left.(Primitive)
	rp, rok := right.(Primitive)
	if !lok || !rok || lp.Numeric == NumNone || rp.Numeric == NumNone {
		return nil, false
	}
	if magnitudeRank[rp.Numeric] > magnitudeRank[lp.Numeric] {
		return rp, true
	}
	return lp, true
}
