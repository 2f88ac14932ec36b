package typesystem

// NumericKind tags the machine representation of an arithmetic type.
type NumericKind int

const (
	NumNone NumericKind = iota
	NumI8
	NumU8
	NumI16
	NumU16
	NumI32
	NumU32
	NumI64
	NumU64
	NumF32
	NumF64
	NumBig
)

// Type is the static type handle attached to expressions and declarations.
type Type interface {
	String() string
	Equals(Type) bool
}

// Primitive is a built-in scalar type.
type Primitive struct {
	Name    string
	Numeric NumericKind
}

func (p Primitive) String() string { return p.Name }

func (p Primitive) Equals(other Type) bool {
	q, ok := other.(Primitive)
	return ok && q.Name == p.Name
}

// Host is the type of a host-provided class or object instance.
type Host struct {
	Name string
}

func (h Host) String() string { return h.Name }

func (h Host) Equals(other Type) bool {
	g, ok := other.(Host)
	return ok && g.Name == h.Name
}

// The built-in scalar types. Int is 32-bit, Long 64-bit, Float is double
// precision; Float32 exists for the single-precision annotation.
var (
	Int8    = Primitive{Name: "Int8", Numeric: NumI8}
	UInt8   = Primitive{Name: "UInt8", Numeric: NumU8}
	Int16   = Primitive{Name: "Int16", Numeric: NumI16}
	UInt16  = Primitive{Name: "UInt16", Numeric: NumU16}
	Int     = Primitive{Name: "Int", Numeric: NumI32}
	UInt    = Primitive{Name: "UInt", Numeric: NumU32}
	Long    = Primitive{Name: "Long", Numeric: NumI64}
	ULong   = Primitive{Name: "ULong", Numeric: NumU64}
	Float32 = Primitive{Name: "Float32", Numeric: NumF32}
	Float   = Primitive{Name: "Float", Numeric: NumF64}
	BigInt  = Primitive{Name: "BigInt", Numeric: NumBig}

	Bool     = Primitive{Name: "Bool"}
	String   = Primitive{Name: "String"}
	Char     = Primitive{Name: "Char"}
	DateTime = Primitive{Name: "DateTime"}
	Object   = Primitive{Name: "Object"}
	Null     = Primitive{Name: "Null"}
	Void     = Primitive{Name: "Void"}
)

// IsArithmetic reports whether t participates in numeric promotion.
func IsArithmetic(t Type) bool {
	p, ok := t.(Primitive)
	return ok && p.Numeric != NumNone
}

// IsString reports whether t is the string type.
func IsString(t Type) bool {
	return String.Equals(t)
}

// IsComparable reports whether t may appear as a binary operator operand
// at all. Void never can; host objects resolve their operations at runtime.
func IsComparable(t Type) bool {
	if t == nil {
		return false
	}
	if Void.Equals(t) {
		return false
	}
	return true
}

// CanBeCoercedInto implements the identity-only coercion policy used at
// call sites and var statements. Numeric widening happens inside expression
// promotion, never here.
func CanBeCoercedInto(target, source Type) bool {
	if target == nil || source == nil {
		return false
	}
	return target.Equals(source)
}
