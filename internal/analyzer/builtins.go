package analyzer

import (
	"github.com/sparvlang/sparv/internal/typesystem"
)

// builtinTypes is the fixed short-name table consulted when resolving
// explicit type annotations. Lower-case C-style spellings and the
// canonical type names are both accepted.
var builtinTypes = map[string]typesystem.Type{
	"int":   typesystem.Int,
	"Int":   typesystem.Int,
	"Int32": typesystem.Int,

	"long":  typesystem.Long,
	"Long":  typesystem.Long,
	"Int64": typesystem.Long,

	"uint":   typesystem.UInt,
	"UInt":   typesystem.UInt,
	"UInt32": typesystem.UInt,

	"ulong":  typesystem.ULong,
	"ULong":  typesystem.ULong,
	"UInt64": typesystem.ULong,

	"Int8":   typesystem.Int8,
	"UInt8":  typesystem.UInt8,
	"Int16":  typesystem.Int16,
	"UInt16": typesystem.UInt16,

	"float":   typesystem.Float,
	"double":  typesystem.Float,
	"Float":   typesystem.Float,
	"Double":  typesystem.Float,
	"Float32": typesystem.Float32,
	"Single":  typesystem.Float32,

	"string": typesystem.String,
	"String": typesystem.String,

	"bool":    typesystem.Bool,
	"boolean": typesystem.Bool,
	"Bool":    typesystem.Bool,

	"char": typesystem.Char,
	"Char": typesystem.Char,

	"void": typesystem.Void,
	"Void": typesystem.Void,

	"BigInt": typesystem.BigInt,

	"DateTime": typesystem.DateTime,

	"object": typesystem.Object,
	"Object": typesystem.Object,
}

// LookupTypeName resolves an annotation lexeme against the built-in
// table.
func LookupTypeName(name string) (typesystem.Type, bool) {
	t, ok := builtinTypes[name]
	return t, ok
}
