package config

// Version is reported by --version and the REPL banner.
const Version = "0.4.0"

const SourceFileExt = ".sparv"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".sparv", ".sp"}

// ManifestFileName is looked up next to the script being executed.
const ManifestFileName = "sparv.yaml"

// Built-in native callable names
const (
	ClockFuncName    = "clock"
	LenFuncName      = "len"
	TypeOfFuncName   = "typeOf"
	ReadLineFuncName = "readLine"
)

// Built-in native class names
const (
	Base64ClassName = "Base64"
	MathClassName   = "Math"
	DBClassName     = "DB"
)

// Super-global names
const (
	ArgvName = "ARGV"
)
