package idl

// Scalar enumerates the built-in field types of the IDL.
type Scalar int

const (
	Int32 Scalar = iota + 1
	Int64
	Uint32
	Uint64
	Sint32
	Sint64
	Fixed32
	Fixed64
	Sfixed32
	Sfixed64
	Bool
	String
	Bytes
	Double
	Float
)

var scalarNames = [...]string{
	Int32:    "int32",
	Int64:    "int64",
	Uint32:   "uint32",
	Uint64:   "uint64",
	Sint32:   "sint32",
	Sint64:   "sint64",
	Fixed32:  "fixed32",
	Fixed64:  "fixed64",
	Sfixed32: "sfixed32",
	Sfixed64: "sfixed64",
	Bool:     "bool",
	String:   "string",
	Bytes:    "bytes",
	Double:   "double",
	Float:    "float",
}

// Scalars lists every scalar type in keyword order.
func Scalars() []Scalar {
	out := make([]Scalar, 0, len(scalarNames)-1)
	for s := Int32; s <= Float; s++ {
		out = append(out, s)
	}
	return out
}

// String returns the canonical lowercase keyword.
func (s Scalar) String() string {
	if s < Int32 || s > Float {
		return "invalid"
	}
	return scalarNames[s]
}

// ParseScalar maps a canonical keyword to its Scalar.
func ParseScalar(name string) (Scalar, bool) {
	for s := Int32; s <= Float; s++ {
		if scalarNames[s] == name {
			return s, true
		}
	}
	return 0, false
}
