package framework

import "github.com/dhamidi/havoc/idl"

// MapType returns the framework's name for an IDL type. Every scalar has an
// explicit mapping; any other name is assumed to be a message and returned
// unchanged.
func (f Framework) MapType(name string) string {
	s, ok := idl.ParseScalar(name)
	if !ok {
		return name
	}
	switch f {
	case NestJS:
		return typescriptType(s)
	case Spring:
		return javaType(s)
	}
	return rustType(s)
}

// MapFieldType maps name and wraps it in the framework's list type when the
// field is repeated.
func (f Framework) MapFieldType(name string, repeated bool) string {
	mapped := f.MapType(name)
	if !repeated {
		return mapped
	}
	return f.ListType(mapped)
}

// ListType wraps an already mapped element type.
func (f Framework) ListType(elem string) string {
	switch f {
	case NestJS:
		return elem + "[]"
	case Spring:
		return "List<" + elem + ">"
	}
	return "Vec<" + elem + ">"
}

func rustType(s idl.Scalar) string {
	switch s {
	case idl.String:
		return "String"
	case idl.Bool:
		return "bool"
	case idl.Int32, idl.Sint32, idl.Sfixed32:
		return "i32"
	case idl.Uint32, idl.Fixed32:
		return "u32"
	case idl.Int64, idl.Sint64, idl.Sfixed64:
		return "i64"
	case idl.Uint64, idl.Fixed64:
		return "u64"
	case idl.Float:
		return "f32"
	case idl.Double:
		return "f64"
	case idl.Bytes:
		return "Vec<u8>"
	}
	panic("framework: unmapped scalar " + s.String())
}

// typescriptType follows the proto3 JSON mapping: 64-bit integers are
// strings.
func typescriptType(s idl.Scalar) string {
	switch s {
	case idl.String, idl.Int64, idl.Sint64, idl.Sfixed64, idl.Uint64, idl.Fixed64:
		return "string"
	case idl.Bool:
		return "boolean"
	case idl.Int32, idl.Sint32, idl.Sfixed32, idl.Uint32, idl.Fixed32, idl.Float, idl.Double:
		return "number"
	case idl.Bytes:
		return "Uint8Array"
	}
	panic("framework: unmapped scalar " + s.String())
}

func javaType(s idl.Scalar) string {
	switch s {
	case idl.String:
		return "String"
	case idl.Bool:
		return "Boolean"
	case idl.Int32, idl.Sint32, idl.Sfixed32, idl.Uint32, idl.Fixed32:
		return "Integer"
	case idl.Int64, idl.Sint64, idl.Sfixed64, idl.Uint64, idl.Fixed64:
		return "Long"
	case idl.Float:
		return "Float"
	case idl.Double:
		return "Double"
	case idl.Bytes:
		return "byte[]"
	}
	panic("framework: unmapped scalar " + s.String())
}
