package schema

import "fmt"

// A Type is the abstract kind of a property, independent of its SQLite
// storage representation and of the Go type generated for it.
type Type uint8

// Abstract property types.
const (
	TypeByte Type = iota
	TypeShort
	TypeInt
	TypeLong
	TypeBoolean
	TypeFloat
	TypeDouble
	TypeString
	TypeByteArray
	TypeDate
	TypeEnum

	endTypes
)

var typeNames = [...]string{
	TypeByte:      "Byte",
	TypeShort:     "Short",
	TypeInt:       "Int",
	TypeLong:      "Long",
	TypeBoolean:   "Boolean",
	TypeFloat:     "Float",
	TypeDouble:    "Double",
	TypeString:    "String",
	TypeByteArray: "ByteArray",
	TypeDate:      "Date",
	TypeEnum:      "Enum",
}

// String returns the name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid=%d", t)
}

// Valid reports if the given type is a known abstract type.
func (t Type) Valid() bool { return t < endTypes }

// dbTypes maps each abstract type to its SQLite column type.
var dbTypes = map[Type]string{
	TypeByte:      "INTEGER",
	TypeShort:     "INTEGER",
	TypeInt:       "INTEGER",
	TypeLong:      "INTEGER",
	TypeBoolean:   "INTEGER",
	TypeFloat:     "REAL",
	TypeDouble:    "REAL",
	TypeString:    "TEXT",
	TypeByteArray: "BLOB",
	TypeDate:      "INTEGER",
	TypeEnum:      "INTEGER",
}

// goTypes maps each abstract type to the Go type used when the value
// can never be absent.
var goTypes = map[Type]string{
	TypeByte:      "int8",
	TypeShort:     "int16",
	TypeInt:       "int32",
	TypeLong:      "int64",
	TypeBoolean:   "bool",
	TypeFloat:     "float32",
	TypeDouble:    "float64",
	TypeString:    "string",
	TypeByteArray: "[]byte",
	TypeDate:      "time.Time",
}

// goNullableTypes maps each abstract type to the Go type used when the
// value may be absent. Slices are already nilable and keep their spelling.
var goNullableTypes = map[Type]string{
	TypeByte:      "*int8",
	TypeShort:     "*int16",
	TypeInt:       "*int32",
	TypeLong:      "*int64",
	TypeBoolean:   "*bool",
	TypeFloat:     "*float32",
	TypeDouble:    "*float64",
	TypeString:    "*string",
	TypeByteArray: "[]byte",
	TypeDate:      "*time.Time",
}
