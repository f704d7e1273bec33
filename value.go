package nvlist

// Type is the discriminator identifying which variant a stored value
// holds. The zero Type is invalid.
type Type byte

const (
	TypeNull Type = iota + 1
	TypeBool
	TypeInt8
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeString
	TypeBinary
	TypeList
	TypeBoolArray
	TypeInt8Array
	TypeUint8Array
	TypeInt16Array
	TypeUint16Array
	TypeInt32Array
	TypeUint32Array
	TypeInt64Array
	TypeUint64Array
	TypeStringArray
	TypeListArray
)

var typeNames = [...]string{
	TypeNull:        "null",
	TypeBool:        "bool",
	TypeInt8:        "int8",
	TypeUint8:       "uint8",
	TypeInt16:       "int16",
	TypeUint16:      "uint16",
	TypeInt32:       "int32",
	TypeUint32:      "uint32",
	TypeInt64:       "int64",
	TypeUint64:      "uint64",
	TypeString:      "string",
	TypeBinary:      "binary",
	TypeList:        "nvlist",
	TypeBoolArray:   "bool array",
	TypeInt8Array:   "int8 array",
	TypeUint8Array:  "uint8 array",
	TypeInt16Array:  "int16 array",
	TypeUint16Array: "uint16 array",
	TypeInt32Array:  "int32 array",
	TypeUint32Array: "uint32 array",
	TypeInt64Array:  "int64 array",
	TypeUint64Array: "uint64 array",
	TypeStringArray: "string array",
	TypeListArray:   "nvlist array",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "unknown"
}

// Value is a single stored variant. Concrete types are Null, Bool, the
// fixed-width integers, String, Binary, *List and the array kinds. The
// interface is sealed: only types in this package implement it.
type Value interface {
	Type() Type
	nvValue()
}

// Null is presence without data.
type Null struct{}

type Bool bool

type (
	Int8   int8
	Uint8  uint8
	Int16  int16
	Uint16 uint16
	Int32  int32
	Uint32 uint32
	Int64  int64
	Uint64 uint64
)

// String is UTF-8 text. It may not contain an embedded NUL byte; the
// native representation is NUL-terminated.
type String string

// Binary is an opaque byte sequence with an explicit length.
type Binary []byte

type (
	BoolArray   []bool
	Int8Array   []int8
	Uint8Array  []uint8
	Int16Array  []int16
	Uint16Array []uint16
	Int32Array  []int32
	Uint32Array []uint32
	Int64Array  []int64
	Uint64Array []uint64
	StringArray []string
	ListArray   []*List
)

func (Null) Type() Type        { return TypeNull }
func (Bool) Type() Type        { return TypeBool }
func (Int8) Type() Type        { return TypeInt8 }
func (Uint8) Type() Type       { return TypeUint8 }
func (Int16) Type() Type       { return TypeInt16 }
func (Uint16) Type() Type      { return TypeUint16 }
func (Int32) Type() Type       { return TypeInt32 }
func (Uint32) Type() Type      { return TypeUint32 }
func (Int64) Type() Type       { return TypeInt64 }
func (Uint64) Type() Type      { return TypeUint64 }
func (String) Type() Type      { return TypeString }
func (Binary) Type() Type      { return TypeBinary }
func (*List) Type() Type       { return TypeList }
func (BoolArray) Type() Type   { return TypeBoolArray }
func (Int8Array) Type() Type   { return TypeInt8Array }
func (Uint8Array) Type() Type  { return TypeUint8Array }
func (Int16Array) Type() Type  { return TypeInt16Array }
func (Uint16Array) Type() Type { return TypeUint16Array }
func (Int32Array) Type() Type  { return TypeInt32Array }
func (Uint32Array) Type() Type { return TypeUint32Array }
func (Int64Array) Type() Type  { return TypeInt64Array }
func (Uint64Array) Type() Type { return TypeUint64Array }
func (StringArray) Type() Type { return TypeStringArray }
func (ListArray) Type() Type   { return TypeListArray }

func (Null) nvValue()        {}
func (Bool) nvValue()        {}
func (Int8) nvValue()        {}
func (Uint8) nvValue()       {}
func (Int16) nvValue()       {}
func (Uint16) nvValue()      {}
func (Int32) nvValue()       {}
func (Uint32) nvValue()      {}
func (Int64) nvValue()       {}
func (Uint64) nvValue()      {}
func (String) nvValue()      {}
func (Binary) nvValue()      {}
func (*List) nvValue()       {}
func (BoolArray) nvValue()   {}
func (Int8Array) nvValue()   {}
func (Uint8Array) nvValue()  {}
func (Int16Array) nvValue()  {}
func (Uint16Array) nvValue() {}
func (Int32Array) nvValue()  {}
func (Uint32Array) nvValue() {}
func (Int64Array) nvValue()  {}
func (Uint64Array) nvValue() {}
func (StringArray) nvValue() {}
func (ListArray) nvValue()   {}

// Entry is one (name, value) pair produced during iteration.
type Entry struct {
	Name  string
	Value Value
}

func copySlice[E any](s []E) []E {
	out := make([]E, len(s))
	copy(out, s)
	return out
}

// copyValue returns a value that shares no mutable storage with v.
// Nested lists are deep-duplicated through their backend.
func copyValue(v Value) Value {
	switch v := v.(type) {
	case Null, Bool, Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, String:
		return v
	case Binary:
		return Binary(copySlice(v))
	case *List:
		return v.Clone()
	case BoolArray:
		return BoolArray(copySlice(v))
	case Int8Array:
		return Int8Array(copySlice(v))
	case Uint8Array:
		return Uint8Array(copySlice(v))
	case Int16Array:
		return Int16Array(copySlice(v))
	case Uint16Array:
		return Uint16Array(copySlice(v))
	case Int32Array:
		return Int32Array(copySlice(v))
	case Uint32Array:
		return Uint32Array(copySlice(v))
	case Int64Array:
		return Int64Array(copySlice(v))
	case Uint64Array:
		return Uint64Array(copySlice(v))
	case StringArray:
		return StringArray(copySlice(v))
	case ListArray:
		out := make(ListArray, len(v))
		for i, l := range v {
			out[i] = l.Clone()
		}
		return out
	}
	panic("nvlist: unknown value variant")
}

func sliceEqual[E comparable](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// valueEqual compares two values structurally. Lists compare by entry
// set, never by handle identity.
func valueEqual(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case Null, Bool, Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, String:
		return a == b
	case Binary:
		return sliceEqual(a, b.(Binary))
	case *List:
		return a.Equal(b.(*List))
	case BoolArray:
		return sliceEqual(a, b.(BoolArray))
	case Int8Array:
		return sliceEqual(a, b.(Int8Array))
	case Uint8Array:
		return sliceEqual(a, b.(Uint8Array))
	case Int16Array:
		return sliceEqual(a, b.(Int16Array))
	case Uint16Array:
		return sliceEqual(a, b.(Uint16Array))
	case Int32Array:
		return sliceEqual(a, b.(Int32Array))
	case Uint32Array:
		return sliceEqual(a, b.(Uint32Array))
	case Int64Array:
		return sliceEqual(a, b.(Int64Array))
	case Uint64Array:
		return sliceEqual(a, b.(Uint64Array))
	case StringArray:
		return sliceEqual(a, b.(StringArray))
	case ListArray:
		bl := b.(ListArray)
		if len(a) != len(bl) {
			return false
		}
		for i := range a {
			if !a[i].Equal(bl[i]) {
				return false
			}
		}
		return true
	}
	panic("nvlist: unknown value variant")
}
