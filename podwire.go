package podwire

// Type identifies the payload shape of a POD.
type Type uint32

const (
	TypeNone      Type = 1
	TypeBool      Type = 2
	TypeID        Type = 3
	TypeInt       Type = 4
	TypeLong      Type = 5
	TypeFloat     Type = 6
	TypeDouble    Type = 7
	TypeString    Type = 8
	TypeBytes     Type = 9
	TypeRectangle Type = 10
	TypeFraction  Type = 11
	// 12 is a reserved tag slot.
	TypeArray  Type = 13
	TypeStruct Type = 14
)

const (
	// HeaderSize is the fixed length of a POD header: size u32 + type u32.
	HeaderSize = 8

	// Alignment is the boundary every POD's total on-wire length respects.
	Alignment = 8

	// ArrayChildHeaderSize is the length of the {childSize, childType}
	// sub-header at the start of an Array payload.
	ArrayChildHeaderSize = 8
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeBool:
		return "bool"
	case TypeID:
		return "id"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeBytes:
		return "bytes"
	case TypeRectangle:
		return "rectangle"
	case TypeFraction:
		return "fraction"
	case TypeArray:
		return "array"
	case TypeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a known tag.
func (t Type) Valid() bool {
	switch t {
	case TypeNone, TypeBool, TypeID, TypeInt, TypeLong, TypeFloat, TypeDouble,
		TypeString, TypeBytes, TypeRectangle, TypeFraction, TypeArray, TypeStruct:
		return true
	}
	return false
}

// FixedSize returns the payload size of t and true when t has a fixed-size
// payload. Only fixed-size types may be array elements.
func (t Type) FixedSize() (uint32, bool) {
	switch t {
	case TypeNone:
		return 0, true
	case TypeBool, TypeID, TypeInt, TypeFloat:
		return 4, true
	case TypeLong, TypeDouble, TypeRectangle, TypeFraction:
		return 8, true
	default:
		return 0, false
	}
}

// Container reports whether t nests other values.
func (t Type) Container() bool {
	return t == TypeArray || t == TypeStruct
}

// AlignUp rounds n up to the next multiple of the alignment boundary.
func AlignUp(n uint32) uint32 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// PadSize returns the number of zero bytes following a payload of the given
// size so that the next POD starts aligned.
func PadSize(size uint32) uint32 {
	return AlignUp(size) - size
}

// Rectangle is the payload of a Rectangle POD.
type Rectangle struct {
	Width  uint32
	Height uint32
}

// Fraction is the payload of a Fraction POD.
type Fraction struct {
	Num   uint32
	Denom uint32
}
