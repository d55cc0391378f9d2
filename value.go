package podwire

import (
	"bytes"
	"fmt"
	"math"
)

// Value is one node of a decoded POD tree. Scalars are leaves; Array and
// Struct values nest child nodes. A Value is immutable once built and safe
// to share between goroutines.
type Value struct {
	typ Type

	boolVal   bool
	idVal     uint32
	intVal    int32
	longVal   int64
	floatVal  float32
	doubleVal float64
	strVal    string
	bytesVal  []byte
	rectVal   Rectangle
	fracVal   Fraction

	// Array: homogeneous elements of elemType. Struct: heterogeneous fields.
	elemType Type
	children []*Value
}

// None returns the none value.
func None() *Value {
	return &Value{typ: TypeNone}
}

// Bool returns a bool value.
func Bool(v bool) *Value {
	return &Value{typ: TypeBool, boolVal: v}
}

// ID returns an id value.
func ID(v uint32) *Value {
	return &Value{typ: TypeID, idVal: v}
}

// Int returns a 32-bit integer value.
func Int(v int32) *Value {
	return &Value{typ: TypeInt, intVal: v}
}

// Long returns a 64-bit integer value.
func Long(v int64) *Value {
	return &Value{typ: TypeLong, longVal: v}
}

// Float returns a 32-bit float value.
func Float(v float32) *Value {
	return &Value{typ: TypeFloat, floatVal: v}
}

// Double returns a 64-bit float value.
func Double(v float64) *Value {
	return &Value{typ: TypeDouble, doubleVal: v}
}

// String returns a string value.
func String(v string) *Value {
	return &Value{typ: TypeString, strVal: v}
}

// Bytes returns an opaque blob value. The slice is not copied.
func Bytes(v []byte) *Value {
	return &Value{typ: TypeBytes, bytesVal: v}
}

// Rect returns a rectangle value.
func Rect(r Rectangle) *Value {
	return &Value{typ: TypeRectangle, rectVal: r}
}

// Frac returns a fraction value.
func Frac(f Fraction) *Value {
	return &Value{typ: TypeFraction, fracVal: f}
}

// Array returns an array value of homogeneous elements. Every element must
// already be of type elem; the builder rejects anything else at encode time.
func Array(elem Type, elems ...*Value) *Value {
	return &Value{typ: TypeArray, elemType: elem, children: elems}
}

// Struct returns a struct value with the given ordered fields.
func Struct(fields ...*Value) *Value {
	return &Value{typ: TypeStruct, children: fields}
}

// Type returns the node's type tag. A nil Value reads as none.
func (v *Value) Type() Type {
	if v == nil {
		return TypeNone
	}
	return v.typ
}

// IsNone reports whether the node is the none value.
func (v *Value) IsNone() bool {
	return v == nil || v.typ == TypeNone
}

// AsBool returns the bool payload.
func (v *Value) AsBool() (bool, error) {
	if v == nil || v.typ != TypeBool {
		return false, typeError(v, TypeBool)
	}
	return v.boolVal, nil
}

// AsID returns the id payload.
func (v *Value) AsID() (uint32, error) {
	if v == nil || v.typ != TypeID {
		return 0, typeError(v, TypeID)
	}
	return v.idVal, nil
}

// AsInt returns the int payload.
func (v *Value) AsInt() (int32, error) {
	if v == nil || v.typ != TypeInt {
		return 0, typeError(v, TypeInt)
	}
	return v.intVal, nil
}

// AsLong returns the long payload.
func (v *Value) AsLong() (int64, error) {
	if v == nil || v.typ != TypeLong {
		return 0, typeError(v, TypeLong)
	}
	return v.longVal, nil
}

// AsFloat returns the float payload.
func (v *Value) AsFloat() (float32, error) {
	if v == nil || v.typ != TypeFloat {
		return 0, typeError(v, TypeFloat)
	}
	return v.floatVal, nil
}

// AsDouble returns the double payload.
func (v *Value) AsDouble() (float64, error) {
	if v == nil || v.typ != TypeDouble {
		return 0, typeError(v, TypeDouble)
	}
	return v.doubleVal, nil
}

// AsString returns the string payload without its wire terminator.
func (v *Value) AsString() (string, error) {
	if v == nil || v.typ != TypeString {
		return "", typeError(v, TypeString)
	}
	return v.strVal, nil
}

// AsBytes returns the blob payload.
func (v *Value) AsBytes() ([]byte, error) {
	if v == nil || v.typ != TypeBytes {
		return nil, typeError(v, TypeBytes)
	}
	return v.bytesVal, nil
}

// AsRect returns the rectangle payload.
func (v *Value) AsRect() (Rectangle, error) {
	if v == nil || v.typ != TypeRectangle {
		return Rectangle{}, typeError(v, TypeRectangle)
	}
	return v.rectVal, nil
}

// AsFrac returns the fraction payload.
func (v *Value) AsFrac() (Fraction, error) {
	if v == nil || v.typ != TypeFraction {
		return Fraction{}, typeError(v, TypeFraction)
	}
	return v.fracVal, nil
}

// ElemType returns the element type of an array value.
func (v *Value) ElemType() (Type, error) {
	if v == nil || v.typ != TypeArray {
		return 0, typeError(v, TypeArray)
	}
	return v.elemType, nil
}

// Len returns the child count of an array or struct, zero for leaves.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	return len(v.children)
}

// Field returns the i-th field of a struct value.
func (v *Value) Field(i int) (*Value, error) {
	if v == nil || v.typ != TypeStruct {
		return nil, typeError(v, TypeStruct)
	}
	if i < 0 || i >= len(v.children) {
		return nil, fmt.Errorf("podwire: field index %d out of range (len %d)", i, len(v.children))
	}
	return v.children[i], nil
}

// Elem returns the i-th element of an array value.
func (v *Value) Elem(i int) (*Value, error) {
	if v == nil || v.typ != TypeArray {
		return nil, typeError(v, TypeArray)
	}
	if i < 0 || i >= len(v.children) {
		return nil, fmt.Errorf("podwire: element index %d out of range (len %d)", i, len(v.children))
	}
	return v.children[i], nil
}

// Children returns the child nodes of a container, nil for leaves.
func (v *Value) Children() []*Value {
	if v == nil {
		return nil
	}
	return v.children
}

// Equal reports whether two trees are structurally identical: same types,
// same payloads, same child order. Float payloads compare by bit pattern so
// NaN round-trips compare equal.
func (v *Value) Equal(o *Value) bool {
	if v.Type() != o.Type() {
		return false
	}
	if v == nil || o == nil {
		return true // both none
	}
	switch v.typ {
	case TypeNone:
		return true
	case TypeBool:
		return v.boolVal == o.boolVal
	case TypeID:
		return v.idVal == o.idVal
	case TypeInt:
		return v.intVal == o.intVal
	case TypeLong:
		return v.longVal == o.longVal
	case TypeFloat:
		return math.Float32bits(v.floatVal) == math.Float32bits(o.floatVal)
	case TypeDouble:
		return math.Float64bits(v.doubleVal) == math.Float64bits(o.doubleVal)
	case TypeString:
		return v.strVal == o.strVal
	case TypeBytes:
		return bytes.Equal(v.bytesVal, o.bytesVal)
	case TypeRectangle:
		return v.rectVal == o.rectVal
	case TypeFraction:
		return v.fracVal == o.fracVal
	case TypeArray:
		if v.elemType != o.elemType || len(v.children) != len(o.children) {
			return false
		}
		for i := range v.children {
			if !v.children[i].Equal(o.children[i]) {
				return false
			}
		}
		return true
	case TypeStruct:
		if len(v.children) != len(o.children) {
			return false
		}
		for i := range v.children {
			if !v.children[i].Equal(o.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func typeError(v *Value, want Type) error {
	return fmt.Errorf("podwire: expected %s, got %s", want, v.Type())
}
