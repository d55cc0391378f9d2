package builder

import (
	"strconv"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/errors"
)

// AppendValue encodes a whole decoded tree, leaves and containers alike.
// It returns the offset of the tree's root POD.
func (b *Builder) AppendValue(v *podwire.Value) (uint32, error) {
	switch v.Type() {
	case podwire.TypeNone:
		return b.AppendNone()

	case podwire.TypeBool:
		val, _ := v.AsBool()
		return b.AppendBool(val)

	case podwire.TypeID:
		val, _ := v.AsID()
		return b.AppendID(val)

	case podwire.TypeInt:
		val, _ := v.AsInt()
		return b.AppendInt(val)

	case podwire.TypeLong:
		val, _ := v.AsLong()
		return b.AppendLong(val)

	case podwire.TypeFloat:
		val, _ := v.AsFloat()
		return b.AppendFloat(val)

	case podwire.TypeDouble:
		val, _ := v.AsDouble()
		return b.AppendDouble(val)

	case podwire.TypeString:
		val, _ := v.AsString()
		return b.AppendString(val)

	case podwire.TypeBytes:
		val, _ := v.AsBytes()
		return b.AppendBytes(val)

	case podwire.TypeRectangle:
		val, _ := v.AsRect()
		return b.AppendRectangle(val)

	case podwire.TypeFraction:
		val, _ := v.AsFrac()
		return b.AppendFraction(val)

	case podwire.TypeArray:
		return b.appendValueArray(v)

	case podwire.TypeStruct:
		return b.appendValueStruct(v)

	default:
		return 0, errors.New(errors.PhaseBuild, errors.KindUnknownType).
			Detail("cannot encode value of type tag %d", uint32(v.Type())).
			Build()
	}
}

func (b *Builder) appendValueStruct(v *podwire.Value) (uint32, error) {
	off := b.pos
	f, err := b.PushStruct()
	if err != nil {
		return 0, err
	}
	for i, child := range v.Children() {
		if _, err := b.AppendValue(child); err != nil {
			return 0, errors.New(errors.PhaseBuild, errors.KindInvalidArgument).
				Path(fieldPath(i)).
				Cause(err).
				Detail("failed to encode struct field %d", i).
				Build()
		}
	}
	return off, b.Pop(f)
}

func (b *Builder) appendValueArray(v *podwire.Value) (uint32, error) {
	elem, err := v.ElemType()
	if err != nil {
		return 0, errors.InvalidArgument(errors.PhaseBuild, "%v", err)
	}

	off := b.pos
	f, err := b.PushArray(elem)
	if err != nil {
		return 0, err
	}
	for i, child := range v.Children() {
		if child.Type() != elem {
			return 0, errors.New(errors.PhaseBuild, errors.KindInvalidArgument).
				Path(elemPath(i)).
				Detail("array element %d has type %s, declared child type is %s", i, child.Type(), elem).
				Build()
		}
		if _, err := b.AppendValue(child); err != nil {
			return 0, errors.New(errors.PhaseBuild, errors.KindInvalidArgument).
				Path(elemPath(i)).
				Cause(err).
				Detail("failed to encode array element %d", i).
				Build()
		}
	}
	return off, b.Pop(f)
}

func fieldPath(i int) string {
	return "fields[" + strconv.Itoa(i) + "]"
}

func elemPath(i int) string {
	return "elems[" + strconv.Itoa(i) + "]"
}
