package builder

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/builder/internal/layout"
	"github.com/FossoresLP/podwire/errors"
)

// AppendNone appends an empty none POD and returns its offset.
func (b *Builder) AppendNone() (uint32, error) {
	return b.appendPod(podwire.TypeNone, layout.ForBody(0), nil)
}

// AppendBool appends a bool POD.
func (b *Builder) AppendBool(v bool) (uint32, error) {
	var raw uint32
	if v {
		raw = 1
	}
	return b.appendU32(podwire.TypeBool, raw)
}

// AppendID appends an id POD.
func (b *Builder) AppendID(id uint32) (uint32, error) {
	return b.appendU32(podwire.TypeID, id)
}

// AppendInt appends a 32-bit integer POD.
func (b *Builder) AppendInt(v int32) (uint32, error) {
	return b.appendU32(podwire.TypeInt, uint32(v))
}

// AppendLong appends a 64-bit integer POD.
func (b *Builder) AppendLong(v int64) (uint32, error) {
	return b.appendU64(podwire.TypeLong, uint64(v))
}

// AppendFloat appends a 32-bit float POD.
func (b *Builder) AppendFloat(v float32) (uint32, error) {
	return b.appendU32(podwire.TypeFloat, math.Float32bits(v))
}

// AppendDouble appends a 64-bit float POD.
func (b *Builder) AppendDouble(v float64) (uint32, error) {
	return b.appendU64(podwire.TypeDouble, math.Float64bits(v))
}

// AppendRectangle appends a rectangle POD.
func (b *Builder) AppendRectangle(r podwire.Rectangle) (uint32, error) {
	return b.appendPair(podwire.TypeRectangle, r.Width, r.Height)
}

// AppendFraction appends a fraction POD.
func (b *Builder) AppendFraction(f podwire.Fraction) (uint32, error) {
	return b.appendPair(podwire.TypeFraction, f.Num, f.Denom)
}

// maxBody is the largest payload the u32 size field can describe once the
// header and worst-case padding are accounted for.
const maxBody = math.MaxUint32 - podwire.HeaderSize - (podwire.Alignment - 1)

// bodyFits reports whether a payload of n source bytes is representable
// on the wire.
func bodyFits(n uint64) bool {
	return n <= maxBody
}

// AppendString appends a string POD. The builder writes the NUL terminator
// itself; s must not contain one.
func (b *Builder) AppendString(s string) (uint32, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"string contains a NUL byte at index %d", strings.IndexByte(s, 0))
	}
	if !bodyFits(uint64(len(s)) + 1) {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"string of %d bytes does not fit the size field", len(s))
	}
	return b.appendPod(podwire.TypeString, layout.String(s), func(dst []byte) {
		n := copy(dst, s)
		dst[n] = 0
	})
}

// AppendBytes appends an opaque blob POD.
func (b *Builder) AppendBytes(p []byte) (uint32, error) {
	if !bodyFits(uint64(len(p))) {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"blob of %d bytes does not fit the size field", len(p))
	}
	return b.appendPod(podwire.TypeBytes, layout.Bytes(len(p)), func(dst []byte) {
		copy(dst, p)
	})
}

// AppendArray appends a complete array POD in one call. child must be a
// fixed-size type and data must hold exactly n raw little-endian element
// bodies of that size.
func (b *Builder) AppendArray(child podwire.Type, data []byte, n uint32) (uint32, error) {
	childSize, ok := child.FixedSize()
	if !ok {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"array child type %s has no fixed size", child)
	}
	if child == podwire.TypeNone {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"array of none is not representable")
	}
	want, ok := layout.SafeMulU32(childSize, n)
	if !ok {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"array size overflows: %d elements of %d bytes", n, childSize)
	}
	if uint32(len(data)) != want {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"array data is %d bytes, %d elements of %d bytes require %d",
			len(data), n, childSize, want)
	}

	info, _ := layout.Array(childSize, n)
	return b.appendPod(podwire.TypeArray, info, func(dst []byte) {
		binary.LittleEndian.PutUint32(dst, childSize)
		binary.LittleEndian.PutUint32(dst[4:], uint32(child))
		copy(dst[podwire.ArrayChildHeaderSize:], data)
	})
}

func (b *Builder) appendU32(t podwire.Type, v uint32) (uint32, error) {
	return b.appendPod(t, layout.ForBody(4), func(dst []byte) {
		binary.LittleEndian.PutUint32(dst, v)
	})
}

func (b *Builder) appendU64(t podwire.Type, v uint64) (uint32, error) {
	return b.appendPod(t, layout.ForBody(8), func(dst []byte) {
		binary.LittleEndian.PutUint64(dst, v)
	})
}

func (b *Builder) appendPair(t podwire.Type, hi, lo uint32) (uint32, error) {
	return b.appendPod(t, layout.ForBody(8), func(dst []byte) {
		binary.LittleEndian.PutUint32(dst, hi)
		binary.LittleEndian.PutUint32(dst[4:], lo)
	})
}
