package decoder

import (
	"encoding/binary"
	"math"

	"go.uber.org/zap"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/errors"
)

// Decode reads one POD from the start of data and returns its value tree.
// Bytes past the first POD's padded extent are ignored; use DecodeAll for
// buffers holding a sequence.
func Decode(data []byte) (*podwire.Value, error) {
	v, _, err := decodePod(data, 0)
	if err != nil {
		Logger().Warn("decode fault", zap.Error(err))
		return nil, err
	}
	return v, nil
}

// DecodeAll reads a sequence of back-to-back padded PODs covering the whole
// buffer. Leftover bytes shorter than a header must be zero padding.
func DecodeAll(data []byte) ([]*podwire.Value, error) {
	var vals []*podwire.Value
	off := uint32(0)
	n := uint32(len(data))
	for n-off >= podwire.HeaderSize {
		v, consumed, err := decodePod(data, off)
		if err != nil {
			Logger().Warn("decode fault", zap.Error(err), zap.Int("pod", len(vals)))
			return nil, err
		}
		vals = append(vals, v)
		off += consumed
	}
	for i := off; i < n; i++ {
		if data[i] != 0 {
			return nil, errors.Malformed(i, "trailing garbage after last pod")
		}
	}
	Logger().Debug("decoded pod sequence",
		zap.Int("pods", len(vals)),
		zap.Int("bytes", len(data)))
	return vals, nil
}

// Validate walks one POD structurally without building a value tree. It
// applies exactly the checks Decode does and returns the padded length of
// the POD on success.
func Validate(data []byte) (uint32, error) {
	n, err := validatePod(data, 0)
	if err != nil {
		Logger().Warn("validate fault", zap.Error(err))
	}
	return n, err
}

// decodePod reads the POD at off and returns the tree plus the padded
// number of bytes it occupies. The final POD in a buffer may omit trailing
// padding, so consumed is clamped to the buffer end.
func decodePod(data []byte, off uint32) (*podwire.Value, uint32, error) {
	size, typ, err := readHeader(data, off)
	if err != nil {
		return nil, 0, err
	}
	body := data[off+podwire.HeaderSize : off+podwire.HeaderSize+size]
	v, err := decodeBody(data, off, typ, body)
	if err != nil {
		return nil, 0, err
	}
	consumed := podwire.HeaderSize + podwire.AlignUp(size)
	if off+consumed > uint32(len(data)) {
		consumed = uint32(len(data)) - off
	}
	return v, consumed, nil
}

// readHeader validates the header at off against the remaining buffer and
// returns the payload size and type tag.
func readHeader(data []byte, off uint32) (uint32, podwire.Type, error) {
	n := uint32(len(data))
	if off > n || n-off < podwire.HeaderSize {
		return 0, 0, errors.Malformed(off, "truncated header: %d bytes remain, need %d", n-off, podwire.HeaderSize)
	}
	size := binary.LittleEndian.Uint32(data[off:])
	tag := binary.LittleEndian.Uint32(data[off+4:])
	typ := podwire.Type(tag)
	if !typ.Valid() {
		return 0, 0, errors.UnknownType(errors.PhaseDecode, off+4, tag)
	}
	if size > n-off-podwire.HeaderSize {
		return 0, 0, errors.Malformed(off, "declared size %d exceeds %d remaining bytes", size, n-off-podwire.HeaderSize)
	}
	return size, typ, nil
}

func decodeBody(data []byte, off uint32, typ podwire.Type, body []byte) (*podwire.Value, error) {
	if fixed, ok := typ.FixedSize(); ok {
		if uint32(len(body)) != fixed {
			return nil, errors.Malformed(off, "%s payload is %d bytes, want %d", typ, len(body), fixed)
		}
		return decodeFixed(typ, body), nil
	}
	switch typ {
	case podwire.TypeString:
		return decodeString(off, body)
	case podwire.TypeBytes:
		blob := make([]byte, len(body))
		copy(blob, body)
		return podwire.Bytes(blob), nil
	case podwire.TypeArray:
		return decodeArray(off, body)
	case podwire.TypeStruct:
		return decodeStruct(data, off, body)
	}
	return nil, errors.UnknownType(errors.PhaseDecode, off+4, uint32(typ))
}

// decodeFixed reinterprets a fixed-size payload. Callers have already
// checked the length.
func decodeFixed(typ podwire.Type, body []byte) *podwire.Value {
	switch typ {
	case podwire.TypeNone:
		return podwire.None()
	case podwire.TypeBool:
		return podwire.Bool(binary.LittleEndian.Uint32(body) != 0)
	case podwire.TypeID:
		return podwire.ID(binary.LittleEndian.Uint32(body))
	case podwire.TypeInt:
		return podwire.Int(int32(binary.LittleEndian.Uint32(body)))
	case podwire.TypeLong:
		return podwire.Long(int64(binary.LittleEndian.Uint64(body)))
	case podwire.TypeFloat:
		return podwire.Float(math.Float32frombits(binary.LittleEndian.Uint32(body)))
	case podwire.TypeDouble:
		return podwire.Double(math.Float64frombits(binary.LittleEndian.Uint64(body)))
	case podwire.TypeRectangle:
		return podwire.Rect(podwire.Rectangle{
			Width:  binary.LittleEndian.Uint32(body),
			Height: binary.LittleEndian.Uint32(body[4:]),
		})
	case podwire.TypeFraction:
		return podwire.Frac(podwire.Fraction{
			Num:   binary.LittleEndian.Uint32(body),
			Denom: binary.LittleEndian.Uint32(body[4:]),
		})
	}
	return nil
}

// decodeString copies the text out of the payload. The payload must end in
// exactly one NUL terminator.
func decodeString(off uint32, body []byte) (*podwire.Value, error) {
	if len(body) == 0 {
		return nil, errors.Malformed(off, "string payload missing terminator")
	}
	if body[len(body)-1] != 0 {
		return nil, errors.Malformed(off, "string payload not NUL-terminated")
	}
	text := body[:len(body)-1]
	for i, c := range text {
		if c == 0 {
			return nil, errors.Malformed(off+podwire.HeaderSize+uint32(i), "embedded NUL in string payload")
		}
	}
	return podwire.String(string(text)), nil
}

// decodeArray reads the {childSize, childType} sub-header and slices the
// remaining payload into fixed-size element bodies.
func decodeArray(off uint32, body []byte) (*podwire.Value, error) {
	if uint32(len(body)) < podwire.ArrayChildHeaderSize {
		return nil, errors.Malformed(off, "array payload is %d bytes, need %d for child header", len(body), podwire.ArrayChildHeaderSize)
	}
	childSize := binary.LittleEndian.Uint32(body)
	childTag := binary.LittleEndian.Uint32(body[4:])
	child := podwire.Type(childTag)
	if !child.Valid() {
		return nil, errors.UnknownType(errors.PhaseDecode, off+podwire.HeaderSize+4, childTag)
	}
	fixed, ok := child.FixedSize()
	if !ok {
		return nil, errors.Malformed(off+podwire.HeaderSize+4, "array of variable-size type %s", child)
	}
	if childSize == 0 || childSize != fixed {
		return nil, errors.Malformed(off+podwire.HeaderSize, "array child size %d does not match %s (%d)", childSize, child, fixed)
	}
	elems := body[podwire.ArrayChildHeaderSize:]
	if uint32(len(elems))%childSize != 0 {
		return nil, errors.Malformed(off+podwire.HeaderSize, "array body %d bytes is not a multiple of child size %d", len(elems), childSize)
	}
	n := uint32(len(elems)) / childSize
	children := make([]*podwire.Value, 0, n)
	for i := uint32(0); i < n; i++ {
		children = append(children, decodeFixed(child, elems[i*childSize:(i+1)*childSize]))
	}
	return podwire.Array(child, children...), nil
}

// decodeStruct iterates complete child PODs. Children carry their own
// padding, so the walk must land exactly on the payload end; a trailing
// partial child is a fault.
func decodeStruct(data []byte, off uint32, body []byte) (*podwire.Value, error) {
	var fields []*podwire.Value
	cur := off + podwire.HeaderSize
	end := cur + uint32(len(body))
	for cur < end {
		if end-cur < podwire.HeaderSize {
			return nil, errors.Malformed(cur, "struct payload ends mid-header")
		}
		size, typ, err := readHeader(data[:end], cur)
		if err != nil {
			return nil, err
		}
		child, err := decodeBody(data, cur, typ, data[cur+podwire.HeaderSize:cur+podwire.HeaderSize+size])
		if err != nil {
			return nil, err
		}
		fields = append(fields, child)
		step := podwire.HeaderSize + podwire.AlignUp(size)
		if end-cur < step {
			return nil, errors.Malformed(cur, "struct child padding overruns payload")
		}
		cur += step
	}
	return podwire.Struct(fields...), nil
}
