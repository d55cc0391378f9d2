package decoder

import (
	"encoding/binary"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/errors"
)

// validatePod checks the POD at off without allocating values and returns
// its padded length, clamped to the buffer end for the final POD.
func validatePod(data []byte, off uint32) (uint32, error) {
	size, typ, err := readHeader(data, off)
	if err != nil {
		return 0, err
	}
	if err := validateBody(data, off, typ, size); err != nil {
		return 0, err
	}
	consumed := podwire.HeaderSize + podwire.AlignUp(size)
	if off+consumed > uint32(len(data)) {
		consumed = uint32(len(data)) - off
	}
	return consumed, nil
}

func validateBody(data []byte, off uint32, typ podwire.Type, size uint32) error {
	body := data[off+podwire.HeaderSize : off+podwire.HeaderSize+size]
	if fixed, ok := typ.FixedSize(); ok {
		if size != fixed {
			return errors.Malformed(off, "%s payload is %d bytes, want %d", typ, size, fixed)
		}
		return nil
	}
	switch typ {
	case podwire.TypeString:
		_, err := decodeString(off, body)
		return err
	case podwire.TypeBytes:
		return nil
	case podwire.TypeArray:
		return validateArray(off, body)
	case podwire.TypeStruct:
		return validateStruct(data, off, size)
	}
	return errors.UnknownType(errors.PhaseDecode, off+4, uint32(typ))
}

func validateArray(off uint32, body []byte) error {
	if uint32(len(body)) < podwire.ArrayChildHeaderSize {
		return errors.Malformed(off, "array payload is %d bytes, need %d for child header", len(body), podwire.ArrayChildHeaderSize)
	}
	childSize := binary.LittleEndian.Uint32(body)
	childTag := binary.LittleEndian.Uint32(body[4:])
	child := podwire.Type(childTag)
	if !child.Valid() {
		return errors.UnknownType(errors.PhaseDecode, off+podwire.HeaderSize+4, childTag)
	}
	fixed, ok := child.FixedSize()
	if !ok {
		return errors.Malformed(off+podwire.HeaderSize+4, "array of variable-size type %s", child)
	}
	if childSize == 0 || childSize != fixed {
		return errors.Malformed(off+podwire.HeaderSize, "array child size %d does not match %s (%d)", childSize, child, fixed)
	}
	if (uint32(len(body))-podwire.ArrayChildHeaderSize)%childSize != 0 {
		return errors.Malformed(off+podwire.HeaderSize, "array body %d bytes is not a multiple of child size %d",
			uint32(len(body))-podwire.ArrayChildHeaderSize, childSize)
	}
	return nil
}

func validateStruct(data []byte, off, size uint32) error {
	cur := off + podwire.HeaderSize
	end := cur + size
	for cur < end {
		if end-cur < podwire.HeaderSize {
			return errors.Malformed(cur, "struct payload ends mid-header")
		}
		childSize, typ, err := readHeader(data[:end], cur)
		if err != nil {
			return err
		}
		if err := validateBody(data, cur, typ, childSize); err != nil {
			return err
		}
		step := podwire.HeaderSize + podwire.AlignUp(childSize)
		if end-cur < step {
			return errors.Malformed(cur, "struct child padding overruns payload")
		}
		cur += step
	}
	return nil
}
