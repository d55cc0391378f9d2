package builder

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/errors"
)

// Frame is an opaque handle for one open container. It is only meaningful
// to the Builder that issued it and only until the matching Pop.
type Frame struct {
	owner *Builder
	depth int // stack height after the push; 0 is the zero (invalid) Frame
}

// PushStruct opens a struct container. Its header is written immediately
// with a placeholder size and corrected when the frame is popped.
func (b *Builder) PushStruct() (Frame, error) {
	return b.push(podwire.TypeStruct, 0, 0)
}

// PushArray opens an array container of fixed-size elements. The child
// sub-header is written along with the placeholder POD header; subsequent
// scalar appends of the child type emit bare element bodies until Pop.
func (b *Builder) PushArray(child podwire.Type) (Frame, error) {
	childSize, ok := child.FixedSize()
	if !ok {
		return Frame{}, errors.InvalidArgument(errors.PhaseBuild,
			"array child type %s has no fixed size", child)
	}
	if child == podwire.TypeNone {
		return Frame{}, errors.InvalidArgument(errors.PhaseBuild,
			"array of none is not representable")
	}
	return b.push(podwire.TypeArray, child, childSize)
}

func (b *Builder) push(t podwire.Type, child podwire.Type, childSize uint32) (Frame, error) {
	if f := b.top(); f != nil && f.typ == podwire.TypeArray {
		return Frame{}, errors.InvalidArgument(errors.PhaseBuild,
			"cannot open a %s container inside an array frame", t)
	}

	off := b.pos
	reserve := uint32(podwire.HeaderSize)
	if t == podwire.TypeArray {
		reserve += podwire.ArrayChildHeaderSize
	}

	written := b.fits(reserve)
	if written {
		b.putHeader(off, 0, t)
		if t == podwire.TypeArray {
			binary.LittleEndian.PutUint32(b.buf[off+podwire.HeaderSize:], childSize)
			binary.LittleEndian.PutUint32(b.buf[off+podwire.HeaderSize+4:], uint32(child))
		}
	}
	b.pos += reserve

	b.frames = append(b.frames, frame{
		typ:       t,
		headerOff: off,
		written:   written,
		childType: child,
		childSize: childSize,
	})
	Logger().Debug("push frame",
		zap.Stringer("type", t),
		zap.Uint32("offset", off),
		zap.Int("depth", len(b.frames)))

	return Frame{owner: b, depth: len(b.frames)}, nil
}

// Pop closes the innermost open container, backpatching its header with
// the true payload size and padding it to the alignment boundary. Popping
// with a frame that is not the innermost open one, or when no frame is
// open, is a caller error.
func (b *Builder) Pop(f Frame) error {
	if f.owner != b || f.depth == 0 {
		return errors.InvalidArgument(errors.PhaseBuild,
			"pop with a frame this builder did not issue")
	}
	if len(b.frames) == 0 {
		return errors.InvalidArgument(errors.PhaseBuild, "pop with no open frame")
	}
	if f.depth != len(b.frames) {
		return errors.InvalidArgument(errors.PhaseBuild,
			"pop out of order: frame depth %d, innermost open frame is %d", f.depth, len(b.frames))
	}

	top := b.top()
	payload := b.pos - top.headerOff - podwire.HeaderSize
	if top.written {
		binary.LittleEndian.PutUint32(b.buf[top.headerOff:], payload)
	}
	b.frames = b.frames[:len(b.frames)-1]

	pad := podwire.PadSize(payload)
	if b.fits(pad) {
		b.zero(b.pos, pad)
	}
	b.pos += pad

	Logger().Debug("pop frame",
		zap.Stringer("type", top.typ),
		zap.Uint32("offset", top.headerOff),
		zap.Uint32("payload", payload),
		zap.Uint32("pad", pad))
	return nil
}
