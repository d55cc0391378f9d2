package builder

import (
	"encoding/binary"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/builder/internal/layout"
	"github.com/FossoresLP/podwire/errors"
)

// Builder serializes PODs into a caller-supplied buffer.
//
// The zero value is not usable; construct with New.
type Builder struct {
	buf    []byte
	cap    uint32
	pos    uint32
	frames []frame
}

// frame tracks one open container until its size is backpatched at pop.
type frame struct {
	typ       podwire.Type
	headerOff uint32
	written   bool
	childType podwire.Type // array frames only
	childSize uint32
}

// New returns a Builder over buf. A nil (or empty) buffer selects dry-run
// mode: the cursor advances but no bytes are written.
func New(buf []byte) *Builder {
	b := &Builder{}
	b.Reset(buf)
	return b
}

// Reset rewinds the builder over a new buffer, dropping any open frames.
// Passing the dry-run size of a finished sequence as cap(buf) and replaying
// the same calls produces the real encoding.
func (b *Builder) Reset(buf []byte) {
	b.buf = buf
	b.cap = uint32(len(buf))
	b.pos = 0
	b.frames = b.frames[:0]
}

// Size returns the number of bytes the call sequence so far requires. In
// dry-run mode and after overflow this is the size a replay needs.
func (b *Builder) Size() uint32 {
	return b.pos
}

// DryRun reports whether the builder has no buffer to write into, either
// because it was constructed over nil or over an empty slice.
func (b *Builder) DryRun() bool {
	return len(b.buf) == 0
}

// Overflowed reports whether the cursor has advanced past the buffer's
// capacity. Always true in dry-run mode once anything was appended.
func (b *Builder) Overflowed() bool {
	return b.pos > b.cap
}

// Depth returns the number of open container frames.
func (b *Builder) Depth() int {
	return len(b.frames)
}

// Bytes returns the encoded buffer. It fails with an overflow error
// carrying the required size when the buffer was too small (or absent),
// and with an invalid-argument error while container frames remain open.
func (b *Builder) Bytes() ([]byte, error) {
	if len(b.frames) > 0 {
		return nil, errors.InvalidArgument(errors.PhaseBuild,
			"%d container frame(s) still open", len(b.frames))
	}
	if b.pos > b.cap {
		return nil, errors.Overflow(b.pos, b.cap)
	}
	return b.buf[:b.pos], nil
}

// appendPod places one complete POD at the cursor: header, payload from
// emit, zero padding. Writes are all-or-nothing; when the POD does not fit
// the cursor still advances so size discovery stays correct.
//
// When the innermost open frame is an array, t must match the declared
// child type and only the bare element body is emitted.
func (b *Builder) appendPod(t podwire.Type, info layout.Info, emit func(dst []byte)) (uint32, error) {
	if f := b.top(); f != nil && f.typ == podwire.TypeArray {
		return b.appendElem(f, t, info, emit)
	}

	off := b.pos
	total := info.Total()
	if b.fits(total) {
		b.putHeader(off, info.Body, t)
		if info.Body > 0 {
			emit(b.buf[off+podwire.HeaderSize : off+podwire.HeaderSize+info.Body])
		}
		b.zero(off+podwire.HeaderSize+info.Body, info.Pad)
	}
	b.pos += total
	return off, nil
}

// appendElem writes a bare array element body of the frame's child type.
func (b *Builder) appendElem(f *frame, t podwire.Type, info layout.Info, emit func(dst []byte)) (uint32, error) {
	if t != f.childType {
		return 0, errors.InvalidArgument(errors.PhaseBuild,
			"array element type %s does not match declared child type %s", t, f.childType)
	}

	off := b.pos
	if b.fits(f.childSize) {
		if f.childSize > 0 {
			emit(b.buf[off : off+f.childSize])
		}
	}
	b.pos += f.childSize
	return off, nil
}

// fits reports whether n more bytes can be written at the cursor.
func (b *Builder) fits(n uint32) bool {
	return b.buf != nil && b.pos+n <= b.cap
}

func (b *Builder) putHeader(off, size uint32, t podwire.Type) {
	binary.LittleEndian.PutUint32(b.buf[off:], size)
	binary.LittleEndian.PutUint32(b.buf[off+4:], uint32(t))
}

// zero writes n padding bytes at off. The buffer is caller-owned and may
// hold stale data, so padding is always cleared explicitly.
func (b *Builder) zero(off, n uint32) {
	for i := uint32(0); i < n; i++ {
		b.buf[off+i] = 0
	}
}

func (b *Builder) top() *frame {
	if len(b.frames) == 0 {
		return nil
	}
	return &b.frames[len(b.frames)-1]
}
