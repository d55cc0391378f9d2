package layout

import (
	"github.com/FossoresLP/podwire"
)

// Info describes the on-wire footprint of one POD.
type Info struct {
	Body uint32 // payload bytes, excluding header and padding
	Pad  uint32 // zero bytes after the payload
}

// Total returns header + payload + padding.
func (i Info) Total() uint32 {
	return podwire.HeaderSize + i.Body + i.Pad
}

// ForBody returns the footprint of a POD with the given payload size.
func ForBody(body uint32) Info {
	return Info{Body: body, Pad: podwire.PadSize(body)}
}

// Scalar returns the footprint of a fixed-size scalar POD.
// ok is false for types without a fixed payload size.
func Scalar(t podwire.Type) (Info, bool) {
	size, ok := t.FixedSize()
	if !ok {
		return Info{}, false
	}
	return ForBody(size), true
}

// String returns the footprint of a string POD. The payload includes the
// NUL terminator the builder appends.
func String(s string) Info {
	return ForBody(uint32(len(s)) + 1)
}

// Bytes returns the footprint of a bytes POD.
func Bytes(n int) Info {
	return ForBody(uint32(n))
}

// Array returns the footprint of a one-shot array POD with n elements of
// childSize bytes each. ok is false when n*childSize overflows uint32.
func Array(childSize, n uint32) (Info, bool) {
	data, ok := SafeMulU32(childSize, n)
	if !ok {
		return Info{}, false
	}
	body := podwire.ArrayChildHeaderSize + data
	if body < data {
		return Info{}, false
	}
	return ForBody(body), true
}

// SafeMulU32 multiplies two uint32 values, reporting overflow.
func SafeMulU32(a, b uint32) (uint32, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	result := a * b
	if result/a != b {
		return 0, false
	}
	return result, true
}
