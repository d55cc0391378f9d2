package builder

import (
	"github.com/FossoresLP/podwire/errors"
)

// Build runs the two-pass encode discipline: fn is invoked once against a
// dry-run builder to measure the sequence, then again against a builder
// over an exactly sized buffer. fn must issue the identical call sequence
// both times; the format guarantees identical cursor math in both modes.
func Build(fn func(*Builder) error) ([]byte, error) {
	dry := getDry()
	err := fn(dry)
	size := dry.Size()
	open := dry.Depth()
	putDry(dry)
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, errors.InvalidArgument(errors.PhaseBuild,
			"%d container frame(s) still open after build func", open)
	}

	b := New(make([]byte, size))
	if err := fn(b); err != nil {
		return nil, err
	}
	if b.Size() != size {
		return nil, errors.InvalidArgument(errors.PhaseBuild,
			"build func is not deterministic: measured %d bytes, wrote %d", size, b.Size())
	}
	return b.Bytes()
}
