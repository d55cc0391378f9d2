// Package builder encodes typed values into the POD wire format.
//
// A Builder writes into a caller-supplied byte buffer and never allocates
// buffer memory itself. Construction over a nil buffer selects dry-run mode:
// the cursor advances exactly as a real encode would, but nothing is
// written, so a caller can discover the required size first and replay the
// identical call sequence into a right-sized buffer.
//
//	b := builder.New(nil)          // dry-run pass
//	b.AppendInt(42)
//	buf := make([]byte, b.Size())
//	b.Reset(buf)                   // real pass, same calls
//	b.AppendInt(42)
//	out, err := b.Bytes()
//
// The Build helper packages that two-pass discipline into one call.
//
// # Overflow
//
// A buffer that turns out too small is never a fault. Each append either
// writes its POD completely or writes nothing at all, and the cursor
// advances either way, so Size always reports the true requirement and the
// caller can reallocate and replay.
//
// # Containers
//
// PushStruct and PushArray open a container frame: the header is written
// eagerly with a placeholder size and backpatched when Pop closes the
// frame. Frames form a strict LIFO stack; a Pop that does not name the
// innermost open frame is a typed error, not a panic. While an array frame
// is open, the scalar appends emit bare element bodies of the declared
// child type with no per-element headers.
//
// # Thread Safety
//
// A Builder instance is owned by exactly one writer; callers needing
// parallelism use independent builders over independent buffers.
package builder
