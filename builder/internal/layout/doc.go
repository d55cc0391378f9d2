// Package layout provides size calculations for the POD wire format.
//
// Every POD occupies header + payload + padding on the wire. This package
// computes payload sizes per type and the padding required to keep the next
// POD aligned, so the builder and its dry-run mode share one source of
// sizing truth.
//
// # Sizing Rules
//
//   - Fixed-size scalars: payload size is a property of the type tag
//     (bool/id/int/float = 4, long/double/rectangle/fraction = 8, none = 0)
//   - String: text bytes + 1 for the NUL terminator
//   - Bytes: blob length, no terminator
//   - Array: 8-byte child sub-header + n * childSize element bodies
//   - Struct: sum of complete child PODs, known only at pop time
//
// This package is internal to the builder.
package layout
