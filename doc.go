// Package podwire defines the data model for the POD wire format: a compact,
// self-describing, tag-length-value binary encoding for typed parameters and
// structured data.
//
// # Wire Format
//
// Every POD is a header followed by a payload and zero padding:
//
//	┌──────────────┬──────────────┬─────────────────┬─────────┐
//	│ size (u32)   │ type (u32)   │ payload (size)  │ padding │
//	└──────────────┴──────────────┴─────────────────┴─────────┘
//
// size counts payload bytes only, excluding the 8-byte header and excluding
// trailing padding. Padding is zero-filled and brings the total on-wire
// length of every POD to a multiple of the 8-byte alignment boundary. All
// integers are little-endian regardless of host byte order.
//
// # Types
//
//	Tag          Payload
//	─────────────────────────────────────────────────
//	None     1   empty
//	Bool     2   u32, 0 or 1
//	ID       3   u32
//	Int      4   s32
//	Long     5   s64
//	Float    6   f32 (IEEE 754)
//	Double   7   f64 (IEEE 754)
//	String   8   text bytes + NUL terminator
//	Bytes    9   opaque blob
//	Rect    10   width u32, height u32
//	Frac    11   num u32, denom u32
//	Array   13   {childSize u32, childType u32} + n element bodies
//	Struct  14   concatenation of complete child PODs
//
// Tag 12 is a reserved slot not part of this format.
//
// Array elements are bare fixed-size bodies with no per-element headers;
// the child type must be one of the fixed-size tags. Struct children are
// complete PODs including their own padding, so struct payloads are always
// aligned and carry no trailing padding of their own.
//
// # Packages
//
//	builder  - encodes values into a caller-supplied buffer
//	decoder  - decodes, validates and prints POD buffers
//	errors   - structured error types shared by both
//
// This package holds only what both sides share: the type tags, the header
// geometry, and the Value tree that decoding produces and building accepts.
package podwire
