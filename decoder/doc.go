// Package decoder reads POD buffers back into typed value trees.
//
// The decoder is the builder's counterpart and shares only the data model
// with it: given bytes believed to contain one well-formed POD, Decode
// validates the header against the remaining buffer, reinterprets leaf
// payloads as their fixed shapes, and recurses through struct and array
// containers. Any structural inconsistency is a malformed-data fault
// carrying the byte offset where detection occurred; the decoder never
// guesses past a detected inconsistency.
//
// Decoded trees are fully independent of the input buffer: string and blob
// payloads are copied out, so the buffer may be reused or freed once
// Decode returns.
//
// Validate performs the same structural walk without materializing values,
// and Print renders a decoded tree with indentation reflecting nesting
// depth, one line per scalar, braces around container contents.
package decoder
