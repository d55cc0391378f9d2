// Package errors provides structured error types for the podwire library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: a path through the value
// tree, the byte offset where a decode fault was detected, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
//		Path("fields[2]").
//		Offset(24).
//		Detail("header size %d exceeds remaining %d bytes", size, rem).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Malformed(24, "unknown type tag %d", tag)
//	err := errors.Overflow(need, have)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
