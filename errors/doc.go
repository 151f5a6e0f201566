// Package errors provides structured error types for the term library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the database section, the capability
// short code in scope, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTruncated).
//		Section("numbers").
//		Detail("need %d bytes, %d remain", 78, 12).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BadMagic(0x1234)
//	err := errors.MissingArg(2, 1)
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Phase and Kind only, so sentinel values
// like &Error{Phase: PhaseDecode, Kind: KindTruncated} match any truncation.
package errors
