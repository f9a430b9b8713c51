// Package errors provides structured error types for the dropguard library.
//
// Errors are categorized by Op (which operation surface failed) and Kind
// (error category). The Error type includes the handle involved, a detail
// message, and a cause chain. Core guard operations never return errors;
// this package serves the handle registry and diagnostics around it.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpRegistry, errors.KindInvalidHandle).
//		Handle(h).
//		Detail("entry was released earlier").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidHandle(errors.OpRegistry, h)
//	err := errors.OutstandingBorrow(errors.OpBorrow, h, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
