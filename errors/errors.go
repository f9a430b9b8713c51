package errors

import (
	"fmt"
	"strings"
)

// Op indicates which operation surface the error came from
type Op string

const (
	OpGuard    Op = "guard"    // guard lifecycle
	OpSlot     Op = "slot"     // slot storage
	OpRegistry Op = "registry" // handle registry
	OpBorrow   Op = "borrow"   // borrow bookkeeping
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidHandle     Kind = "invalid_handle"
	KindOutstandingBorrow Kind = "outstanding_borrow"
	KindClosed            Kind = "closed"
	KindSpent             Kind = "spent"
	KindDoubleFinalize    Kind = "double_finalize"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Op     Op
	Kind   Kind
	Handle uint32
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Handle != 0 {
		b.WriteString(fmt.Sprintf(" handle %d", e.Handle))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Op == t.Op && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Handle sets the handle the error refers to
func (b *Builder) Handle(h uint32) *Builder {
	b.err.Handle = h
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidHandle creates an error for a handle with no live entry
func InvalidHandle(op Op, handle uint32) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidHandle,
		Handle: handle,
		Detail: "no such entry",
	}
}

// OutstandingBorrow creates an error for removal blocked by live borrows
func OutstandingBorrow(op Op, handle uint32, borrows int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindOutstandingBorrow,
		Handle: handle,
		Detail: fmt.Sprintf("%d borrow(s) still outstanding", borrows),
	}
}

// Closed creates an error for operations on a closed registry
func Closed(op Op) *Error {
	return &Error{
		Op:     op,
		Kind:   KindClosed,
		Detail: "registry is closed",
	}
}

// Spent creates an error for operations on an already-discharged entry
func Spent(op Op, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindSpent,
		Detail: detail,
	}
}

// DoubleFinalize creates an error for a second discharge attempt
func DoubleFinalize(op Op, handle uint32) *Error {
	return &Error{
		Op:     op,
		Kind:   KindDoubleFinalize,
		Handle: handle,
		Detail: "cleanup already ran",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(op Op, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(op Op, kind Kind, cause error, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// BorrowedHandlesError reports entries whose borrows were still outstanding
// during a bulk removal. Clear skips such entries and leaves them live;
// Close discharges them anyway and lists them here.
type BorrowedHandlesError struct {
	Handles []uint32
}

// NewBorrowedHandlesError creates an error from the list of skipped handles
func NewBorrowedHandlesError(handles []uint32) *BorrowedHandlesError {
	return &BorrowedHandlesError{Handles: handles}
}

func (e *BorrowedHandlesError) Error() string {
	if len(e.Handles) == 0 {
		return "[registry] outstanding_borrow: no handles specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d handle(s) skipped, borrows still outstanding:", len(e.Handles)))
	for _, h := range e.Handles {
		b.WriteString(fmt.Sprintf("\n  - handle %d", h))
	}

	return b.String()
}

// Is reports whether target matches this error type
func (e *BorrowedHandlesError) Is(target error) bool {
	_, ok := target.(*BorrowedHandlesError)
	return ok
}
