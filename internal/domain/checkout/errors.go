package checkout

import "fmt"

// ErrorKind routes a checkout failure to the right client surface: cart and
// coupon problems are expected user-facing conditions (HTTP 400, targeted at
// the cart view or the coupon input), database failures are opaque 500s.
type ErrorKind string

const (
	ErrKindCart     ErrorKind = "cart"
	ErrKindCoupon   ErrorKind = "coupon"
	ErrKindDatabase ErrorKind = "database"
)

// Error is the checkout engine's error taxonomy. Handlers map Kind to the
// wire-level errorType tag and HTTP status.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

// NewCartError creates a cart-shape, availability or distance error
func NewCartError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindCart, Message: fmt.Sprintf(format, args...)}
}

// NewCouponError creates a coupon-specific error
func NewCouponError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindCoupon, Message: fmt.Sprintf(format, args...)}
}

// NewDataError wraps a downstream data-access failure. The message shown to
// clients stays generic; the cause is for server-side logs only.
func NewDataError(cause error) *Error {
	return &Error{Kind: ErrKindDatabase, Message: "something went wrong", cause: cause}
}
