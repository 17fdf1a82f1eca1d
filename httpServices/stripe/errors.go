package stripegw

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/stripe/stripe-go/v76"
)

type ErrorKind string

const (
	KindNoProviderKey  ErrorKind = "no_provider_key"
	KindInvalidBooking ErrorKind = "invalid_booking"
	KindCard           ErrorKind = "card_error"
	KindRateLimit      ErrorKind = "rate_limit"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindAuthentication ErrorKind = "authentication"
	KindConnection     ErrorKind = "api_connection"
	KindAPI            ErrorKind = "api_error"
	KindUnknown        ErrorKind = "unknown"
)

// Error is the tagged result of a failed payment operation.
type Error struct {
	Kind       ErrorKind
	Message    string
	Code       string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error that did not originate from the provider.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of a payment error, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// classify maps a provider SDK failure onto one of the distinguishable kinds.
func classify(err error) *Error {
	if err == nil {
		return nil
	}

	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}

	var se *stripe.Error
	if errors.As(err, &se) {
		out := &Error{Message: se.Msg, Code: string(se.Code), StatusCode: se.HTTPStatusCode, Err: err}
		switch {
		case se.Type == stripe.ErrorTypeCard:
			out.Kind = KindCard
		case se.HTTPStatusCode == http.StatusTooManyRequests || se.Code == "rate_limit":
			out.Kind = KindRateLimit
		case se.HTTPStatusCode == http.StatusUnauthorized:
			out.Kind = KindAuthentication
		case se.Type == stripe.ErrorTypeInvalidRequest:
			out.Kind = KindInvalidRequest
		default:
			out.Kind = KindAPI
		}
		if out.Message == "" {
			out.Message = http.StatusText(se.HTTPStatusCode)
		}
		return out
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &Error{Kind: KindConnection, Message: err.Error(), Err: err}
	}

	return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
}
