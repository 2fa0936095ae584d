package backend

import "errors"

// Kind classifies an expected provider failure. Callers branch on the kind
// with errors.Is against the sentinel values below, never on message text.
type Kind int

const (
	// KindUnavailable covers transport failures and unexpected provider replies.
	KindUnavailable Kind = iota
	KindDuplicateAccount
	KindInvalidCredentials
	KindEmailUnconfirmed
	KindDeliveryDelayed
	KindResendFailed
)

// String returns the machine-readable kind name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindDuplicateAccount:
		return "duplicate_account"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindEmailUnconfirmed:
		return "email_unconfirmed"
	case KindDeliveryDelayed:
		return "delivery_delayed"
	case KindResendFailed:
		return "resend_failed"
	default:
		return "unavailable"
	}
}

// Sentinels for errors.Is. They match any AuthError of the same kind.
var (
	ErrUnavailable        = &AuthError{Kind: KindUnavailable}
	ErrDuplicateAccount   = &AuthError{Kind: KindDuplicateAccount}
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials}
	ErrEmailUnconfirmed   = &AuthError{Kind: KindEmailUnconfirmed}
	ErrDeliveryDelayed    = &AuthError{Kind: KindDeliveryDelayed}
	ErrResendFailed       = &AuthError{Kind: KindResendFailed}
)

// AuthError is an expected failure reported by a Client. Message is safe to
// show to the user; Err holds the underlying cause, if any.
type AuthError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Unwrap exposes the underlying cause.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches another AuthError of the same kind.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first AuthError in err's chain, and false
// when there is none.
func KindOf(err error) (Kind, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return KindUnavailable, false
}

func newAuthError(kind Kind, message string, cause error) *AuthError {
	return &AuthError{Kind: kind, Message: message, Err: cause}
}
