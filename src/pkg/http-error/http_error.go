package httperror

import "net/http"

// Stable error kinds returned to clients.
const (
	KindBadRequest        = "BAD_REQUEST"
	KindNotFound          = "NOT_FOUND"
	KindUnauthorized      = "UNAUTHORIZED"
	KindForbidden         = "FORBIDDEN"
	KindConflict          = "CONFLICT"
	KindInternal          = "INTERNAL_SERVER_ERROR"
	KindDuplicatePhone    = "DUPLICATE_PHONE"
	KindInvalidCredential = "INVALID_CREDENTIAL"
	KindInsufficientFunds = "INSUFFICIENT_FUNDS"
	KindExpired           = "EXPIRED"
	KindMalformed         = "MALFORMED"
	KindRevokedAccount    = "REVOKED_ACCOUNT"
	KindTooManyAttempts   = "TOO_MANY_ATTEMPTS"
)

type CommonError struct {
	Code    int         `json:"code"`
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *CommonError) Error() string {
	return e.Kind + ": " + e.Message
}

// Is matches on Kind so errors.Is works against the New* constructors.
func (e *CommonError) Is(target error) bool {
	t, ok := target.(*CommonError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(code int, kind, message string) *CommonError {
	return &CommonError{Code: code, Kind: kind, Message: message}
}

func NewBadRequest() *CommonError {
	return newError(http.StatusBadRequest, KindBadRequest, "Bad Request")
}

func NewNotFound() *CommonError {
	return newError(http.StatusNotFound, KindNotFound, "Not Found")
}

func NewUnauthorized() *CommonError {
	return newError(http.StatusUnauthorized, KindUnauthorized, "Unauthorized")
}

func NewForbidden() *CommonError {
	return newError(http.StatusForbidden, KindForbidden, "Forbidden")
}

func NewConflict() *CommonError {
	return newError(http.StatusConflict, KindConflict, "Conflict")
}

func NewInternalServerError() *CommonError {
	return newError(http.StatusInternalServerError, KindInternal, "Internal Server Error")
}

func NewDuplicatePhone() *CommonError {
	return newError(http.StatusConflict, KindDuplicatePhone, "phone number already registered")
}

func NewInvalidCredential() *CommonError {
	return newError(http.StatusUnauthorized, KindInvalidCredential, "invalid serial or pin")
}

func NewInsufficientFunds() *CommonError {
	return newError(http.StatusUnprocessableEntity, KindInsufficientFunds, "insufficient balance")
}

func NewExpired() *CommonError {
	return newError(http.StatusUnauthorized, KindExpired, "token expired")
}

func NewMalformed() *CommonError {
	return newError(http.StatusUnauthorized, KindMalformed, "token malformed")
}

func NewRevokedAccount() *CommonError {
	return newError(http.StatusForbidden, KindRevokedAccount, "account is deactivated")
}

func NewTooManyAttempts() *CommonError {
	return newError(http.StatusTooManyRequests, KindTooManyAttempts, "too many failed attempts, try again later")
}
