package utils

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failure so the HTTP boundary can map it to a
// status code in one place. Handlers and services never pick status codes
// themselves.
type ErrorKind string

const (
	KindValidationFailed ErrorKind = "validation_failed"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindForbidden        ErrorKind = "forbidden"
	KindNotFound         ErrorKind = "not_found"
	KindNotEditable      ErrorKind = "not_editable"
	KindItemNotFound     ErrorKind = "item_not_found"
	KindItemUnavailable  ErrorKind = "item_unavailable"
	KindRatingOutOfRange ErrorKind = "rating_out_of_range"
	KindInvalidStatus    ErrorKind = "invalid_status"
	KindInternal         ErrorKind = "internal"
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// HTTPStatus maps an error kind to the status code the API exposes.
// Domain-rule rejections surface as 400 like the original API did;
// Forbidden stays distinct from NotFound so clients can tell "exists but
// not yours" apart from "does not exist".
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidationFailed, KindNotEditable, KindItemNotFound,
		KindItemUnavailable, KindRatingOutOfRange, KindInvalidStatus:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
