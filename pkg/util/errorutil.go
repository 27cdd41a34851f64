package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Well known field markers for the errors list of the response envelope.
const (
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"
	FieldServer   = "server"
)

// Catalog messages surfaced to clients. These texts are part of the API
// contract; clients match on them.
const (
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgInternalError      = "Error interno del servidor"
	MsgRouteNotFound      = "Ruta no encontrada"
)

var duplicateMessages = map[string]string{
	FieldEmail: "El email ya está registrado",
	FieldPhone: "El número de teléfono ya está registrado",
}

// DomainError standardizes application errors and how they render over HTTP.
// Fields carries the violated/conflicting field names for the errors list.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     []string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError reports client-fixable field violations. The message is
// the first violation's catalog text, fields the full ordered violation list.
func NewValidationError(message string, fields []string) error {
	return &DomainError{
		Code:       "VALIDATION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// NewDuplicateField reports a uniqueness conflict on the named field.
// Rendered as 400, not 409.
func NewDuplicateField(field string) error {
	message, ok := duplicateMessages[field]
	if !ok {
		message = fmt.Sprintf("El %s ya está registrado", field)
	}
	return &DomainError{
		Code:       "DUPLICATE_FIELD",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Fields:     []string{field},
	}
}

// NewInvalidCredentials reports a failed login. The error is identical for an
// unknown email and for a wrong password, so it never leaks which was wrong.
func NewInvalidCredentials() error {
	return &DomainError{
		Code:       "INVALID_CREDENTIALS",
		Message:    MsgInvalidCredentials,
		HTTPStatus: http.StatusUnauthorized,
		Fields:     []string{FieldEmail, FieldPassword},
	}
}

// NewRouteNotFound reports an unmatched route.
func NewRouteNotFound() error {
	return &DomainError{
		Code:       "ROUTE_NOT_FOUND",
		Message:    MsgRouteNotFound,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInternalError wraps an unanticipated failure. The client message never
// exposes internals.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    MsgInternalError,
		HTTPStatus: http.StatusInternalServerError,
		Fields:     []string{FieldServer},
		Err:        err,
	}
}

// IsDuplicateField reports whether err is a duplicate-field conflict and, if
// so, the conflicting field name.
func IsDuplicateField(err error) (string, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Code == "DUPLICATE_FIELD" && len(domainErr.Fields) == 1 {
		return domainErr.Fields[0], true
	}
	return "", false
}

// ToDomainError converts generic errors to DomainError, treating anything
// unrecognized as internal.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    MsgInternalError,
		HTTPStatus: http.StatusInternalServerError,
		Fields:     []string{FieldServer},
		Err:        err,
	}
}
