package service

import (
	"errors"
	"net/http"
)

// Error kinds. Every ServiceError matches exactly one of them with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrStorage              = errors.New("storage failure")
)

// ServiceError carries the error kind and the HTTP status the API answers with
type ServiceError struct {
	Kind    error
	Code    int
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewServiceError(kind error, code int, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Code: code, Message: message, Err: err}
}

func validationError(err error) *ServiceError {
	return NewServiceError(ErrValidation, http.StatusBadRequest, err.Error(), err)
}

func notFoundError(message string, err error) *ServiceError {
	return NewServiceError(ErrNotFound, http.StatusNotFound, message, err)
}

func unsupportedMediaTypeError(message string) *ServiceError {
	return NewServiceError(ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, message, nil)
}

// storageError is a failed write of an uploaded document.
func storageError(message string, err error) *ServiceError {
	return NewServiceError(ErrStorage, http.StatusInternalServerError, message, err)
}

// unavailableError is a record store that cannot be reached.
func unavailableError(message string, err error) *ServiceError {
	return NewServiceError(ErrStorage, http.StatusServiceUnavailable, message, err)
}
