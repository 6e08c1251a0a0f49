// Package api carries the response envelope and error mapping shared by
// every HTTP handler.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridvoice/gridvoice/internal/domain"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse is the envelope for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes data as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Success writes data wrapped in the success envelope.
func Success(w http.ResponseWriter, status int, data interface{}) {
	JSON(w, status, SuccessResponse{Data: data})
}

// Error writes message wrapped in the error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// DomainErrorToHTTP maps a domain error code to its HTTP status. Errors
// that are not domain errors map to 500.
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation, domain.ErrCodeInvalidOperation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes err with the status its domain code maps to.
func HandleError(w http.ResponseWriter, err error) {
	Error(w, DomainErrorToHTTP(err), err.Error())
}
