package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pwfconv/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, "FILE_NOT_FOUND", "input file does not exist"
	case errors.Is(err, domain.ErrUndecodableFile):
		return http.StatusBadRequest, "UNDECODABLE_FILE", "could not decode file with any supported encoding"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnknownFormat):
		return http.StatusBadRequest, "UNKNOWN_FORMAT", "unknown output format; allowed: json, dat, csv, xlsx"
	case errors.Is(err, domain.ErrSchemaInvalid):
		return http.StatusInternalServerError, "SCHEMA_INVALID", "column schema is invalid"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal server error"
	}
}
