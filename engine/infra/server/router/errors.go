package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rosterd/rosterd/pkg/logger"
)

// Error codes surfaced in response bodies.
const (
	ErrInternalCode   = "INTERNAL_ERROR"
	ErrValidationCode = "VALIDATION_ERROR"
	ErrNotFoundCode   = "NOT_FOUND"
	ErrConflictCode   = "CONFLICT"
)

// internalErrorMessage is the generic, non-leaking message returned for
// unexpected failures. The underlying cause is logged, never surfaced.
const internalErrorMessage = "an unexpected error occurred"

// RequestError represents errors that can occur during request handling.
type RequestError struct {
	Reason     string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Reason
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a new RequestError.
func NewRequestError(statusCode int, reason string, err error) *RequestError {
	return &RequestError{
		StatusCode: statusCode,
		Reason:     reason,
		Err:        err,
	}
}

// NewValidationError creates a 400 RequestError with the VALIDATION_ERROR code.
func NewValidationError(reason string, err error) *RequestError {
	return NewRequestError(http.StatusBadRequest, reason, err)
}

// NewNotFoundError creates a 404 RequestError with the NOT_FOUND code.
func NewNotFoundError(reason string, err error) *RequestError {
	return NewRequestError(http.StatusNotFound, reason, err)
}

// NewConflictError creates a 409 RequestError with the CONFLICT code.
func NewConflictError(reason string, err error) *RequestError {
	return NewRequestError(http.StatusConflict, reason, err)
}

// NewInternalError creates a 500 RequestError. The wrapped error is logged by
// RespondError but never included in the response body.
func NewInternalError(err error) *RequestError {
	return NewRequestError(http.StatusInternalServerError, internalErrorMessage, err)
}

// ErrorInfo is the error payload rendered inside the response envelope.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// GetErrorInfo extracts error information for the standardized response.
func (e *RequestError) GetErrorInfo() *ErrorInfo {
	code := codeForStatus(e.StatusCode)
	info := &ErrorInfo{
		Code:    code,
		Message: e.Reason,
	}
	// Internal failures carry a generic message only.
	if code != ErrInternalCode && e.Err != nil {
		info.Details = e.Err.Error()
	}
	return info
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return ErrValidationCode
	case http.StatusNotFound:
		return ErrNotFoundCode
	case http.StatusConflict:
		return ErrConflictCode
	default:
		return ErrInternalCode
	}
}

// RespondError writes the error envelope for the given error. Unknown error
// types are treated as internal failures and logged with full detail.
func RespondError(c *gin.Context, err error) {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		reqErr = NewInternalError(err)
	}
	if reqErr.StatusCode >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error(
			"request failed",
			"status", reqErr.StatusCode,
			"error", fmt.Sprintf("%v", errors.Unwrap(reqErr)),
		)
	}
	c.JSON(reqErr.StatusCode, gin.H{"error": reqErr.GetErrorInfo()})
}

// RespondOK writes the success envelope with the given payload.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"data":    data,
		"message": "Success",
	})
}
