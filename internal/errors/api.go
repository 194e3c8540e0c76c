package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates a new APIError with the given parameters
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// Predefined errors for the upload/clean surface
var (
	ErrInvalidRequest    = NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrMissingFile       = NewAPIError(http.StatusBadRequest, "MISSING_FILE", "No report file in request")
	ErrUnsupportedFormat = NewAPIError(http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "Unsupported report format")
	ErrFileTooLarge      = NewAPIError(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file exceeds the size limit")
	ErrInternalServer    = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// FromError maps an application error onto an API error response. Loader
// failures are the client's problem (bad file), everything else is ours.
func FromError(err error) *APIError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeLoader:
			return &APIError{
				StatusCode: http.StatusUnprocessableEntity,
				ErrorCode:  "LOAD_FAILED",
				Message:    "Could not read the uploaded report",
				Details:    appErr.Message,
			}
		case ErrTypeValidation:
			return &APIError{
				StatusCode: http.StatusBadRequest,
				ErrorCode:  "VALIDATION_FAILED",
				Message:    appErr.Message,
			}
		}
	}
	return ErrInternalServer
}
