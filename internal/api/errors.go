package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/vyasa-api/internal/api/shared"
	"github.com/phrazzld/vyasa-api/internal/content"
	"github.com/phrazzld/vyasa-api/internal/generation"
	"github.com/phrazzld/vyasa-api/internal/source"
)

// Errors raised while reading a request, before any service is called.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingFile    = errors.New("no file part in the request")
	ErrNoFileSelected = errors.New("no file selected")
	ErrUploadTooLarge = errors.New("upload exceeds size limit")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	// The deployment cannot serve generation requests at all
	case generation.IsConfigError(err):
		return http.StatusServiceUnavailable

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	// Source errors
	case errors.Is(err, source.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, source.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrExtractionFailed):
		return http.StatusUnprocessableEntity

	// Upstream generation errors
	case errors.Is(err, generation.ErrFallbackExhausted),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, content.ErrNoContent):
		return http.StatusBadGateway

	// Bad request errors
	case errors.Is(err, ErrUploadTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, content.ErrEmptyInput),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrNoFileSelected):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var extractionErr *source.ExtractionError
	var maxBytesErr *http.MaxBytesError

	switch {
	case generation.IsConfigError(err):
		return "Content generation is not configured on this server"

	case errors.Is(err, context.DeadlineExceeded):
		return "Content generation timed out"

	case errors.Is(err, source.ErrUnsupportedType):
		if errors.As(err, &extractionErr) && extractionErr.MediaType != "" {
			return fmt.Sprintf("Unsupported file type: %s", extractionErr.MediaType)
		}
		return "Unsupported file type"
	case errors.Is(err, source.ErrInvalidReference):
		return "Invalid YouTube URL"
	case errors.Is(err, source.ErrExtractionFailed):
		return "Could not extract text from the document"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The request was blocked by content safety filters"
	case errors.Is(err, generation.ErrFallbackExhausted):
		return "Visual generation failed for every available model"
	case errors.Is(err, content.ErrNoContent):
		return "The model returned no content"
	case errors.Is(err, generation.ErrGenerationFailed):
		return "Content generation failed"

	case errors.Is(err, ErrUploadTooLarge), errors.As(err, &maxBytesErr):
		return "Uploaded file is too large"
	case errors.Is(err, ErrMissingFile):
		return "No file part in the request"
	case errors.Is(err, ErrNoFileSelected):
		return "No file selected"
	case errors.Is(err, content.ErrEmptyInput):
		return "Required input is missing"
	case errors.Is(err, ErrInvalidRequest):
		return "Invalid request format"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted detail. defaultMsg replaces the generic message for errors that
// map to 500.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'RoadmapRequest.Topic' Error:Field validation for 'Topic' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "url":
		return "invalid URL"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
