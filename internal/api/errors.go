package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/vocaexam/internal/api/shared"
	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/service"
	"github.com/phrazzld/vocaexam/internal/session"
	"github.com/phrazzld/vocaexam/internal/store"
)

// genericErrorMessage is returned for errors without a dedicated message.
const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTargetDay),
		errors.Is(err, domain.ErrInvalidWordsPerDay),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrMessageTooLong):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound

	// Rendering failures are ours, whatever the source says
	case errors.Is(err, service.ErrRenderFailed):
		return http.StatusInternalServerError

	// Upstream dataset errors
	case errors.Is(err, store.ErrSourceUnavailable),
		errors.Is(err, store.ErrInvalidDataset):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return genericErrorMessage
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, domain.ErrInvalidTargetDay):
		return "Invalid target_day: must be at least 1"

	case errors.Is(err, domain.ErrInvalidWordsPerDay):
		return "Invalid words_per_day"

	case errors.Is(err, domain.ErrInvalidMode):
		return "Invalid mode"

	case errors.Is(err, domain.ErrMessageTooLong):
		return "Message too long"

	case errors.Is(err, session.ErrSessionNotFound):
		return "Exam not found"

	case errors.Is(err, service.ErrRenderFailed):
		return "Failed to render exam"

	case errors.Is(err, store.ErrSourceUnavailable),
		errors.Is(err, store.ErrInvalidDataset):
		return "Vocabulary dataset unavailable"

	default:
		return genericErrorMessage
	}
}

// HandleAPIError writes the error response for err. Errors without a
// dedicated message use defaultMsg when one is given.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == genericErrorMessage && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError writes a 400 response for a failed request validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", jsonFieldName(fe.Field()), getValidationTagMessage(fe.Tag()))
	}

	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'CreateExamRequest.TargetDay' Error:Field validation for 'TargetDay' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := jsonFieldName(fieldParts[1])
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

	// Fall back to a generic validation error message
	return "Validation error"
}

// jsonFieldName converts a Go struct field name to its snake_case wire name.
func jsonFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_if":
		return "required field"
	case "gte", "gt":
		return "too small"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
