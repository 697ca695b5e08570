package errors

import (
	"errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// AsAppError extracts an *AppError from err's chain, if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Common Error Constructors ---

// MissingConfig creates a new AppError for an absent required setting.
func MissingConfig(name string) *AppError {
	return &AppError{
		Code: ErrCodeMissingConfig, Message: fmt.Sprintf("Required setting %s is not defined.", name),
		Retryable: false,
		Details:   map[string]any{"setting": name},
	}
}

// InvalidConfig creates a new AppError for a setting that failed validation.
func InvalidConfig(name, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid value for %s: %s", name, reason),
		Retryable: false,
		Details:   map[string]any{"setting": name},
	}
}

// FileNotFound creates a new AppError for a missing file.
func FileNotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeFileNotFound, Message: fmt.Sprintf("%s doesn't exist.", path),
		Retryable: false,
		Details:   map[string]any{"path": path},
	}
}

// WrongFormat creates a new AppError for an unsupported file format.
func WrongFormat(got string, accepted []string) *AppError {
	return &AppError{
		Code: ErrCodeWrongFormat, Message: fmt.Sprintf("Wrong file format %q.", got),
		Retryable: false,
		Details:   map[string]any{"got": got, "accepted": accepted},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// MediaFetch creates a new AppError for a failed media download.
func MediaFetch(url string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeMediaFetch, Message: "Unable to download media content.",
		Retryable: true,
		Details:   map[string]any{"url": url}, Cause: cause,
	}
}

// MediaResolve creates a new AppError for a share-page that could not be
// resolved to a direct media URL.
func MediaResolve(pageURL string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeMediaResolve, Message: "Unable to resolve share page to a media URL.",
		Retryable: false,
		Details:   map[string]any{"page_url": pageURL}, Cause: cause,
	}
}

// Caption creates a new AppError for a failed captioning call.
func Caption(cause error) *AppError {
	return &AppError{
		Code: ErrCodeCaption, Message: "The captioning backend failed to describe the image.",
		Retryable: false, Cause: cause,
	}
}

// Transcription creates a new AppError for a failed transcription call.
func Transcription(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscription, Message: "The transcription backend failed to transcribe the audio.",
		Retryable: false, Cause: cause,
	}
}

// DeliveryForbidden creates a new AppError for a destination the bot may not
// post to.
func DeliveryForbidden(target string) *AppError {
	return &AppError{
		Code: ErrCodeDeliveryForbidden, Message: fmt.Sprintf("The bot is not allowed to write in %s.", target),
		Retryable: false,
		Details:   map[string]any{"target": target},
	}
}

// ExternalServiceError creates a new AppError for an error from an external
// backend.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error. Please try again.", service),
		Retryable: true,
		Details:   map[string]any{"service": service}, Cause: cause,
	}
}

// Timeout creates a new AppError for a backend call that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}
