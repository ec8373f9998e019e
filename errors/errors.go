package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable, client-safe error message.
	Message string `json:"message"`
	// Retryable indicates if resubmitting the same request may succeed.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status code this error maps to.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error.
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

// WithCause sets the underlying cause and returns the receiver.
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
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Voice pipeline constructors ---

// UnsupportedFormat creates an error for an audio container outside the allow-list.
func UnsupportedFormat(extension string, allowed []string) *AppError {
	return &AppError{
		Code:       ErrCodeUnsupportedFormat,
		Message:    fmt.Sprintf("Unsupported file format %q. Allowed formats: %v", extension, allowed),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"extension": extension},
	}
}

// FileTooSmall creates an error for an upload too short to contain speech.
func FileTooSmall(size, minimum int64) *AppError {
	return &AppError{
		Code:       ErrCodeFileTooSmall,
		Message:    "Audio file is too short to contain speech.",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"size_bytes": size, "minimum_bytes": minimum},
	}
}

// FileTooLarge creates an error for an upload above the configured cap.
func FileTooLarge(size, maximum int64) *AppError {
	return &AppError{
		Code:       ErrCodeFileTooLarge,
		Message:    fmt.Sprintf("File too large. Maximum size: %.1f MB", float64(maximum)/(1024*1024)),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"size_bytes": size, "maximum_bytes": maximum},
	}
}

// DecodeFailure creates an error for a corrupt or undecodable audio stream.
func DecodeFailure(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeDecodeFailure,
		Message:    "Could not decode audio. The file may be corrupt or truncated.",
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// EmptyTranscription creates an error for audio with no recognizable speech.
func EmptyTranscription() *AppError {
	return &AppError{
		Code:       ErrCodeEmptyTranscription,
		Message:    "Could not transcribe audio. Please ensure the audio contains clear speech.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// TranscriptionBackend creates an error for a failed transcription backend call.
func TranscriptionBackend(backend string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeTranscriptionBackend,
		Message:    "Transcription failed. Please try again.",
		HTTPStatus: http.StatusBadGateway,
		Retryable:  true,
		Details:    map[string]any{"backend": backend},
		Cause:      cause,
	}
}

// ClassificationFailed creates an error for a failed emotion classifier call.
func ClassificationFailed(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeClassificationFailed,
		Message:    "Emotion detection failed.",
		HTTPStatus: http.StatusBadGateway,
		Retryable:  true,
		Cause:      cause,
	}
}

// PersistenceFailed creates an error for a failed mood record write.
func PersistenceFailed(cause error) *AppError {
	return &AppError{
		Code:       ErrCodePersistenceFailed,
		Message:    "Could not save mood entry.",
		HTTPStatus: http.StatusInternalServerError,
		Retryable:  true,
		Cause:      cause,
	}
}

// --- Generic constructors ---

// InvalidInput creates an error for malformed request input.
func InvalidInput(reason string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidInput,
		Message:    fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized creates an error for missing or invalid credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code:       ErrCodeUnauthorized,
		Message:    reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotFound creates an error for a missing resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// Timeout creates an error for an operation that exceeded its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code:       ErrCodeTimeout,
		Message:    "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout,
		Retryable:  true,
		Details:    map[string]any{"operation": operation},
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    "An unexpected error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
