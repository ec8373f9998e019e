package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors (caller must resubmit with different input).
const (
	// ErrCodeUnsupportedFormat indicates an audio container outside the allow-list.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeFileTooSmall indicates an upload below the minimum speech threshold.
	ErrCodeFileTooSmall ErrorCode = "FILE_TOO_SMALL"
	// ErrCodeFileTooLarge indicates an upload above the configured size cap.
	ErrCodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"
	// ErrCodeDecodeFailure indicates the audio stream could not be decoded.
	ErrCodeDecodeFailure ErrorCode = "DECODE_FAILURE"
	// ErrCodeEmptyTranscription indicates no usable speech was found in the audio.
	ErrCodeEmptyTranscription ErrorCode = "EMPTY_TRANSCRIPTION"
	// ErrCodeInvalidInput indicates malformed request input (e.g. a bad date string).
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Pipeline backend errors.
const (
	// ErrCodeTranscriptionBackend indicates the transcription backend failed.
	ErrCodeTranscriptionBackend ErrorCode = "TRANSCRIPTION_BACKEND_ERROR"
	// ErrCodeClassificationFailed indicates the emotion classifier failed.
	ErrCodeClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"
	// ErrCodePersistenceFailed indicates the mood record write failed.
	ErrCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
)

// Generic errors.
const (
	// ErrCodeUnauthorized indicates missing or invalid credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeNotFound indicates a missing resource.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates an operation exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// retryableCodes are codes where a later retry of the same request may succeed.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeTranscriptionBackend: true,
	ErrCodeClassificationFailed: true,
	ErrCodePersistenceFailed:    true,
	ErrCodeTimeout:              true,
}

// IsRetryableCode reports whether the code is considered retryable.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
