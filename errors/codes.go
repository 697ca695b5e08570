package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (fatal at startup)
const (
	// ErrCodeMissingConfig indicates a required credential or token is absent.
	ErrCodeMissingConfig ErrorCode = "MISSING_CONFIG"
	// ErrCodeInvalidConfig indicates a configuration value failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Input errors (raised to the immediate caller)
const (
	// ErrCodeFileNotFound indicates the given file path does not exist.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
	// ErrCodeWrongFormat indicates an unsupported file or payload format.
	ErrCodeWrongFormat ErrorCode = "WRONG_FORMAT"
	// ErrCodeInvalidInput indicates the input is otherwise invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Media normalization errors (recovered locally, never propagated)
const (
	// ErrCodeMediaFetch indicates a media download failed.
	ErrCodeMediaFetch ErrorCode = "MEDIA_FETCH_FAILED"
	// ErrCodeMediaResolve indicates a share-page could not be resolved to a
	// direct media URL.
	ErrCodeMediaResolve ErrorCode = "MEDIA_RESOLVE_FAILED"
	// ErrCodeCaption indicates the captioning backend failed.
	ErrCodeCaption ErrorCode = "CAPTION_FAILED"
	// ErrCodeTranscription indicates the transcription backend failed.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION_FAILED"
)

// Delivery and backend errors
const (
	// ErrCodeDeliveryForbidden indicates the bot may not post to the target.
	ErrCodeDeliveryForbidden ErrorCode = "DELIVERY_FORBIDDEN"
	// ErrCodeExternalService indicates an error from an external backend.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeTimeout indicates a backend call timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeMediaFetch:      true,
	ErrCodeExternalService: true,
	ErrCodeTimeout:         true,
}

// IsRetryableCode reports whether the given code is considered retryable.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
