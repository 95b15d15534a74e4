// Package errors provides a structured error system for ocifs with error codes, categories, and context.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents a structured error code for storage operations.
type ErrorCode string

// Error code constants organized by category.
const (
	// Configuration errors (construction time, before any network I/O)
	ErrCodeMissingConfig      ErrorCode = "MISSING_CONFIG"
	ErrCodeInvalidFingerprint ErrorCode = "INVALID_FINGERPRINT"
	ErrCodeInvalidRegion      ErrorCode = "INVALID_REGION"
	ErrCodeInvalidTier        ErrorCode = "INVALID_TIER"
	ErrCodeInvalidVisibility  ErrorCode = "INVALID_VISIBILITY"
	ErrCodeInvalidPath        ErrorCode = "INVALID_PATH"

	// Signing errors (fatal to the call that triggered them)
	ErrCodeKeyNotFound     ErrorCode = "KEY_NOT_FOUND"
	ErrCodeKeyUnreadable   ErrorCode = "KEY_UNREADABLE"
	ErrCodeKeyMalformed    ErrorCode = "KEY_MALFORMED"
	ErrCodeSignatureFailed ErrorCode = "SIGNATURE_FAILED"

	// Storage errors
	ErrCodeObjectNotFound ErrorCode = "OBJECT_NOT_FOUND"
	ErrCodeBucketNotFound ErrorCode = "BUCKET_NOT_FOUND"

	// Network errors (retryable by the caller; the client never retries)
	ErrCodeNetworkError     ErrorCode = "NETWORK_ERROR"
	ErrCodeOperationTimeout ErrorCode = "OPERATION_TIMEOUT"

	// Bulk operation errors
	ErrCodeBulkPartialFailure ErrorCode = "BULK_PARTIAL_FAILURE"

	// Protocol errors (response the client cannot interpret)
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"

	// Validation errors (rejected locally, before any request is built)
	ErrCodeRestoreHours ErrorCode = "RESTORE_HOURS_OUT_OF_RANGE"
)

// ErrorCategory represents the general category of an error.
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategorySigning       ErrorCategory = "signing"
	CategoryStorage       ErrorCategory = "storage"
	CategoryNetwork       ErrorCategory = "network"
	CategoryBulk          ErrorCategory = "bulk"
	CategoryProtocol      ErrorCategory = "protocol"
	CategoryValidation    ErrorCategory = "validation"
	CategoryInternal      ErrorCategory = "internal"
)

// StorageError represents a structured error with context and metadata.
type StorageError struct {
	Code     ErrorCode     `json:"code"`
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`

	// Operation and logical path the error occurred on, when known.
	Op   string `json:"op,omitempty"`
	Path string `json:"path,omitempty"`

	// StatusCode carries the raw HTTP status for protocol errors.
	StatusCode int `json:"status_code,omitempty"`

	// Retryable hints that the caller may retry; nothing in this
	// module retries on its own.
	Retryable bool `json:"retryable"`

	Cause     error     `json:"-"` // not serialized to avoid circular refs
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("[%s %s] %s: %s", e.Op, e.Path, e.Code, e.Message)
	case e.Op != "":
		return fmt.Sprintf("[%s] %s: %s", e.Op, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause error for error wrapping compatibility.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error (for errors.Is compatibility).
func (e *StorageError) Is(target error) bool {
	if storageErr, ok := target.(*StorageError); ok {
		return e.Code == storageErr.Code
	}
	return false
}

// String returns a detailed string representation for logging.
func (e *StorageError) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Code=%s", e.Code))
	parts = append(parts, fmt.Sprintf("Category=%s", e.Category))
	parts = append(parts, fmt.Sprintf("Message=%q", e.Message))

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("Op=%s", e.Op))
	}

	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("Path=%s", e.Path))
	}

	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("StatusCode=%d", e.StatusCode))
	}

	if e.Retryable {
		parts = append(parts, "Retryable=true")
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause=%q", e.Cause.Error()))
	}

	return fmt.Sprintf("StorageError{%s}", strings.Join(parts, ", "))
}

// JSON returns the error as a JSON string.
func (e *StorageError) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal error: %s"}`, err.Error())
	}
	return string(data)
}

// New creates a new storage error with category and retryability defaults.
func New(code ErrorCode, message string) *StorageError {
	return &StorageError{
		Code:      code,
		Category:  GetCategory(code),
		Message:   message,
		Timestamp: time.Now(),
		Retryable: IsRetryableByDefault(code),
	}
}

// Newf creates a new storage error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *StorageError {
	return New(code, fmt.Sprintf(format, args...))
}

// NewMissingConfig creates a configuration error naming every missing key.
// Validation reports all problems at once rather than failing on the first.
func NewMissingConfig(keys ...string) *StorageError {
	return Newf(ErrCodeMissingConfig, "missing required configuration: %s", strings.Join(keys, ", "))
}

// GetCategory determines the category based on the error code.
func GetCategory(code ErrorCode) ErrorCategory {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "MISSING_CONFIG") || strings.HasPrefix(codeStr, "INVALID_"):
		return CategoryConfiguration
	case strings.HasPrefix(codeStr, "KEY_") || strings.HasPrefix(codeStr, "SIGNATURE_"):
		return CategorySigning
	case strings.HasPrefix(codeStr, "OBJECT_") || strings.HasPrefix(codeStr, "BUCKET_"):
		return CategoryStorage
	case strings.HasPrefix(codeStr, "NETWORK_") || strings.HasPrefix(codeStr, "OPERATION_"):
		return CategoryNetwork
	case strings.HasPrefix(codeStr, "BULK_"):
		return CategoryBulk
	case strings.HasPrefix(codeStr, "UNEXPECTED_"):
		return CategoryProtocol
	case strings.HasPrefix(codeStr, "RESTORE_"):
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// IsRetryableByDefault determines if an error is retryable by default.
func IsRetryableByDefault(code ErrorCode) bool {
	retryableCodes := map[ErrorCode]bool{
		ErrCodeNetworkError:     true,
		ErrCodeOperationTimeout: true,
	}
	return retryableCodes[code]
}

// WithOp sets the operation the error occurred during.
func (e *StorageError) WithOp(op string) *StorageError {
	e.Op = op
	return e
}

// WithPath sets the logical path the error relates to.
func (e *StorageError) WithPath(path string) *StorageError {
	e.Path = path
	return e
}

// WithStatus attaches the raw HTTP status code.
func (e *StorageError) WithStatus(status int) *StorageError {
	e.StatusCode = status
	return e
}

// WithCause sets the underlying cause.
func (e *StorageError) WithCause(cause error) *StorageError {
	e.Cause = cause
	return e
}

// WithRetryable overrides the default retryability hint.
func (e *StorageError) WithRetryable(retryable bool) *StorageError {
	e.Retryable = retryable
	return e
}

// CodeOf extracts the error code from err, or "" if err carries none.
func CodeOf(err error) ErrorCode {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Code
	}
	return ""
}

// IsNotFound reports whether err represents a missing object or bucket.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case ErrCodeObjectNotFound, ErrCodeBucketNotFound:
		return true
	}
	return false
}

// IsRetryable reports whether err is marked safe to retry. Used by
// callers (and pkg/retry); the storage client itself never retries.
func IsRetryable(err error) bool {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Retryable
	}
	return false
}
