package errors

import (
	"strings"
	"unicode"
)

// ValidateGroupKey validates a group key supplied with an insertion batch.
// Empty keys are allowed (items without a group key form singleton groups);
// non-empty keys must be printable and reasonably short so they can appear in
// logs, snapshots, and URLs without escaping surprises.
func ValidateGroupKey(key string) error {
	if key == "" {
		return nil
	}

	if len(key) > 128 {
		return New(ErrCodeInvalidInput, "group key too long (max 128 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "group key contains invalid control characters")
		}
	}

	return nil
}

// ValidateSnapshotPath validates a snapshot file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateSnapshotPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "snapshot path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "snapshot path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "snapshot path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "snapshot path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
