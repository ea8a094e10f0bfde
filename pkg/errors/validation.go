package errors

import (
	"strings"
	"unicode"
)

// ValidateUserID validates an opaque user identifier (painter, requester,
// viewer). Identifiers travel in cache keys, file names, and DOT labels,
// so the rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 128 characters
func ValidateUserID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidViewer, "user id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidViewer, "user id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidViewer, "user id contains control characters")
		}
	}

	return nil
}

// ValidateScenarioPath validates a scenario file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateScenarioPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path contains traversal sequence")
		}
	}

	return nil
}
