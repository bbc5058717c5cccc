package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateID validates a node, template or level identifier.
// Identifiers end up in file names, cache keys and URLs, so the rules are
// conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	const maxIDLength = 128
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateLevelFilename validates a level file name given to the server or CLI.
// It must be a simple basename with a .toml extension.
func ValidateLevelFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "level filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "level filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "level filename cannot be a hidden file")
	}

	if filepath.Ext(filename) != ".toml" {
		return New(ErrCodeInvalidPath, "level filename must end in .toml")
	}

	return nil
}
