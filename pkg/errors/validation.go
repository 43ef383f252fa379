package errors

import (
	"strings"
	"unicode"
)

// ValidateMaterialName rejects names a container could never hold.
//
// Rules:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 63 bytes, the host's material name limit
func ValidateMaterialName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "material name cannot be empty")
	}

	const maxNameLength = 63
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "material name too long (max %d bytes)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "material name contains invalid control characters")
		}
	}
	return nil
}

// ValidateContainerPath validates a container file path given on the
// command line.
//
// Rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory-like path ending in a separator
func ValidateContainerPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "container path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "container path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "container path must name a file, not a directory")
	}
	return nil
}
