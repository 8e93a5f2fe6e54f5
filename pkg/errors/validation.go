package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input limits.
const (
	MaxDocumentSize = 1 << 20 // bytes
	MaxDimension    = 16384   // pixels per side
	MaxPixels       = 1 << 26 // pixels per raster surface, 256 MiB as RGBA
	MaxPathLength   = 500
)

// ValidateDocument checks that a heading document is safe to parse.
// An empty document is valid and yields an empty diagram.
//
// Validation rules:
//   - Maximum size of [MaxDocumentSize] bytes
//   - Valid UTF-8
//   - No null bytes
func ValidateDocument(doc []byte) error {
	if len(doc) > MaxDocumentSize {
		return New(ErrCodeInvalidInput, "document too large (%d bytes, max %d)", len(doc), MaxDocumentSize)
	}
	if !utf8.Valid(doc) {
		return New(ErrCodeInvalidInput, "document is not valid UTF-8")
	}
	if strings.ContainsRune(string(doc), '\x00') {
		return New(ErrCodeInvalidInput, "document contains null bytes")
	}
	return nil
}

// ValidateDimensions checks a raster container size.
// Zero is allowed and produces an empty surface.
func ValidateDimensions(width, height int) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidDimensions, "dimensions must not be negative (got %dx%d)", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "dimensions too large (got %dx%d, max %d)", width, height, MaxDimension)
	}
	return nil
}

// ValidatePixels checks the area of a raster surface of w×h pixels, after
// any scale factor has been applied.
func ValidatePixels(w, h int) error {
	if w < 0 || h < 0 {
		return New(ErrCodeInvalidDimensions, "surface size must not be negative (got %dx%d)", w, h)
	}
	if int64(w)*int64(h) > MaxPixels {
		return New(ErrCodeInvalidDimensions, "surface too large (%dx%d pixels, max %d pixels)", w, h, MaxPixels)
	}
	return nil
}

// ValidateRoot checks that root indexes a forest of n trees.
// Any root is valid for an empty forest, which renders as an empty diagram.
func ValidateRoot(root, n int) error {
	if root < 0 {
		return New(ErrCodeInvalidRoot, "root index must not be negative (got %d)", root)
	}
	if n > 0 && root >= n {
		return New(ErrCodeInvalidRoot, "root index %d out of range (document has %d top-level titles)", root, n)
	}
	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of [MaxPathLength] characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > MaxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", MaxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
