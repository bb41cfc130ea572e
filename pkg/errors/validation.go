package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxViewportSide bounds viewport dimensions accepted from users.
const MaxViewportSide = 16384

// ValidateViewport checks a requested chart size. Anything under one pixel
// in either dimension is too small to lay out.
func ValidateViewport(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidViewport, "viewport dimensions must be finite")
		}
	}
	if width < 1 || height < 1 {
		return New(ErrCodeInvalidViewport, "viewport %gx%g is too small to render", width, height)
	}
	if width > MaxViewportSide || height > MaxViewportSide {
		return New(ErrCodeInvalidViewport, "viewport %gx%g exceeds %d pixels", width, height, MaxViewportSide)
	}
	return nil
}

// ValidateDomain checks a user-supplied [min, max] pair. Nil is allowed.
func ValidateDomain(name string, d []float64) error {
	if d == nil {
		return nil
	}
	if len(d) != 2 {
		return New(ErrCodeInvalidInput, "%s must have exactly two values, got %d", name, len(d))
	}
	for _, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "%s must be finite", name)
		}
	}
	if d[0] > d[1] {
		return New(ErrCodeInvalidInput, "%s minimum %g is above maximum %g", name, d[0], d[1])
	}
	return nil
}

// dataExtensions are the series formats the loaders read.
var dataExtensions = map[string]bool{".json": true, ".csv": true, ".xlsx": true}

// ValidateDataFilename checks that a data source names a supported format.
func ValidateDataFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidChartFile, "data source cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !dataExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported data format %q (use .json, .csv or .xlsx)", ext)
	}
	return nil
}

// ValidateSheetName validates an Excel worksheet name.
//
// Validation rules:
//   - 1 to 31 characters
//   - None of : \ / ? * [ ]
//   - No leading or trailing apostrophe
func ValidateSheetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "sheet name cannot be empty")
	}
	if len([]rune(name)) > 31 {
		return New(ErrCodeInvalidInput, "sheet name too long (max 31 characters)")
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return New(ErrCodeInvalidInput, "sheet name contains invalid characters: %q", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return New(ErrCodeInvalidInput, "sheet name cannot start or end with an apostrophe")
	}
	return nil
}

// ValidatePath validates a data path referenced from a chart file.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateCacheURL validates a Redis connection URL.
func ValidateCacheURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "cache URL cannot be empty")
	}

	// Simple scheme validation; go-redis parses the rest
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "cache URL must use redis or rediss scheme")
	}

	return nil
}
