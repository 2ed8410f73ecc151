package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxSymbolLength bounds letter symbols accepted from the CLI and HTTP server.
const maxSymbolLength = 32

// ValidateSymbol validates a letter symbol before it is used in a file name
// or looked up in the catalog. Unknown but well-formed symbols pass; the
// catalog decides what they draw.
//
// The validation rules are intentionally conservative:
//   - No empty symbols
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 32 characters
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return New(ErrCodeInvalidInput, "letter symbol cannot be empty")
	}

	if len(symbol) > maxSymbolLength {
		return New(ErrCodeInvalidInput, "letter symbol too long (max %d characters)", maxSymbolLength)
	}

	for _, r := range symbol {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "letter symbol contains invalid characters: %q", symbol)
		}
	}

	if strings.ContainsAny(symbol, `/\`) || strings.Contains(symbol, "..") {
		return New(ErrCodeInvalidInput, "letter symbol cannot contain path components: %q", symbol)
	}

	return nil
}

// suffixRegex matches file name suffixes appended after "{macro}-{micro}".
var suffixRegex = regexp.MustCompile(`^[A-Za-z0-9._-]*$`)

// ValidateSuffix validates the output file name suffix.
// An empty suffix is valid.
func ValidateSuffix(suffix string) error {
	if !suffixRegex.MatchString(suffix) {
		return New(ErrCodeInvalidInput, "invalid file suffix: %q", suffix)
	}
	if strings.Contains(suffix, "..") {
		return New(ErrCodeInvalidInput, "file suffix cannot contain ..: %q", suffix)
	}
	return nil
}

// ValidatePath validates an output directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
