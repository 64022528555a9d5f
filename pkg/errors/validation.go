package errors

import (
	"strings"
	"unicode"
)

// MaxSequenceLength bounds the inputs accepted by the API server.
const MaxSequenceLength = 100_000

// ValidateName validates a molecule name for safety.
// Names end up in file names and cache keys, so path characters are rejected.
func ValidateName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "name contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateSequence checks that a sequence is non-empty, printable and not
// absurdly long. Letters are not restricted to ACGU: modified bases and IUPAC
// codes are passed through to the renderer as-is.
func ValidateSequence(seq string) error {
	if seq == "" {
		return New(ErrCodeInvalidSequence, "sequence cannot be empty")
	}
	if len(seq) > MaxSequenceLength {
		return New(ErrCodeInvalidSequence, "sequence too long (max %d nucleotides)", MaxSequenceLength)
	}
	for i, r := range seq {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return New(ErrCodeInvalidSequence, "invalid nucleotide %q at position %d", r, i)
		}
	}
	return nil
}

// ValidateDotBracket checks the alphabet of a dot-bracket string.
// Balance is checked by the pair matcher, which reports the offending index.
func ValidateDotBracket(db string) error {
	if db == "" {
		return New(ErrCodeInvalidStructure, "structure cannot be empty")
	}
	if len(db) > MaxSequenceLength {
		return New(ErrCodeInvalidStructure, "structure too long (max %d characters)", MaxSequenceLength)
	}
	for i, r := range db {
		switch r {
		case '.', '(', ')':
		default:
			return New(ErrCodeInvalidStructure, "invalid character %q at position %d", r, i)
		}
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
