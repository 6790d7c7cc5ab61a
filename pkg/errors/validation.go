package errors

import (
	"strings"
	"unicode"
)

// ValidateSelector validates a decorator selector string for basic
// syntactic correctness. A selector is a dotted path such as "self.field"
// or "self.field.sub" identifying a sub-part of an instance or type.
//
// The validation rules are intentionally conservative:
//   - No empty selectors
//   - No control characters or whitespace
//   - No empty path segments (leading/trailing/double dots)
//   - Maximum length of 256 characters
//
// Whether the path actually resolves against a shape is a separate,
// merge-time concern; this check only rejects strings that could never
// form a valid path.
func ValidateSelector(selector string) error {
	if selector == "" {
		return New(ErrCodeInvalidSelector, "selector cannot be empty")
	}

	if len(selector) > 256 {
		return New(ErrCodeInvalidSelector, "selector too long (max 256 characters)")
	}

	for _, r := range selector {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSelector, "selector contains invalid characters")
		}
	}

	for _, seg := range strings.Split(selector, ".") {
		if seg == "" {
			return New(ErrCodeInvalidSelector, "selector contains an empty path segment: %q", selector)
		}
	}

	return nil
}

// ValidateTypeName validates a registered type name.
// Type names key the process-wide decorator registry, so they must be
// non-empty and free of control characters.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAnnotation, "type name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidAnnotation, "type name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAnnotation, "type name contains invalid control characters")
		}
	}

	return nil
}
