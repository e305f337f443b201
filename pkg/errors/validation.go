package errors

import (
	"math"
	"regexp"
	"strings"
)

// ValidateFontSize validates a font size in points.
// Zero is rejected; callers use explicit defaults rather than omission.
func ValidateFontSize(name string, size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return New(ErrCodeInvalidStyle, "%s must be a positive number, got %v", name, size)
	}
	if size > 512 {
		return New(ErrCodeInvalidStyle, "%s too large (max 512)", name)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color string such as "#ff8800".
func ValidateColor(c string) error {
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidStyle, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// ValidateLabelText validates user supplied label text for safe embedding
// in SVG output.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 128 characters
//   - No control characters
//   - No markup delimiters
func ValidateLabelText(text string) error {
	if len(text) > 128 {
		return New(ErrCodeInvalidStyle, "label text too long (max 128 characters)")
	}
	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			return New(ErrCodeInvalidStyle, "label text contains control characters")
		}
	}
	if strings.ContainsAny(text, "<>") {
		return New(ErrCodeInvalidStyle, "label text cannot contain markup characters")
	}
	return nil
}
