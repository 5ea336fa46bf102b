package errors

import (
	"math"
	"unicode"
)

// maxLabelLength bounds labels read from external sources.
const maxLabelLength = 256

// ValidateLabel validates a column label read from an external source.
//
// Labels are drawn verbatim into a fixed-width grid, so anything that moves
// the cursor breaks the layout:
//   - No empty labels
//   - No control characters (newlines, tabs, escapes)
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label %q contains control characters", label)
		}
	}

	return nil
}

// ValidateValue rejects NaN and infinite values, which have no position on
// a linear axis, and values outside the single-precision range the axis is
// printed in.
func ValidateValue(label string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidValue, "value for %q is not finite: %v", label, v)
	}
	if math.Abs(v) > math.MaxFloat32 {
		return New(ErrCodeInvalidValue, "value for %q is out of range: %v (max magnitude %v)", label, v, float32(math.MaxFloat32))
	}
	return nil
}
