package errors

import (
	"math"
	"regexp"
)

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects values that are not finite and strictly positive.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative rejects values that are not finite or below zero.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", field, v)
	}
	return nil
}

// ValidateRange rejects values outside the closed interval [lo, hi].
func ValidateRange(field string, v, lo, hi float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidConfig, "%s must be in [%v, %v], got %v", field, lo, hi, v)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a CSS hex color used for strokes and backgrounds.
// The empty string and "none" are accepted and mean "no fill".
func ValidateColor(field, color string) error {
	if color == "" || color == "none" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "%s must be a hex color like #1a1a1a, got %q", field, color)
	}
	return nil
}
