package validation

import (
	"errors"
	"math"
)

// ValidateValue rejects NaN and infinities, which cannot be stored or
// compared meaningfully.
func ValidateValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be a finite number")
	}
	return nil
}
