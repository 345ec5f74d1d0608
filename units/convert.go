/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package units

import (
	"fmt"
	"math"
)

// Precision is the number of significant decimal digits kept by Round.
const Precision = 4

const maxDecimalPlaces = 15

// Convert rescales value from one unit to another of the same dimension.
// Results are passed through Round so repeated conversions stay stable.
func (t *Table) Convert(value float64, from, to string) (float64, error) {
	src, ok := t.Lookup(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}

	dst, ok := t.Lookup(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}

	if src.Dimension != dst.Dimension {
		return 0, fmt.Errorf("%w: %s is %s, %s is %s",
			ErrIncompatibleDimension, src.Symbol, src.Dimension, dst.Symbol, dst.Dimension)
	}

	if src.Symbol == dst.Symbol {
		return value, nil
	}

	base := value*src.Factor + src.Offset

	return Round((base - dst.Offset) / dst.Factor), nil
}

// Round keeps four decimal places for magnitudes of at least one, and four
// significant digits below that, so small concentrations are not flushed to
// zero.
func Round(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	places := Precision
	if a := math.Abs(v); a < 1 {
		places = Precision - 1 - int(math.Floor(math.Log10(a)))
	}
	if places > maxDecimalPlaces {
		places = maxDecimalPlaces
	}

	scale := math.Pow(10, float64(places))

	return math.Round(v*scale) / scale
}
