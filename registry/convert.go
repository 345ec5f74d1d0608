/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package registry

import (
	"fmt"
	"math"

	"github.com/sarthak-egenome/bloodpdf-parser/units"
)

// ToCanonical converts a value reported in unit into the parameter's
// canonical unit. Units of the canonical dimension go through the unit
// table; any other dimension needs one of the parameter's conversions.
func (r *Registry) ToCanonical(p *Parameter, value float64, unit string) (float64, error) {
	src, ok := r.units.Lookup(unit)
	if !ok {
		return 0, fmt.Errorf("%w: %q", units.ErrUnknownUnit, unit)
	}

	dst, ok := r.units.Lookup(p.CanonicalUnit)
	if !ok {
		return 0, fmt.Errorf("%w: %q", units.ErrUnknownUnit, p.CanonicalUnit)
	}

	if src.Dimension == dst.Dimension {
		return r.units.Convert(value, src.Symbol, dst.Symbol)
	}

	for _, c := range p.Conversions {
		via, ok := r.units.Lookup(c.From)
		if !ok || via.Dimension != src.Dimension {
			continue
		}

		rescaled, err := r.units.Convert(value, src.Symbol, via.Symbol)
		if err != nil {
			return 0, fmt.Errorf("failed to rescale %s to %s: %w", src.Symbol, via.Symbol, err)
		}

		return units.Round(rescaled * c.Factor), nil
	}

	return 0, fmt.Errorf("%w: %s has no factor from %s (%s) to %s (%s)",
		units.ErrIncompatibleDimension, p.ID, src.Symbol, src.Dimension, dst.Symbol, dst.Dimension)
}

// Round applies the parameter's output rounding, if it has one.
func (p *Parameter) Round(v float64) float64 {
	if p.Rounding == nil {
		return v
	}

	scale := math.Pow(10, float64(*p.Rounding))

	return math.Round(v*scale) / scale
}
