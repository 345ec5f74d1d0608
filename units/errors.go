/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package units

import "errors"

var (
	// ErrUnitTableLoad wraps every problem found while loading a unit table.
	ErrUnitTableLoad = errors.New("failed to load unit table")
	// ErrUnknownUnit is returned when a symbol is absent from the unit table.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrIncompatibleDimension is returned for conversions across dimension classes.
	ErrIncompatibleDimension = errors.New("incompatible unit dimensions")
)
