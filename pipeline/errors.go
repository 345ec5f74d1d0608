/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pipeline

import "errors"

var (
	// ErrInvalidNumericValue is returned by ParseValue for values that are
	// missing, empty or not a plain finite number.
	ErrInvalidNumericValue = errors.New("invalid numeric value")
	// ErrInvalidStrictness is returned by Resolve for levels outside 0..2.
	ErrInvalidStrictness = errors.New("strictness must be 0, 1 or 2")
	ErrInvalidEntry      = errors.New("invalid lab entry")
)
