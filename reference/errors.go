/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reference

import "errors"

var (
	// ErrInvalidGender is returned by ParseGender for unrecognized input.
	ErrInvalidGender = errors.New("gender must be one of: male, female, unisex")
	// ErrInvalidRange is returned by NewBook for malformed definitions.
	ErrInvalidRange = errors.New("invalid reference range")
)
