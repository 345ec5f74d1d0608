/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package registry

import "errors"

var (
	// ErrRegistryLoad wraps every problem found while loading a registry.
	ErrRegistryLoad = errors.New("failed to load parameter registry")
	// ErrUnknownParameter is returned for an id that is not in the registry.
	ErrUnknownParameter = errors.New("unknown parameter")
)
