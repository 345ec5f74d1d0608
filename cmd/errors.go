/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired   = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errInputRequired         = errors.New("input file is required (use - for stdin)")
	errLabelRequired         = errors.New("at least one label is required")
	errConvertUsage          = errors.New("usage: convert VALUE FROM TO, or convert --parameter ID VALUE FROM")
	errInvalidStrictness     = errors.New("strictness must be 0, 1 or 2")
	errInvalidWorkers        = errors.New("workers must not be negative")
	errInvalidAge            = errors.New("age must not be negative")
)
