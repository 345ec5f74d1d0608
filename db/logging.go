/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "github.com/sarthak-egenome/bloodpdf-parser/logging"

var logger = logging.Logger(logging.SourceDB)

// GooseLogger routes migration output through the db logger.
var GooseLogger = logging.StdLogger(logging.SourceDB)
