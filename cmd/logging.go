/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "github.com/sarthak-egenome/bloodpdf-parser/logging"

var appLogger = logging.Logger(logging.SourceApp)
var registryLogger = logging.Logger(logging.SourceRegistry)
