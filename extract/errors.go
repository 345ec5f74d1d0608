/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import "errors"

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidDocument  = errors.New("invalid entries document")
	ErrMalformedPDF     = errors.New("malformed PDF")
	ErrUnsupportedInput = errors.New("unsupported input format: only .json, .pdf and .txt are allowed")
)
