/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarthak-egenome/bloodpdf-parser/pipeline"
)

// MaxTextSize bounds JSON and text inputs read into memory.
const MaxTextSize = 10 * 1024 * 1024

// ReadEntries decodes a JSON array of {"label", "value", "unit"} objects.
func ReadEntries(r io.Reader) ([]pipeline.RawLabEntry, error) {
	dec := json.NewDecoder(io.LimitReader(r, MaxTextSize))

	var entries []pipeline.RawLabEntry
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after entries", ErrInvalidDocument)
	}

	return entries, nil
}

// ReadFile picks a reader by extension: .json documents are decoded as
// entries, .pdf files go through ReadPDF, and .txt files are parsed as
// report text.
func ReadFile(path string) ([]pipeline.RawLabEntry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ReadPDF(path)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open entries file: %w", err)
		}
		defer f.Close()

		return ReadEntries(f)
	case ".txt", ".text":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open report text: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, MaxTextSize+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read report text: %w", err)
		}
		if len(data) > MaxTextSize {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, MaxTextSize)
		}

		return Dedupe(ParseText(string(data))), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}
}
