/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sarthak-egenome/bloodpdf-parser/pipeline"
)

const (
	// MaxPDFSize is the maximum file size we'll attempt to process (50MB)
	MaxPDFSize = 50 * 1024 * 1024
)

// Gaps between text runs, relative to the font size, that separate words
// and table cells.
const (
	wordGap = 0.15
	cellGap = 1.5
)

// ReadPDF extracts entries from every page of a text-based PDF. Each page
// is read both as a table and as free text, and repeated entries are
// dropped.
//
// Note: scanned documents (image-based PDFs) yield nothing since OCR is
// not performed.
func ReadPDF(path string) (_ []pipeline.RawLabEntry, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}
	if info.Size() > MaxPDFSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), MaxPDFSize)
	}

	// The decoder panics on some malformed xref tables and streams
	defer recoverMalformed(path, &err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %w", ErrMalformedPDF, path, err)
	}
	defer f.Close()

	var entries []pipeline.RawLabEntry
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: error extracting text from page %d: %w", ErrMalformedPDF, i, err)
		}

		cells := pageCells(rows)

		lines := make([]string, 0, len(cells))
		for _, row := range cells {
			lines = append(lines, strings.Join(row, " "))
		}

		entries = append(entries, ParseTable(cells)...)
		entries = append(entries, ParseText(strings.Join(lines, "\n"))...)
	}

	unique := Dedupe(entries)
	logger.Debug("Extracted PDF entries", "path", path, "pages", r.NumPage(), "entries", len(unique))

	return unique, nil
}

// recoverMalformed turns a panic raised while decoding path into an
// ErrMalformedPDF error. It must be deferred directly.
func recoverMalformed(path string, err *error) {
	if r := recover(); r != nil {
		logger.Warn("PDF decoder panicked", "path", path, "panic", r)
		*err = fmt.Errorf("%w: %s: %v", ErrMalformedPDF, path, r)
	}
}

// pageCells rebuilds each row's cells from positioned text runs. Runs close
// together join into words, and wide gaps start a new cell.
func pageCells(rows pdf.Rows) [][]string {
	out := make([][]string, 0, len(rows))

	for _, row := range rows {
		texts := append([]pdf.Text(nil), row.Content...)
		sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

		var (
			cells   []string
			current strings.Builder
			end     float64
		)
		for i, t := range texts {
			if i > 0 {
				gap := t.X - end
				switch {
				case gap > cellGap*t.FontSize:
					cells = append(cells, CleanText(current.String()))
					current.Reset()
				case gap > wordGap*t.FontSize:
					current.WriteByte(' ')
				}
			}

			current.WriteString(t.S)
			end = t.X + t.W
		}
		cells = append(cells, CleanText(current.String()))

		out = append(out, cells)
	}

	return out
}
