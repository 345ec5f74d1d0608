/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package extract turns report text, PDF pages and JSON documents into raw
// lab entries for the pipeline.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sarthak-egenome/bloodpdf-parser/pipeline"
)

const micro = `[u\x{00B5}\x{03BC}]`

// A number that may carry thousands grouping ("2,50,000") or a decimal
// comma ("1,1"). ParseValue decides which.
const number = `\d+(?:,\d+)*(?:\.\d+)?`

// A number followed by a unit printed on lab reports.
var inlineUnitPattern = regexp.MustCompile(`(?i)(-?` + number + `)\s*(` +
	`%|mg/dl|mg/l|gm/dl|g/dl|g/l|pg/ml|ng/ml|ng/dl|` + micro + `g/dl|` + micro + `g/l|` +
	micro + `iu/ml|miu/ml|miu/l|iu/l|u/l|mmol/l|` + micro + `mol/l|nmol/l|pmol/l|meq/l|` +
	`ml/min/1\.73\s?m(?:2|\x{00B2})|10\^3/` + micro + `l|10\^6/` + micro + `l|10\^9/l|10\^12/l|` +
	`lakhs?/cumm|cells/cumm|/cumm|cells/` + micro + `l|/` + micro + `l|fl|pg|ratio|mm/1st hour|mm/hr?` +
	`)(?:\s|$)`)

var (
	plainNumberPattern = regexp.MustCompile(`^` + number + `$`)
	anyNumberPattern   = regexp.MustCompile(`-?` + number)
	fieldPattern       = regexp.MustCompile(`\S+`)
)

// Standalone numbers outside this range are more likely dates, page
// numbers or reference bounds than results.
const (
	minStandaloneValue = 0.1
	maxStandaloneValue = 1000
)

// Words that mark a line as commentary rather than a parameter name.
var proseWords = []string{
	"comment", "interpretation", "range", "goal", "means", "risk", "treatment",
	"condition", "disease", "assessment", "management", "therapy", "pregnancy",
	"patients", "accuracy", "considered", "particularly", "associated", "result",
	"tolerance", "confirmed", "note", "method", "page", "report", "sample",
}

// CleanText replaces non-breaking and zero-width spaces, trims, and
// collapses whitespace runs.
func CleanText(s string) string {
	s = strings.NewReplacer("\u00a0", " ", "\u200b", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

type valueMatch struct {
	value string
	unit  string
	start int
}

// FindValueAndUnit finds the result in a line or cell. A number followed by
// a known unit wins; otherwise the first plausible standalone number is
// taken with no unit.
func FindValueAndUnit(s string) (value, unit string, ok bool) {
	m, ok := findValue(CleanText(s))
	return m.value, m.unit, ok
}

func findValue(s string) (valueMatch, bool) {
	if loc := inlineUnitPattern.FindStringSubmatchIndex(s); loc != nil {
		return valueMatch{value: s[loc[2]:loc[3]], unit: s[loc[4]:loc[5]], start: loc[2]}, true
	}

	for _, loc := range fieldPattern.FindAllStringIndex(s, -1) {
		field := strings.TrimRight(s[loc[0]:loc[1]], ",;:")
		if !plainNumberPattern.MatchString(field) {
			continue
		}

		v, err := pipeline.ParseValue(pipeline.Text(field))
		if err != nil || v < minStandaloneValue || v > maxStandaloneValue {
			continue
		}

		return valueMatch{value: field, start: loc[0]}, true
	}

	return valueMatch{}, false
}

// ParseText scans report text line by line. A line with a result takes its
// label from the text before the number, or else from one of the two lines
// above it. Commentary lines are skipped.
func ParseText(text string) []pipeline.RawLabEntry {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = CleanText(lines[i])
	}

	var entries []pipeline.RawLabEntry
	for i, line := range lines {
		if line == "" {
			continue
		}

		m, ok := findValue(line)
		if !ok {
			continue
		}

		label := strings.TrimRight(strings.TrimSpace(line[:m.start]), " :-")
		if isLabel(label) {
			if isProse(label) {
				continue
			}
		} else {
			label = ""
			for j := i - 1; j >= 0 && j >= i-2; j-- {
				if isLabel(lines[j]) && len(lines[j]) < 100 && !isProse(lines[j]) {
					label = lines[j]
					break
				}
			}
		}
		if label == "" {
			continue
		}

		entries = append(entries, newEntry(label, m.value, m.unit))
	}

	return entries
}

// ParseTable reads rows of cells whose header, within the first five rows,
// names the test, result and unit columns. Tables without such a header
// yield nothing.
func ParseTable(rows [][]string) []pipeline.RawLabEntry {
	header, testCol, resultCol, unitCol := findHeader(rows)
	if header < 0 {
		return nil
	}

	var entries []pipeline.RawLabEntry
	for _, row := range rows[header+1:] {
		label := CleanText(cell(row, testCol))
		if label == "" {
			continue
		}

		result := CleanText(cell(row, resultCol))

		value, unit, ok := FindValueAndUnit(result)
		if !ok {
			if loc := anyNumberPattern.FindStringIndex(result); loc != nil {
				value, ok = result[loc[0]:loc[1]], true
			}
		}
		if unit == "" {
			unit = CleanText(cell(row, unitCol))
		}

		entry := newEntry(label, value, unit)
		if !ok {
			entry.Value = pipeline.Missing{}
		}
		entries = append(entries, entry)
	}

	return entries
}

func findHeader(rows [][]string) (header, testCol, resultCol, unitCol int) {
	for i, row := range rows[:min(len(rows), 5)] {
		testCol, resultCol, unitCol = -1, -1, -1

		for j, c := range row {
			c = strings.ToLower(c)
			if testCol < 0 && (strings.Contains(c, "test") || strings.Contains(c, "investigation") || strings.Contains(c, "parameter")) {
				testCol = j
			}
			if resultCol < 0 && (strings.Contains(c, "result") || strings.Contains(c, "value")) {
				resultCol = j
			}
			if unitCol < 0 && strings.Contains(c, "unit") {
				unitCol = j
			}
		}

		if testCol >= 0 && resultCol >= 0 && unitCol >= 0 {
			return i, testCol, resultCol, unitCol
		}
	}

	return -1, -1, -1, -1
}

// Dedupe drops repeated entries with the same label, value and unit,
// ignoring case in the label and unit. The first occurrence is kept.
func Dedupe(entries []pipeline.RawLabEntry) []pipeline.RawLabEntry {
	type key struct{ label, value, unit string }

	seen := make(map[key]struct{}, len(entries))
	out := make([]pipeline.RawLabEntry, 0, len(entries))

	for _, e := range entries {
		k := key{label: strings.ToLower(e.Label)}
		if t, ok := e.Value.(pipeline.Text); ok {
			k.value = string(t)
		}
		if e.Unit != nil {
			k.unit = strings.ToLower(*e.Unit)
		}

		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}

	return out
}

func newEntry(label, value, unit string) pipeline.RawLabEntry {
	e := pipeline.RawLabEntry{Label: label, Value: pipeline.Text(value)}
	if unit != "" {
		e.Unit = &unit
	}
	return e
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isLabel(s string) bool {
	return len(s) > 2 && strings.ContainsFunc(s, unicode.IsLetter)
}

func isProse(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range proseWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
