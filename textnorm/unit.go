/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package textnorm

import (
	"regexp"
	"strings"
)

var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

var (
	reSlashSpace  = regexp.MustCompile(`\s*/\s*`)
	reCaretSpace  = regexp.MustCompile(`\s*\^\s*`)
	reTimesPrefix = regexp.MustCompile(`^(?:x|\*)\s*(10\^)`)
	reScientific  = regexp.MustCompile(`^10e(\d+)`)
)

var unitPartAliases = map[string]string{
	"cumm": "ul",
	"cmm":  "ul",
	"mm3":  "ul",
	"mcl":  "ul",
	"mcg":  "ug",
	"gm":   "g",
	"hour": "h",
	"hr":   "h",
	"hrs":  "h",
}

// NormalizeUnit reduces a unit symbol to the spelling used for unit table
// lookups: "mg/dL", "mg per dl" and "MG / DL" all become "mg/dl", and
// "×10³/μL" becomes "10^3/ul".
func NormalizeUnit(symbol string) string {
	s := liftSuperscripts(symbol)
	s = fold(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "×", "x")
	s = collapse(s)

	s = strings.ReplaceAll(" "+s+" ", " per ", "/")
	s = strings.TrimSpace(s)
	s = reSlashSpace.ReplaceAllString(s, "/")
	s = reCaretSpace.ReplaceAllString(s, "^")
	s = reTimesPrefix.ReplaceAllString(s, "$1")
	s = reScientific.ReplaceAllString(s, "10^$1")

	parts := strings.Split(s, "/")
	for i, p := range parts {
		p = strings.Join(strings.Fields(p), "")
		if alias, ok := unitPartAliases[p]; ok {
			p = alias
		}
		parts[i] = p
	}

	return strings.Join(parts, "/")
}

func liftSuperscripts(s string) string {
	var b strings.Builder
	inSuper := false

	for _, r := range s {
		digit, ok := superscripts[r]
		if !ok {
			inSuper = false
			b.WriteRune(r)
			continue
		}
		if !inSuper {
			b.WriteByte('^')
			inSuper = true
		}
		b.WriteRune(digit)
	}

	return b.String()
}
