/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package textnorm puts report labels, synonyms and unit symbols on a common
// textual footing before they are compared.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Units written inside a label, e.g. "Glucose (mg/dL)" or "WBC 10^3/uL".
var unitResidue = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:x\s*)?10\s*\^\s*\d+\s*/\s*(?:ul|l|cumm|mm3)\b`),
	regexp.MustCompile(`\b(?:mg|g|gm|ng|pg|ug|mcg|mmol|umol|nmol|pmol|mol|meq|miu|uiu|iu|mu|u|cells|fl)\s*/\s*(?:dl|l|ml|ul|cumm|mm3|hr|h)\b`),
	regexp.MustCompile(`\bml\s*/\s*min(?:\s*/\s*1\.73\s*m2)?`),
	regexp.MustCompile(`\bmm\s*/\s*(?:1st\s*)?(?:hour|hr|h)\b`),
	regexp.MustCompile(`%`),
}

var stopwords = map[string]struct{}{
	"of":   {},
	"the":  {},
	"in":   {},
	"on":   {},
	"by":   {},
	"and":  {},
	"for":  {},
	"an":   {},
	"to":   {},
	"at":   {},
	"with": {},
	"as":   {},
	"is":   {},
}

// Descriptors that do not change which analyte a label names.
var noiseTokens = map[string]struct{}{
	"serum":      {},
	"plasma":     {},
	"blood":      {},
	"whole":      {},
	"total":      {},
	"level":      {},
	"levels":     {},
	"test":       {},
	"result":     {},
	"results":    {},
	"value":      {},
	"calculated": {},
	"measured":   {},
}

// Normalize lowercases and folds text, strips units written into the label,
// replaces punctuation with spaces and drops stopwords. Text inside
// parentheses is kept. The function is total and idempotent.
func Normalize(text string) string {
	s := fold(liftSuperscripts(text))
	s = strings.ToLower(s)
	s = collapse(s)

	for _, re := range unitResidue {
		s = re.ReplaceAllString(s, " ")
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, ok := stopwords[f]; ok {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}

// Tokens splits a normalized string into its tokens.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// StripNoise removes descriptor tokens such as "serum" or "total". When every
// token is noise the input is returned unchanged.
func StripNoise(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := noiseTokens[t]; ok {
			continue
		}
		out = append(out, t)
	}

	if len(out) == 0 {
		return append([]string(nil), tokens...)
	}

	return out
}

// Compact joins runs of single-character tokens, so a dotted abbreviation
// like "s g p t" compares equal to "sgpt".
func Compact(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			out = append(out, run.String())
			run.Reset()
		}
	}

	for _, t := range tokens {
		if len([]rune(t)) == 1 {
			run.WriteString(t)
			continue
		}
		flush()
		out = append(out, t)
	}
	flush()

	return out
}

// MatchKey is the descriptor-free, compacted form of a normalized string.
func MatchKey(normalized string) string {
	return strings.Join(Compact(StripNoise(Tokens(normalized))), " ")
}

func fold(text string) string {
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\ufeff':
			return ' '
		case unicode.IsControl(r):
			return ' '
		}
		return r
	}, text)

	folded, _, err := transform.String(foldChain, text)
	if err != nil {
		folded = text
	}

	// NFKD maps the micro sign onto the Greek letter; both spell "u" in units.
	return strings.NewReplacer("\u03bc", "u", "\u00b5", "u").Replace(folded)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
