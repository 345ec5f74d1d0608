/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RawValue is the value cell of an extracted entry: either Text or Missing.
type RawValue interface {
	rawValue()
}

// Text is a value as it appeared on the report.
type Text string

// Missing marks an entry whose value cell was empty or null.
type Missing struct{}

func (Text) rawValue()    {}
func (Missing) rawValue() {}

func (t Text) String() string { return string(t) }

func (Missing) String() string { return "<missing>" }

// A plain decimal with an optional exponent. A comma is accepted as the
// decimal separator; qualifiers such as "<0.5" or ">90" are rejected.
var numberPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:[.,]\d+)?|[.,]\d+)(?:[eE][+-]?\d+)?$`)

// Thousands grouping, either western ("250,000") or Indian ("2,50,000"),
// with an optional decimal point.
var groupedPattern = regexp.MustCompile(`^[+-]?(?:[1-9]\d{0,2}(?:,\d{3})+|[1-9]\d?(?:,\d{2})+,\d{3})(?:\.\d+)?$`)

// A comma followed by exactly three digits that is not valid grouping, such
// as "0,500" or "1234,567", reads as either separator.
var ambiguousCommaPattern = regexp.MustCompile(`,\d{3}(?:[eE]|$)`)

// ParseValue converts a raw value into a finite float.
func ParseValue(v RawValue) (float64, error) {
	text, ok := v.(Text)
	if !ok {
		return 0, fmt.Errorf("%w: value is missing", ErrInvalidNumericValue)
	}

	s := strings.TrimSpace(string(text))
	if s == "" {
		return 0, fmt.Errorf("%w: value is empty", ErrInvalidNumericValue)
	}

	switch {
	case groupedPattern.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case !numberPattern.MatchString(s):
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumericValue, string(text))
	case ambiguousCommaPattern.MatchString(s):
		return 0, fmt.Errorf("%w: %q has an ambiguous separator", ErrInvalidNumericValue, string(text))
	default:
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidNumericValue, string(text), err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidNumericValue, string(text))
	}

	return f, nil
}
