/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package reference holds reference ranges per parameter, age band and
// gender, and classifies resolved values against them.
package reference

import (
	"fmt"
	"strings"
)

// Gender represents biological sex for medical reference ranges
type Gender string

// Gender values represent supported biological-sex categories.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderUnisex Gender = "Unisex" // For ranges that don't vary by gender
)

// ParseGender accepts the spellings found on reports: "M", "male", "F",
// "Female" and so on. An empty string is Unisex.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return GenderMale, nil
	case "f", "female":
		return GenderFemale, nil
	case "", "u", "unisex":
		return GenderUnisex, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
}

// AgeRange represents age-based categorization for reference ranges
type AgeRange string

// AgeRange values represent supported age groups for lab ranges.
const (
	AgePediatric AgeRange = "Pediatric" // 0-17
	AgeAdult     AgeRange = "Adult"     // 18-49
	AgeMiddleAge AgeRange = "MiddleAge" // 50-64
	AgeSenior    AgeRange = "Senior"    // 65+
	AgeAll       AgeRange = "All"       // For ranges that don't vary by age
)

// AgeRangeFor returns the age band for an age in years. A negative age
// means unknown and defaults to adult.
func AgeRangeFor(age int) AgeRange {
	switch {
	case age < 0:
		return AgeAdult
	case age <= 17:
		return AgePediatric
	case age <= 49:
		return AgeAdult
	case age <= 64:
		return AgeMiddleAge
	default:
		return AgeSenior
	}
}

// Flag is the classification of a value against its reference range.
type Flag string

// Flag values. An empty Flag means no range applies.
const (
	FlagLow    Flag = "low"
	FlagNormal Flag = "normal"
	FlagHigh   Flag = "high"
)

// Range is a reference range for one parameter, in its canonical unit.
type Range struct {
	ParameterID  string
	AgeRange     AgeRange
	Gender       Gender
	ReferenceMin *float64
	ReferenceMax *float64
	OptimalMin   *float64
	OptimalMax   *float64
}

// Classify reports whether v falls below, within or above the reference
// bounds. Missing bounds are open.
func (r Range) Classify(v float64) Flag {
	if r.ReferenceMin == nil && r.ReferenceMax == nil {
		return ""
	}

	switch {
	case r.ReferenceMin != nil && v < *r.ReferenceMin:
		return FlagLow
	case r.ReferenceMax != nil && v > *r.ReferenceMax:
		return FlagHigh
	default:
		return FlagNormal
	}
}

// DisplayRange returns the range to display based on the logic:
// - If both optimal min/max missing: use reference only
// - If only optimal max set: optimal min = reference min
// - If only optimal min set: optimal max = reference max
func (r Range) DisplayRange() (refMin, refMax, optMin, optMax *float64, hasOptimal bool) {
	refMin = r.ReferenceMin
	refMax = r.ReferenceMax

	if r.OptimalMin == nil && r.OptimalMax == nil {
		return refMin, refMax, nil, nil, false
	}

	optMin = r.OptimalMin
	if optMin == nil {
		optMin = r.ReferenceMin
	}

	optMax = r.OptimalMax
	if optMax == nil {
		optMax = r.ReferenceMax
	}

	return refMin, refMax, optMin, optMax, true
}

type key struct {
	id     string
	age    AgeRange
	gender Gender
}

// Book indexes ranges for lookup. It is read-only after NewBook.
type Book struct {
	ranges map[key]Range
	order  []Range
}

// NewBook validates and indexes range definitions.
func NewBook(defs []Range) (*Book, error) {
	b := &Book{ranges: make(map[key]Range, len(defs))}

	for _, def := range defs {
		if def.ParameterID == "" {
			return nil, fmt.Errorf("%w: range without parameter id", ErrInvalidRange)
		}
		if def.AgeRange == "" || def.Gender == "" {
			return nil, fmt.Errorf("%w: %s needs an age range and gender", ErrInvalidRange, def.ParameterID)
		}
		if def.ReferenceMin != nil && def.ReferenceMax != nil && *def.ReferenceMin > *def.ReferenceMax {
			return nil, fmt.Errorf("%w: %s/%s/%s minimum exceeds maximum",
				ErrInvalidRange, def.ParameterID, def.AgeRange, def.Gender)
		}

		k := key{id: def.ParameterID, age: def.AgeRange, gender: def.Gender}
		if _, exists := b.ranges[k]; exists {
			return nil, fmt.Errorf("%w: duplicate range %s/%s/%s",
				ErrInvalidRange, def.ParameterID, def.AgeRange, def.Gender)
		}

		b.ranges[k] = def
		b.order = append(b.order, def)
	}

	return b, nil
}

// Default returns the book of built-in ranges.
func Default() *Book {
	b, err := NewBook(Definitions())
	if err != nil {
		panic(fmt.Sprintf("built-in reference ranges are invalid: %v", err))
	}

	return b
}

// Lookup finds the range for a parameter. Gender-specific ranges win over
// unisex ones, and ranges for the age band win over all-ages ranges.
func (b *Book) Lookup(parameterID string, age AgeRange, gender Gender) (Range, bool) {
	for _, a := range []AgeRange{age, AgeAll} {
		for _, g := range []Gender{gender, GenderUnisex} {
			if r, ok := b.ranges[key{id: parameterID, age: a, gender: g}]; ok {
				return r, true
			}
		}
	}

	return Range{}, false
}

// Ranges returns every range in definition order.
func (b *Book) Ranges() []Range {
	return append([]Range(nil), b.order...)
}

// Profile is the patient context used to select a range.
type Profile struct {
	Age    int
	Gender Gender
}

// Classify looks up the range for the profile and classifies v. The flag
// is empty when no range is defined.
func (b *Book) Classify(parameterID string, v float64, p Profile) Flag {
	r, ok := b.Lookup(parameterID, AgeRangeFor(p.Age), p.Gender)
	if !ok {
		return ""
	}

	return r.Classify(v)
}
