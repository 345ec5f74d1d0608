/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sarthak-egenome/bloodpdf-parser/matcher"
	"github.com/sarthak-egenome/bloodpdf-parser/reference"
)

// RawLabEntry is one (label, value, unit) triple read off a report.
type RawLabEntry struct {
	Label string
	Value RawValue
	// Unit is nil when the report printed no unit.
	Unit *string
}

type rawLabEntryJSON struct {
	Label string          `json:"label"`
	Value json.RawMessage `json:"value"`
	Unit  *string         `json:"unit"`
}

// UnmarshalJSON accepts a string, number or null value. Other JSON values
// are kept as text so the entry fails on its own during resolution.
func (e *RawLabEntry) UnmarshalJSON(data []byte) error {
	var raw rawLabEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	e.Label = raw.Label
	e.Unit = raw.Unit

	value := bytes.TrimSpace(raw.Value)
	switch {
	case len(value) == 0 || bytes.Equal(value, []byte("null")):
		e.Value = Missing{}
	case value[0] == '"':
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
		e.Value = Text(s)
	default:
		e.Value = Text(value)
	}

	return nil
}

// MarshalJSON writes the entry in the form UnmarshalJSON reads.
func (e RawLabEntry) MarshalJSON() ([]byte, error) {
	out := struct {
		Label string  `json:"label"`
		Value *string `json:"value"`
		Unit  *string `json:"unit"`
	}{Label: e.Label, Unit: e.Unit}

	if t, ok := e.Value.(Text); ok {
		s := string(t)
		out.Value = &s
	}

	return json.Marshal(out)
}

// Reason explains why an entry could not be resolved.
type Reason string

// Unmatched reasons.
const (
	ReasonNoCandidate      Reason = "no_candidate_above_threshold"
	ReasonInvalidNumeric   Reason = "invalid_numeric_value"
	ReasonIncompatibleUnit Reason = "incompatible_unit"
)

// ResolvedEntry is an entry mapped to a parameter, with its value in the
// parameter's canonical unit.
type ResolvedEntry struct {
	RawLabel    string         `json:"raw_label"`
	ParameterID string         `json:"parameter_id"`
	DisplayName string         `json:"display_name"`
	Value       float64        `json:"value"`
	Unit        string         `json:"unit"`
	MatchTier   matcher.Tier   `json:"match_tier"`
	Confidence  float64        `json:"confidence"`
	UnitAssumed bool           `json:"unit_assumed,omitempty"`
	Flag        reference.Flag `json:"flag,omitempty"`
}

// UnmatchedEntry is an entry that could not be resolved.
type UnmatchedEntry struct {
	RawLabel string `json:"raw_label"`
	Reason   Reason `json:"reason"`
	Detail   string `json:"detail,omitempty"`
}

// Result is the outcome for the input entry at Index. Exactly one of
// Resolved and Unmatched is set.
type Result struct {
	Index     int             `json:"index"`
	Resolved  *ResolvedEntry  `json:"resolved,omitempty"`
	Unmatched *UnmatchedEntry `json:"unmatched,omitempty"`
}

// OK reports whether the entry was resolved.
func (r Result) OK() bool {
	return r.Resolved != nil
}
