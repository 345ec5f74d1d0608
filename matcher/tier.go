/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package matcher

import (
	"errors"
	"fmt"
)

// Tier is the method that produced a candidate.
type Tier int

// Tiers in the order they are tried.
const (
	TierExact Tier = iota
	TierSynonymExact
	TierFuzzy
)

var errUnknownTier = errors.New("unknown match tier")

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSynonymExact:
		return "synonym_exact"
	case TierFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	switch t {
	case TierExact, TierSynonymExact, TierFuzzy:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownTier, int(t))
	}
}

// UnmarshalText decodes a tier name written by MarshalText.
func (t *Tier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "exact":
		*t = TierExact
	case "synonym_exact":
		*t = TierSynonymExact
	case "fuzzy":
		*t = TierFuzzy
	default:
		return fmt.Errorf("%w: %q", errUnknownTier, string(b))
	}

	return nil
}

// Strictness selects the minimum fuzzy score a match needs.
type Strictness int

// Strictness levels accepted by Match.
const (
	StrictnessLoose   Strictness = 0
	StrictnessDefault Strictness = 1
	StrictnessStrict  Strictness = 2
)

// Threshold returns the minimum accepted fuzzy score. Levels outside 0..2
// use the default threshold.
func (s Strictness) Threshold() float64 {
	switch s {
	case StrictnessLoose:
		return 0.50
	case StrictnessStrict:
		return 0.85
	default:
		return 0.70
	}
}

// Valid reports whether s is one of the defined levels.
func (s Strictness) Valid() bool {
	return s >= StrictnessLoose && s <= StrictnessStrict
}
