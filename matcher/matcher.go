/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package matcher maps raw report labels onto canonical parameters.
//
// Matching runs in tiers and stops at the first that produces a winner:
// an exact hit on a normalized synonym, a hit after dropping descriptor
// tokens, and finally a fuzzy scan over every synonym in the registry.
package matcher

import (
	"math"
	"regexp"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/sarthak-egenome/bloodpdf-parser/registry"
	"github.com/sarthak-egenome/bloodpdf-parser/textnorm"
)

// Scores assigned to the non-fuzzy tiers.
const (
	ExactScore        = 1.0
	SynonymExactScore = 0.9
)

// Candidates whose scores are this close to the best one are tie-broken.
const tieWindow = 0.01

// Tokens at least this similar count as shared, so "creatinin" overlaps
// "creatinine".
const tokenMatch = 0.8

// The first parenthesized part of a label, as in "Sodium (Na)".
var parenthetical = regexp.MustCompile(`\(([^()]*)\)`)

// Candidate is a scored parameter for a raw label.
type Candidate struct {
	ParameterID string  `json:"parameter_id"`
	Score       float64 `json:"score"`
	Tier        Tier    `json:"tier"`
}

type synonym struct {
	text   string
	tokens []string
	runes  int
}

type parameter struct {
	id            string
	displayTokens int
	synonyms      []synonym
}

// Matcher holds the registry and its precomputed synonym tokens. It is
// read-only after New and safe for concurrent use.
type Matcher struct {
	reg    *registry.Registry
	params []parameter
	byID   map[string]int
}

// New prepares a matcher over reg.
func New(reg *registry.Registry) *Matcher {
	all := reg.AllCandidates()

	m := &Matcher{
		reg:    reg,
		params: make([]parameter, 0, len(all)),
		byID:   make(map[string]int, len(all)),
	}

	for _, p := range all {
		entry := parameter{
			id:            p.ID,
			displayTokens: len(textnorm.Tokens(textnorm.Normalize(p.DisplayName))),
			synonyms:      make([]synonym, 0, len(p.Synonyms)),
		}
		for _, s := range p.Synonyms {
			entry.synonyms = append(entry.synonyms, newSynonym(s))
		}

		m.byID[p.ID] = len(m.params)
		m.params = append(m.params, entry)
	}

	return m
}

// Registry returns the registry the matcher was built from.
func (m *Matcher) Registry() *registry.Registry {
	return m.reg
}

// Match returns the winning candidate for rawLabel, or false when no
// candidate clears the strictness threshold.
func (m *Matcher) Match(rawLabel string, strictness Strictness) (Candidate, bool) {
	normalized := textnorm.Normalize(rawLabel)
	if normalized == "" {
		return Candidate{}, false
	}

	if id, ok := m.reg.ExactIndex(normalized); ok {
		return Candidate{ParameterID: id, Score: ExactScore, Tier: TierExact}, true
	}

	rawTokens := len(textnorm.Tokens(normalized))

	if ids := m.reg.KeyIndex(textnorm.MatchKey(normalized)); len(ids) > 0 {
		cands := make([]Candidate, 0, len(ids))
		for _, id := range ids {
			cands = append(cands, Candidate{ParameterID: id, Score: SynonymExactScore, Tier: TierSynonymExact})
		}

		return m.pick(cands, rawTokens), true
	}

	threshold := strictness.Threshold()

	var accepted []Candidate
	for _, c := range m.score(rawLabel, normalized) {
		if c.Score >= threshold {
			accepted = append(accepted, c)
		}
	}

	if len(accepted) == 0 {
		return Candidate{}, false
	}

	return m.pick(accepted, rawTokens), true
}

// Rank scores rawLabel against every parameter with the fuzzy tier and
// returns the candidates best first, with the tie-break winner leading.
func (m *Matcher) Rank(rawLabel string) []Candidate {
	normalized := textnorm.Normalize(rawLabel)
	if normalized == "" {
		return nil
	}

	cands := m.score(rawLabel, normalized)
	if len(cands) == 0 {
		return nil
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].ParameterID < cands[j].ParameterID
	})

	winner := m.pick(cands, len(textnorm.Tokens(normalized)))
	for i, c := range cands {
		if c.ParameterID == winner.ParameterID {
			copy(cands[1:i+1], cands[:i])
			cands[0] = winner
			break
		}
	}

	return cands
}

// score returns, for each parameter, its best fuzzy score against the
// normalized label. A label written as "name (abbreviation)" also scores
// the weaker of its two parts, so both must name the same parameter.
func (m *Matcher) score(rawLabel, normalized string) []Candidate {
	raw := newSynonym(normalized)
	outer, inner, split := splitParenthetical(rawLabel)

	out := make([]Candidate, 0, len(m.params))
	for _, p := range m.params {
		best := p.bestSimilarity(raw)
		if split {
			if v := min(p.bestSimilarity(outer), p.bestSimilarity(inner)); v > best {
				best = v
			}
		}
		out = append(out, Candidate{ParameterID: p.id, Score: best, Tier: TierFuzzy})
	}

	return out
}

func (p parameter) bestSimilarity(label synonym) float64 {
	best := 0.0
	for _, s := range p.synonyms {
		if v := similarity(label, s); v > best {
			best = v
		}
	}
	return best
}

// splitParenthetical separates the first parenthesized part of rawLabel
// from the rest. It reports false when either side normalizes to nothing,
// as with a unit in parentheses.
func splitParenthetical(rawLabel string) (outer, inner synonym, ok bool) {
	loc := parenthetical.FindStringSubmatchIndex(rawLabel)
	if loc == nil {
		return synonym{}, synonym{}, false
	}

	o := textnorm.Normalize(rawLabel[:loc[0]] + " " + rawLabel[loc[1]:])
	i := textnorm.Normalize(rawLabel[loc[2]:loc[3]])
	if o == "" || i == "" {
		return synonym{}, synonym{}, false
	}

	return newSynonym(o), newSynonym(i), true
}

// pick applies the tie-break to candidates within tieWindow of the best
// score: closest display name token count first, then the smaller id.
func (m *Matcher) pick(cands []Candidate, rawTokens int) Candidate {
	top := math.Inf(-1)
	for _, c := range cands {
		if c.Score > top {
			top = c.Score
		}
	}

	var (
		best     Candidate
		bestDiff = -1
	)
	for _, c := range cands {
		if c.Score < top-tieWindow {
			continue
		}

		diff := rawTokens - m.params[m.byID[c.ParameterID]].displayTokens
		if diff < 0 {
			diff = -diff
		}

		if bestDiff < 0 || diff < bestDiff || (diff == bestDiff && c.ParameterID < best.ParameterID) {
			best, bestDiff = c, diff
		}
	}

	return best
}

// Similarity scores two normalized strings in [0, 1] as the mean of token
// overlap and normalized edit similarity.
func Similarity(a, b string) float64 {
	return similarity(newSynonym(a), newSynonym(b))
}

func similarity(a, b synonym) float64 {
	if a.text == b.text {
		return 1
	}

	return 0.5*tokenOverlap(a.tokens, b.tokens) + 0.5*editSimilarity(a.text, a.runes, b.text, b.runes)
}

// tokenOverlap is a Jaccard ratio where each token of a may pair with one
// unused token of b whose edit similarity reaches tokenMatch.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	used := make([]bool, len(b))
	shared := 0

	for _, x := range a {
		best, bestScore := -1, 0.0
		for j, y := range b {
			if used[j] {
				continue
			}

			score := 1.0
			if x != y {
				score = editSimilarity(x, utf8.RuneCountInString(x), y, utf8.RuneCountInString(y))
			}
			if score >= tokenMatch && score > bestScore {
				best, bestScore = j, score
			}
		}

		if best >= 0 {
			used[best] = true
			shared++
		}
	}

	return float64(shared) / float64(len(a)+len(b)-shared)
}

func editSimilarity(a string, aRunes int, b string, bRunes int) float64 {
	longest := max(aRunes, bRunes)
	if longest == 0 {
		return 1
	}

	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

func newSynonym(normalized string) synonym {
	tokens := textnorm.Tokens(normalized)
	sort.Strings(tokens)
	tokens = slices.Compact(tokens)

	return synonym{
		text:   normalized,
		tokens: tokens,
		runes:  utf8.RuneCountInString(normalized),
	}
}
