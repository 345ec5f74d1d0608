/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package pipeline resolves extracted report entries into canonical
// parameters and units.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/sarthak-egenome/bloodpdf-parser/logging"
	"github.com/sarthak-egenome/bloodpdf-parser/matcher"
	"github.com/sarthak-egenome/bloodpdf-parser/reference"
	"github.com/sarthak-egenome/bloodpdf-parser/registry"
)

// Resolver turns raw entries into results. It only reads the registry and
// is safe for concurrent use.
type Resolver struct {
	reg     *registry.Registry
	matcher *matcher.Matcher
	workers int
	book    *reference.Book
	profile reference.Profile
	logger  *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWorkers bounds the number of entries resolved at once.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithReference flags resolved values against the book's range for the
// patient profile.
func WithReference(book *reference.Book, profile reference.Profile) Option {
	return func(r *Resolver) {
		r.book = book
		r.profile = profile
	}
}

// WithLogger replaces the pipeline logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a resolver over reg.
func NewResolver(reg *registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		reg:     reg,
		matcher: matcher.New(reg),
		workers: runtime.NumCPU(),
		logger:  logging.Logger(logging.SourcePipeline),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Matcher returns the matcher the resolver uses.
func (r *Resolver) Matcher() *matcher.Matcher {
	return r.matcher
}

// Resolve returns one result per entry, in input order. Entries that cannot
// be resolved become unmatched results and never fail the batch. The only
// errors are an invalid strictness and cancellation of ctx.
func (r *Resolver) Resolve(ctx context.Context, entries []RawLabEntry, strictness matcher.Strictness) ([]Result, error) {
	if !strictness.Valid() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStrictness, int(strictness))
	}

	results := make([]Result, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range entries {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.resolveEntry(i, entries[i], strictness)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := 0
	for _, res := range results {
		if res.OK() {
			resolved++
		}
	}

	r.logger.Info("Resolved batch",
		"entries", len(entries),
		"resolved", resolved,
		"unmatched", len(entries)-resolved,
		"strictness", int(strictness))

	return results, nil
}

func (r *Resolver) resolveEntry(i int, e RawLabEntry, strictness matcher.Strictness) Result {
	cand, ok := r.matcher.Match(e.Label, strictness)
	if !ok {
		return r.unmatched(i, e, ReasonNoCandidate,
			fmt.Sprintf("no parameter scored at least %.2f", strictness.Threshold()))
	}

	p, ok := r.reg.LookupByID(cand.ParameterID)
	if !ok {
		return r.unmatched(i, e, ReasonNoCandidate, fmt.Sprintf("parameter %q is not registered", cand.ParameterID))
	}

	value, err := ParseValue(e.Value)
	if err != nil {
		return r.unmatched(i, e, ReasonInvalidNumeric, err.Error())
	}

	assumed := e.Unit == nil || strings.TrimSpace(*e.Unit) == ""
	if !assumed {
		value, err = r.reg.ToCanonical(p, value, *e.Unit)
		if err != nil {
			return r.unmatched(i, e, ReasonIncompatibleUnit, err.Error())
		}
	}

	entry := &ResolvedEntry{
		RawLabel:    e.Label,
		ParameterID: p.ID,
		DisplayName: p.DisplayName,
		Value:       p.Round(value),
		Unit:        p.CanonicalUnit,
		MatchTier:   cand.Tier,
		Confidence:  cand.Score,
		UnitAssumed: assumed,
	}

	if r.book != nil {
		entry.Flag = r.book.Classify(p.ID, entry.Value, r.profile)
	}

	return Result{Index: i, Resolved: entry}
}

func (r *Resolver) unmatched(i int, e RawLabEntry, reason Reason, detail string) Result {
	r.logger.Debug("Entry unmatched", "index", i, "label", e.Label, "reason", reason, "detail", detail)

	return Result{
		Index: i,
		Unmatched: &UnmatchedEntry{
			RawLabel: e.Label,
			Reason:   reason,
			Detail:   detail,
		},
	}
}
