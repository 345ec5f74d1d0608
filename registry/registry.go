/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package registry loads the canonical lab parameters and indexes their
// synonyms for matching.
package registry

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarthak-egenome/bloodpdf-parser/textnorm"
	"github.com/sarthak-egenome/bloodpdf-parser/units"
)

// Category groups parameters the way report sections usually do.
type Category string

// Category values for the bundled parameter set.
const (
	CategoryBloodCounts      Category = "Blood Counts"
	CategoryLipidPanel       Category = "Lipid Panel"
	CategoryMetabolic        Category = "Metabolic"
	CategoryLiverFunction    Category = "Liver Function"
	CategoryVitaminsMinerals Category = "Vitamins & Minerals"
	CategoryEndocrineOther   Category = "Endocrine & Other"
)

const maxRounding = 15

// Conversion is an analyte-specific factor from a unit of another dimension
// into the canonical unit: canonical = value_in_From * Factor.
type Conversion struct {
	From   string  `yaml:"from" json:"from"`
	Factor float64 `yaml:"factor" json:"factor"`
}

// Parameter is a canonical lab parameter. Synonyms are stored normalized and
// always include the normalized display name.
type Parameter struct {
	ID            string       `json:"id"`
	DisplayName   string       `json:"display_name"`
	CanonicalUnit string       `json:"canonical_unit"`
	Category      Category     `json:"category,omitempty"`
	Rounding      *int         `json:"rounding,omitempty"`
	Synonyms      []string     `json:"synonyms"`
	Conversions   []Conversion `json:"conversions,omitempty"`
}

type document struct {
	Parameters []parameterDocument `yaml:"parameters"`
}

type parameterDocument struct {
	ID            string       `yaml:"id"`
	DisplayName   string       `yaml:"display_name"`
	CanonicalUnit string       `yaml:"canonical_unit"`
	Category      Category     `yaml:"category"`
	Rounding      *int         `yaml:"rounding"`
	Synonyms      []string     `yaml:"synonyms"`
	Conversions   []Conversion `yaml:"conversions"`
}

// Registry is the immutable set of canonical parameters. It is safe for
// concurrent use once loaded.
type Registry struct {
	units  *units.Table
	params []*Parameter
	byID   map[string]*Parameter
	exact  map[string]string
	keys   map[string][]string
}

//go:embed parameters.yaml
var defaultParameters []byte

// Default loads the parameter set shipped with the binary.
func Default(table *units.Table) (*Registry, error) {
	return Load(bytes.NewReader(defaultParameters), table)
}

// LoadFile reads a registry from a YAML or JSON file.
func LoadFile(path string, table *units.Table) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryLoad, err)
	}
	defer f.Close()

	return Load(f, table)
}

// Load decodes a registry document and validates it against the unit table.
func Load(r io.Reader, table *units.Table) (*Registry, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: unit table is required", ErrRegistryLoad)
	}

	var doc document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrRegistryLoad)
		}
		return nil, fmt.Errorf("%w: %w", ErrRegistryLoad, err)
	}

	if len(doc.Parameters) == 0 {
		return nil, fmt.Errorf("%w: no parameters defined", ErrRegistryLoad)
	}

	reg := &Registry{
		units: table,
		byID:  make(map[string]*Parameter, len(doc.Parameters)),
		exact: make(map[string]string),
		keys:  make(map[string][]string),
	}

	for i, pd := range doc.Parameters {
		p, err := buildParameter(i, pd, table)
		if err != nil {
			return nil, err
		}

		if _, exists := reg.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate parameter id %q", ErrRegistryLoad, p.ID)
		}

		for _, syn := range p.Synonyms {
			if owner, exists := reg.exact[syn]; exists {
				return nil, fmt.Errorf("%w: synonym %q is claimed by both %q and %q",
					ErrRegistryLoad, syn, owner, p.ID)
			}
			reg.exact[syn] = p.ID
		}

		reg.byID[p.ID] = p
		reg.params = append(reg.params, p)
	}

	for _, p := range reg.params {
		for _, syn := range p.Synonyms {
			key := textnorm.MatchKey(syn)
			if !slices.Contains(reg.keys[key], p.ID) {
				reg.keys[key] = append(reg.keys[key], p.ID)
			}
		}
	}
	for key := range reg.keys {
		sort.Strings(reg.keys[key])
	}

	sort.Slice(reg.params, func(i, j int) bool {
		return reg.params[i].ID < reg.params[j].ID
	})

	return reg, nil
}

func buildParameter(i int, pd parameterDocument, table *units.Table) (*Parameter, error) {
	id := strings.TrimSpace(pd.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: parameter %d has no id", ErrRegistryLoad, i)
	}

	display := strings.TrimSpace(pd.DisplayName)
	if display == "" {
		display = id
	}

	canonical := strings.TrimSpace(pd.CanonicalUnit)
	if canonical == "" {
		return nil, fmt.Errorf("%w: parameter %q has no canonical unit", ErrRegistryLoad, id)
	}

	canonicalDef, ok := table.Lookup(canonical)
	if !ok {
		return nil, fmt.Errorf("%w: parameter %q canonical unit %q is not in the unit table",
			ErrRegistryLoad, id, canonical)
	}

	if pd.Rounding != nil && (*pd.Rounding < 0 || *pd.Rounding > maxRounding) {
		return nil, fmt.Errorf("%w: parameter %q rounding must be between 0 and %d",
			ErrRegistryLoad, id, maxRounding)
	}

	seen := make(map[string]struct{}, len(pd.Synonyms)+1)
	synonyms := make([]string, 0, len(pd.Synonyms)+1)
	add := func(raw string) {
		n := textnorm.Normalize(raw)
		if n == "" {
			return
		}
		if _, dup := seen[n]; dup {
			return
		}
		seen[n] = struct{}{}
		synonyms = append(synonyms, n)
	}

	for _, s := range pd.Synonyms {
		add(s)
	}
	if len(synonyms) == 0 {
		return nil, fmt.Errorf("%w: parameter %q has an empty synonym set", ErrRegistryLoad, id)
	}
	add(display)
	sort.Strings(synonyms)

	conversions := make([]Conversion, 0, len(pd.Conversions))
	fromDims := make(map[units.Dimension]struct{}, len(pd.Conversions))
	for _, c := range pd.Conversions {
		if c.Factor <= 0 || math.IsNaN(c.Factor) || math.IsInf(c.Factor, 0) {
			return nil, fmt.Errorf("%w: parameter %q conversion from %q must have a positive factor",
				ErrRegistryLoad, id, c.From)
		}

		def, ok := table.Lookup(c.From)
		if !ok {
			return nil, fmt.Errorf("%w: parameter %q conversion unit %q is not in the unit table",
				ErrRegistryLoad, id, c.From)
		}
		if def.Dimension == canonicalDef.Dimension {
			return nil, fmt.Errorf("%w: parameter %q conversion from %q stays within %s",
				ErrRegistryLoad, id, c.From, def.Dimension)
		}
		if _, dup := fromDims[def.Dimension]; dup {
			return nil, fmt.Errorf("%w: parameter %q has more than one conversion from %s",
				ErrRegistryLoad, id, def.Dimension)
		}
		fromDims[def.Dimension] = struct{}{}

		conversions = append(conversions, Conversion{From: def.Symbol, Factor: c.Factor})
	}

	return &Parameter{
		ID:            id,
		DisplayName:   display,
		CanonicalUnit: canonical,
		Category:      pd.Category,
		Rounding:      pd.Rounding,
		Synonyms:      synonyms,
		Conversions:   conversions,
	}, nil
}

// LookupByID returns the parameter with the given id.
func (r *Registry) LookupByID(id string) (*Parameter, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// AllCandidates returns every parameter ordered by id. The parameters are
// shared and must not be modified.
func (r *Registry) AllCandidates() []*Parameter {
	return append([]*Parameter(nil), r.params...)
}

// ExactIndex resolves an already normalized synonym to its parameter id.
func (r *Registry) ExactIndex(normalized string) (string, bool) {
	id, ok := r.exact[normalized]
	return id, ok
}

// KeyIndex returns the ids, sorted, of parameters owning a synonym whose
// match key equals key.
func (r *Registry) KeyIndex(key string) []string {
	return r.keys[key]
}

// Units returns the unit table the registry was validated against.
func (r *Registry) Units() *units.Table {
	return r.units
}

// Len returns the number of parameters.
func (r *Registry) Len() int {
	return len(r.params)
}
