/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package units holds the unit table and converts lab values between units
// of the same dimension class.
package units

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarthak-egenome/bloodpdf-parser/textnorm"
)

// Dimension is the physical quantity family a unit belongs to.
type Dimension string

// Dimension classes used by the embedded unit table.
const (
	DimensionMassConcentration       Dimension = "mass_concentration"
	DimensionMolarConcentration      Dimension = "molar_concentration"
	DimensionEquivalentConcentration Dimension = "equivalent_concentration"
	DimensionEnzymeActivity          Dimension = "enzyme_activity"
	DimensionHormoneConcentration    Dimension = "hormone_concentration"
	DimensionCellCount               Dimension = "cell_count"
	DimensionPercentage              Dimension = "percentage"
	DimensionVolume                  Dimension = "volume"
	DimensionMass                    Dimension = "mass"
	DimensionRate                    Dimension = "rate"
	DimensionFiltrationRate          Dimension = "filtration_rate"
	DimensionRatio                   Dimension = "ratio"
	DimensionTemperature             Dimension = "temperature"
)

// Definition describes one unit. A value in this unit converts to the
// dimension base as value*Factor + Offset.
type Definition struct {
	Symbol    string    `yaml:"symbol" json:"symbol"`
	Dimension Dimension `yaml:"dimension" json:"dimension"`
	Factor    float64   `yaml:"factor" json:"factor"`
	Offset    float64   `yaml:"offset" json:"offset"`
	Aliases   []string  `yaml:"aliases" json:"aliases,omitempty"`
}

// Affine reports whether converting this unit involves an offset.
func (d Definition) Affine() bool {
	return d.Offset != 0
}

type tableDocument struct {
	Units []Definition `yaml:"units"`
}

// Table is an immutable set of unit definitions indexed by normalized symbol
// and alias. It is safe for concurrent use.
type Table struct {
	defs  []Definition
	index map[string]int
}

//go:embed default_units.yaml
var defaultUnits []byte

// DefaultTable loads the unit table shipped with the binary.
func DefaultTable() (*Table, error) {
	return LoadTable(bytes.NewReader(defaultUnits))
}

// LoadTableFile reads a unit table from a YAML file.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnitTableLoad, err)
	}
	defer f.Close()

	return LoadTable(f)
}

// LoadTable decodes and validates a YAML unit table.
func LoadTable(r io.Reader) (*Table, error) {
	var doc tableDocument

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrUnitTableLoad)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnitTableLoad, err)
	}

	return NewTable(doc.Units)
}

// NewTable validates definitions and builds the lookup index.
func NewTable(defs []Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no units defined", ErrUnitTableLoad)
	}

	t := &Table{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)*2),
	}

	for i, def := range defs {
		def.Symbol = strings.TrimSpace(def.Symbol)
		def.Dimension = Dimension(strings.TrimSpace(string(def.Dimension)))

		if def.Symbol == "" {
			return nil, fmt.Errorf("%w: unit %d has no symbol", ErrUnitTableLoad, i)
		}
		if def.Dimension == "" {
			return nil, fmt.Errorf("%w: unit %q has no dimension", ErrUnitTableLoad, def.Symbol)
		}
		if def.Factor <= 0 || math.IsNaN(def.Factor) || math.IsInf(def.Factor, 0) {
			return nil, fmt.Errorf("%w: unit %q factor must be positive, got %v", ErrUnitTableLoad, def.Symbol, def.Factor)
		}
		if math.IsNaN(def.Offset) || math.IsInf(def.Offset, 0) {
			return nil, fmt.Errorf("%w: unit %q offset must be finite", ErrUnitTableLoad, def.Symbol)
		}

		pos := len(t.defs)
		for _, name := range append([]string{def.Symbol}, def.Aliases...) {
			key := textnorm.NormalizeUnit(name)
			if key == "" {
				return nil, fmt.Errorf("%w: unit %q has an empty alias", ErrUnitTableLoad, def.Symbol)
			}
			if owner, exists := t.index[key]; exists && owner != pos {
				return nil, fmt.Errorf("%w: %q is claimed by both %q and %q",
					ErrUnitTableLoad, name, t.defs[owner].Symbol, def.Symbol)
			}
			t.index[key] = pos
		}

		t.defs = append(t.defs, def)
	}

	return t, nil
}

// Lookup resolves a symbol or alias to its definition.
func (t *Table) Lookup(symbol string) (Definition, bool) {
	pos, ok := t.index[textnorm.NormalizeUnit(symbol)]
	if !ok {
		return Definition{}, false
	}

	return t.defs[pos], true
}

// Definitions returns the unit definitions ordered by dimension and symbol.
func (t *Table) Definitions() []Definition {
	out := append([]Definition(nil), t.defs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Dimension != out[j].Dimension {
			return out[i].Dimension < out[j].Dimension
		}
		return out[i].Symbol < out[j].Symbol
	})

	return out
}

// Dimension returns the dimension class of a symbol.
func (t *Table) Dimension(symbol string) (Dimension, error) {
	def, ok := t.Lookup(symbol)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}

	return def.Dimension, nil
}
