// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sarthak-egenome/bloodpdf-parser/textnorm"
	"github.com/sarthak-egenome/bloodpdf-parser/units"
)

func loadUnits(t *testing.T) *units.Table {
	t.Helper()

	table, err := units.DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable failed: %v", err)
	}

	return table
}

func loadDefault(t *testing.T) *Registry {
	t.Helper()

	reg, err := Default(loadUnits(t))
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	return reg
}

func assertFloatClose(t *testing.T, got, want float64) {
	t.Helper()

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := loadDefault(t)

	if reg.Len() == 0 {
		t.Fatalf("expected default registry to have parameters")
	}

	params := reg.AllCandidates()
	if !sort.SliceIsSorted(params, func(i, j int) bool { return params[i].ID < params[j].ID }) {
		t.Fatalf("AllCandidates is not sorted by id")
	}

	for _, p := range params {
		if len(p.Synonyms) == 0 {
			t.Fatalf("parameter %q has no synonyms", p.ID)
		}

		display := textnorm.Normalize(p.DisplayName)
		found := false
		for _, s := range p.Synonyms {
			if s == display {
				found = true
			}
			if textnorm.Normalize(s) != s {
				t.Fatalf("parameter %q synonym %q is not stored normalized", p.ID, s)
			}

			owner, ok := reg.ExactIndex(s)
			if !ok || owner != p.ID {
				t.Fatalf("synonym %q indexed to %q (ok=%v), want %q", s, owner, ok, p.ID)
			}
		}
		if !found {
			t.Fatalf("parameter %q synonyms do not include display name %q", p.ID, display)
		}

		if _, ok := reg.Units().Lookup(p.CanonicalUnit); !ok {
			t.Fatalf("parameter %q canonical unit %q is unknown", p.ID, p.CanonicalUnit)
		}
	}
}

func TestLookupByID(t *testing.T) {
	t.Parallel()

	reg := loadDefault(t)

	p, ok := reg.LookupByID("creatinine")
	if !ok {
		t.Fatalf("expected creatinine to be registered")
	}
	if p.CanonicalUnit != "mg/dl" {
		t.Fatalf("expected canonical unit mg/dl, got %q", p.CanonicalUnit)
	}
	if p.Category != CategoryMetabolic {
		t.Fatalf("expected category %q, got %q", CategoryMetabolic, p.Category)
	}

	if _, ok := reg.LookupByID("unobtainium"); ok {
		t.Fatalf("expected unknown id to be absent")
	}
}

func TestKeyIndex(t *testing.T) {
	t.Parallel()

	reg := loadDefault(t)

	if diff := cmp.Diff([]string{"alt"}, reg.KeyIndex("sgpt")); diff != "" {
		t.Fatalf("KeyIndex(sgpt) mismatch (-want +got):\n%s", diff)
	}

	if got := reg.KeyIndex("no such key"); len(got) != 0 {
		t.Fatalf("expected no ids, got %v", got)
	}
}

func TestKeyIndexSharedKeyIsSorted(t *testing.T) {
	t.Parallel()

	doc := `
parameters:
  - id: zeta
    display_name: Ferritin Index
    canonical_unit: ng/mL
    synonyms: [Ferritin Idx]
  - id: alpha
    display_name: Ferritin Index Total
    canonical_unit: ng/mL
    synonyms: [Serum Ferritin Index]
`

	reg, err := Load(strings.NewReader(doc), loadUnits(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff([]string{"alpha", "zeta"}, reg.KeyIndex("ferritin index")); diff != "" {
		t.Fatalf("KeyIndex mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "malformed", doc: "parameters: [\n"},
		{name: "no parameters", doc: "parameters: []\n"},
		{name: "unknown field", doc: "parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: [a], units: x}\n"},
		{name: "missing id", doc: "parameters:\n  - {canonical_unit: mg/dL, synonyms: [a]}\n"},
		{name: "missing canonical unit", doc: "parameters:\n  - {id: a, synonyms: [a]}\n"},
		{name: "unknown canonical unit", doc: "parameters:\n  - {id: a, canonical_unit: furlongs, synonyms: [a]}\n"},
		{name: "empty synonyms", doc: "parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: []}\n"},
		{name: "blank synonyms", doc: "parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: [\"()\", \" \"]}\n"},
		{
			name: "duplicate id",
			doc: "parameters:\n" +
				"  - {id: a, canonical_unit: mg/dL, synonyms: [first]}\n" +
				"  - {id: a, canonical_unit: mg/dL, synonyms: [second]}\n",
		},
		{
			name: "synonym claimed twice",
			doc: "parameters:\n" +
				"  - {id: a, canonical_unit: mg/dL, synonyms: [S.G.P.T]}\n" +
				"  - {id: b, canonical_unit: U/L, synonyms: [s g p t]}\n",
		},
		{
			name: "display name collides",
			doc: "parameters:\n" +
				"  - {id: a, display_name: Glucose, canonical_unit: mg/dL, synonyms: [fbs]}\n" +
				"  - {id: b, canonical_unit: mg/dL, synonyms: [glucose]}\n",
		},
		{name: "negative rounding", doc: "parameters:\n  - {id: a, canonical_unit: mg/dL, rounding: -1, synonyms: [a]}\n"},
		{
			name: "zero factor",
			doc:  "parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: [a], conversions: [{from: mmol/L, factor: 0}]}\n",
		},
		{
			name: "unknown conversion unit",
			doc:  "parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: [a], conversions: [{from: furlongs, factor: 2}]}\n",
		},
		{
			name: "conversion within dimension",
			doc:  "parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: [a], conversions: [{from: g/L, factor: 100}]}\n",
		},
		{
			name: "two conversions from one dimension",
			doc: "parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: [a], " +
				"conversions: [{from: mmol/L, factor: 18}, {from: µmol/L, factor: 0.018}]}\n",
		},
	}

	table := loadUnits(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(strings.NewReader(tt.doc), table)
			if !errors.Is(err, ErrRegistryLoad) {
				t.Fatalf("expected ErrRegistryLoad, got %v", err)
			}
		})
	}
}

func TestLoadRequiresUnitTable(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("parameters:\n  - {id: a, canonical_unit: mg/dL, synonyms: [a]}\n"), nil)
	if !errors.Is(err, ErrRegistryLoad) {
		t.Fatalf("expected ErrRegistryLoad, got %v", err)
	}
}

func TestLoadAcceptsJSON(t *testing.T) {
	t.Parallel()

	doc := `{"parameters": [{"id": "ldh", "display_name": "Lactate Dehydrogenase", ` +
		`"canonical_unit": "U/L", "synonyms": ["LDH", "LD"]}]}`

	reg, err := Load(strings.NewReader(doc), loadUnits(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p, ok := reg.LookupByID("ldh")
	if !ok {
		t.Fatalf("expected ldh to be registered")
	}

	want := []string{"lactate dehydrogenase", "ld", "ldh"}
	if diff := cmp.Diff(want, p.Synonyms); diff != "" {
		t.Fatalf("synonyms mismatch (-want +got):\n%s", diff)
	}
}

func TestToCanonical(t *testing.T) {
	t.Parallel()

	reg := loadDefault(t)

	tests := []struct {
		id    string
		value float64
		unit  string
		want  float64
	}{
		{id: "creatinine", value: 1.1, unit: "mg/dL", want: 1.1},
		{id: "creatinine", value: 88.4, unit: "µmol/L", want: 1},
		{id: "glucose_fasting", value: 5.5, unit: "mmol/L", want: 99.1001},
		{id: "glucose_fasting", value: 5500, unit: "µmol/L", want: 99.1001},
		{id: "glucose_fasting", value: 1, unit: "g/L", want: 100},
		{id: "sodium", value: 140, unit: "mEq/L", want: 140},
		{id: "albumin", value: 42, unit: "g/L", want: 4.2},
		{id: "vitamin_b12", value: 221.4, unit: "pmol/L", want: 300},
		{id: "tsh", value: 2.5, unit: "mIU/L", want: 2.5},
		{id: "alt", value: 45, unit: "IU/L", want: 45},
	}

	for _, tt := range tests {
		p, ok := reg.LookupByID(tt.id)
		if !ok {
			t.Fatalf("parameter %q missing", tt.id)
		}

		got, err := reg.ToCanonical(p, tt.value, tt.unit)
		if err != nil {
			t.Fatalf("ToCanonical(%s, %v, %q) failed: %v", tt.id, tt.value, tt.unit, err)
		}

		assertFloatClose(t, got, tt.want)
	}
}

func TestToCanonicalRejectsMissingFactor(t *testing.T) {
	t.Parallel()

	reg := loadDefault(t)

	alt, _ := reg.LookupByID("alt")
	if _, err := reg.ToCanonical(alt, 45, "mg/dL"); !errors.Is(err, units.ErrIncompatibleDimension) {
		t.Fatalf("expected ErrIncompatibleDimension, got %v", err)
	}

	ferritin, _ := reg.LookupByID("ferritin")
	if _, err := reg.ToCanonical(ferritin, 80, "pmol/L"); !errors.Is(err, units.ErrIncompatibleDimension) {
		t.Fatalf("expected ErrIncompatibleDimension for molar ferritin, got %v", err)
	}

	if _, err := reg.ToCanonical(ferritin, 80, "bananas"); !errors.Is(err, units.ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestParameterRound(t *testing.T) {
	t.Parallel()

	one := 1
	p := Parameter{ID: "x", Rounding: &one}
	assertFloatClose(t, p.Round(99.1001), 99.1)

	none := Parameter{ID: "y"}
	assertFloatClose(t, none.Round(99.1001), 99.1001)
}

func TestDefaultRegistryLowPlateletCountKeepsPrecision(t *testing.T) {
	t.Parallel()

	p, ok := loadDefault(t).LookupByID("platelets")
	if !ok {
		t.Fatalf("expected platelets to be registered")
	}

	if got := p.Round(0.25); got == 0 {
		t.Fatalf("platelet count 0.25 rounded to 0")
	}
	assertFloatClose(t, p.Round(0.25), 0.25)
}

func TestDefaultRegistryHbA1cSpellings(t *testing.T) {
	t.Parallel()

	reg := loadDefault(t)

	for _, label := range []string{"Hemoglobin A1c", "Haemoglobin A1c", "Glycated Hemoglobin", "HbA1c"} {
		id, ok := reg.ExactIndex(textnorm.Normalize(label))
		if !ok || id != "hba1c" {
			t.Fatalf("ExactIndex(%q) = %q (ok=%v), want hba1c", label, id, ok)
		}
	}
}
