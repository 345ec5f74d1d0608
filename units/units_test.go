// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func loadDefault(t *testing.T) *Table {
	t.Helper()

	table, err := DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable failed: %v", err)
	}

	return table
}

func assertFloatClose(t *testing.T, got, want float64) {
	t.Helper()

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestConvertIdentity(t *testing.T) {
	t.Parallel()

	table := loadDefault(t)
	values := []float64{0, 1.1, 45, 123.456789, -3.25}

	for _, def := range table.Definitions() {
		for _, v := range values {
			got, err := table.Convert(v, def.Symbol, def.Symbol)
			if err != nil {
				t.Fatalf("Convert(%v, %q, %q) failed: %v", v, def.Symbol, def.Symbol, err)
			}
			if got != v {
				t.Fatalf("Convert(%v, %q, %q) = %v, want identity", v, def.Symbol, def.Symbol, got)
			}
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	t.Parallel()

	table := loadDefault(t)
	byDimension := make(map[Dimension][]Definition)
	for _, def := range table.Definitions() {
		byDimension[def.Dimension] = append(byDimension[def.Dimension], def)
	}

	values := []float64{1.1, 45, 98.6, 250}

	for dim, defs := range byDimension {
		for _, a := range defs {
			for _, b := range defs {
				for _, v := range values {
					there, err := table.Convert(v, a.Symbol, b.Symbol)
					if err != nil {
						t.Fatalf("%s: Convert(%v, %q, %q) failed: %v", dim, v, a.Symbol, b.Symbol, err)
					}

					back, err := table.Convert(there, b.Symbol, a.Symbol)
					if err != nil {
						t.Fatalf("%s: Convert(%v, %q, %q) failed: %v", dim, there, b.Symbol, a.Symbol, err)
					}

					if math.Abs(back-v) > 1e-3*math.Max(1, math.Abs(v)) {
						t.Fatalf("%s: round trip %v %s -> %v %s -> %v", dim, v, a.Symbol, there, b.Symbol, back)
					}
				}
			}
		}
	}
}

func TestConvertAcrossDimensionsFails(t *testing.T) {
	t.Parallel()

	table := loadDefault(t)
	defs := table.Definitions()

	for _, a := range defs {
		for _, b := range defs {
			if a.Dimension == b.Dimension {
				continue
			}

			_, err := table.Convert(1, a.Symbol, b.Symbol)
			if !errors.Is(err, ErrIncompatibleDimension) {
				t.Fatalf("Convert(1, %q, %q) error = %v, want ErrIncompatibleDimension", a.Symbol, b.Symbol, err)
			}
		}
	}
}

func TestConvertKnownFactors(t *testing.T) {
	t.Parallel()

	table := loadDefault(t)

	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{value: 1.1, from: "mg/dL", to: "g/L", want: 0.011},
		{value: 1.1, from: "mg per dL", to: "g/l", want: 0.011},
		{value: 100, from: "µmol/L", to: "mmol/L", want: 0.1},
		{value: 100, from: "umol/l", to: "mmol/L", want: 0.1},
		{value: 37, from: "°C", to: "°F", want: 98.6},
		{value: 310.15, from: "K", to: "degC", want: 37},
		{value: 0.45, from: "L/L", to: "%", want: 45},
		{value: 7.5, from: "×10³/μL", to: "10^9/L", want: 7.5},
		{value: 2.5, from: "lakhs/cumm", to: "10^3/µL", want: 250},
		{value: 14.2, from: "g/dL", to: "g/L", want: 142},
		{value: 2.5, from: "µIU/mL", to: "mIU/L", want: 2.5},
	}

	for _, tt := range tests {
		got, err := table.Convert(tt.value, tt.from, tt.to)
		if err != nil {
			t.Fatalf("Convert(%v, %q, %q) failed: %v", tt.value, tt.from, tt.to, err)
		}

		assertFloatClose(t, got, tt.want)
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	t.Parallel()

	table := loadDefault(t)

	if _, err := table.Convert(1, "furlongs/L", "mg/dL"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit for source, got %v", err)
	}

	if _, err := table.Convert(1, "mg/dL", ""); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit for target, got %v", err)
	}
}

func TestMassAndMolarAreDistinct(t *testing.T) {
	t.Parallel()

	table := loadDefault(t)

	_, err := table.Convert(5.5, "mmol/L", "mg/dL")
	if !errors.Is(err, ErrIncompatibleDimension) {
		t.Fatalf("expected ErrIncompatibleDimension, got %v", err)
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{in: 12345.678912, want: 12345.6789},
		{in: 0.000034567, want: 0.00003457},
		{in: 0.0123456, want: 0.01235},
		{in: -0.5, want: -0.5},
		{in: 0, want: 0},
		{in: 98.60000000000001, want: 98.6},
	}

	for _, tt := range tests {
		assertFloatClose(t, Round(tt.in), tt.want)
	}

	if !math.IsNaN(Round(math.NaN())) {
		t.Fatalf("expected NaN to pass through")
	}
}

func TestLoadTableRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "no units", doc: "units: []\n"},
		{name: "zero factor", doc: "units:\n  - {symbol: mg/dL, dimension: mass_concentration, factor: 0}\n"},
		{name: "negative factor", doc: "units:\n  - {symbol: mg/dL, dimension: mass_concentration, factor: -1}\n"},
		{name: "missing dimension", doc: "units:\n  - {symbol: mg/dL, factor: 1}\n"},
		{name: "missing symbol", doc: "units:\n  - {dimension: mass_concentration, factor: 1}\n"},
		{name: "unknown field", doc: "units:\n  - {symbol: mg/dL, dimension: mass_concentration, factor: 1, scale: 2}\n"},
		{
			name: "alias claimed twice",
			doc: "units:\n" +
				"  - {symbol: mg/dL, dimension: mass_concentration, factor: 0.01}\n" +
				"  - {symbol: mg%, dimension: mass_concentration, factor: 0.01, aliases: [MG/DL]}\n",
		},
		{name: "malformed yaml", doc: "units: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadTable(strings.NewReader(tt.doc))
			if !errors.Is(err, ErrUnitTableLoad) {
				t.Fatalf("expected ErrUnitTableLoad, got %v", err)
			}
		})
	}
}

func TestLoadTableAcceptsRepeatedAliasOfSameUnit(t *testing.T) {
	t.Parallel()

	doc := "units:\n  - {symbol: /µL, dimension: cell_count, factor: 1, aliases: [/cumm, cells/µL, cells/cumm]}\n"

	table, err := LoadTable(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	def, ok := table.Lookup("cells/cumm")
	if !ok || def.Symbol != "/µL" {
		t.Fatalf("expected cells/cumm to resolve to /µL, got %+v (ok=%v)", def, ok)
	}
}

func TestDimension(t *testing.T) {
	t.Parallel()

	table := loadDefault(t)

	dim, err := table.Dimension("IU/L")
	if err != nil {
		t.Fatalf("Dimension failed: %v", err)
	}
	if dim != DimensionEnzymeActivity {
		t.Fatalf("expected %s, got %s", DimensionEnzymeActivity, dim)
	}

	if _, err := table.Dimension("bananas"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}
