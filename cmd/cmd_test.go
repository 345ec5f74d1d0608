// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/sarthak-egenome/bloodpdf-parser/matcher"
	"github.com/sarthak-egenome/bloodpdf-parser/pipeline"
	"github.com/sarthak-egenome/bloodpdf-parser/reference"
	"github.com/sarthak-egenome/bloodpdf-parser/registry"
	"github.com/sarthak-egenome/bloodpdf-parser/units"
)

func runCommand(t *testing.T, sub *cli.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := &cli.Command{
		Name:      "bloodpdf-parser",
		Reader:    strings.NewReader(stdin),
		Writer:    &out,
		ErrWriter: io.Discard,
		Commands:  []*cli.Command{sub},
	}

	err := root.Run(context.Background(), append([]string{"bloodpdf-parser", sub.Name}, args...))

	return out.String(), err
}

// clearEnv unsets the variables backing command flags for the duration of
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", registryEnvVar, unitsEnvVar, strictnessEnvVar} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func decodeResults(t *testing.T, out string) []pipeline.Result {
	t.Helper()
	var results []pipeline.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("failed to decode output %q: %v", out, err)
	}
	return results
}

func assertFloatClose(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeFromStdin(t *testing.T) {
	clearEnv(t)

	stdin := `[
		{"label": "S.G.P.T", "value": "45", "unit": "U/L"},
		{"label": "Random Unrelated Text", "value": 12, "unit": null},
		{"label": "Fasting Blood Sugar", "value": "5.5", "unit": "mmol/L"}
	]`

	out, err := runCommand(t, newNormalizeCommand(), stdin, "--strictness", "2", "-")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	results := decodeResults(t, out)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	alt := results[0].Resolved
	if alt == nil || alt.ParameterID != "alt" || alt.MatchTier != matcher.TierSynonymExact {
		t.Fatalf("expected alt via synonym match, got %+v", results[0])
	}

	if results[1].Unmatched == nil || results[1].Unmatched.Reason != pipeline.ReasonNoCandidate {
		t.Fatalf("expected unmatched entry, got %+v", results[1])
	}

	glucose := results[2].Resolved
	if glucose == nil || glucose.ParameterID != "glucose_fasting" {
		t.Fatalf("expected fasting glucose, got %+v", results[2])
	}
	assertFloatClose(t, glucose.Value, 99.1)
}

func TestNormalizeWithProfileFlags(t *testing.T) {
	clearEnv(t)

	stdin := `[{"label": "Serum Creatinine", "value": "1.1", "unit": "mg/dL"}]`

	out, err := runCommand(t, newNormalizeCommand(), stdin, "--gender", "female", "--age", "40", "-")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	results := decodeResults(t, out)
	if len(results) != 1 || results[0].Resolved == nil {
		t.Fatalf("expected one resolved result, got %+v", results)
	}
	if results[0].Resolved.Flag != reference.FlagHigh {
		t.Fatalf("expected high flag, got %q", results[0].Resolved.Flag)
	}
}

func TestNormalizeTextFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "report.txt")
	text := "Hemoglobin 14.2 g/dL\nSerum Creatinine 1.1 mg/dl\n"
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}

	out, err := runCommand(t, newNormalizeCommand(), "", path)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	results := decodeResults(t, out)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	ids := []string{}
	for _, r := range results {
		if r.Resolved == nil {
			t.Fatalf("expected every entry to resolve, got %+v", r)
		}
		ids = append(ids, r.Resolved.ParameterID)
	}

	if ids[0] != "hemoglobin" || ids[1] != "creatinine" {
		t.Fatalf("unexpected parameters: %v", ids)
	}
}

func TestNormalizeRequiresInput(t *testing.T) {
	clearEnv(t)

	_, err := runCommand(t, newNormalizeCommand(), "")
	if !errors.Is(err, errInputRequired) {
		t.Fatalf("expected errInputRequired, got %v", err)
	}
}

func TestNormalizeRejectsInvalidStrictness(t *testing.T) {
	clearEnv(t)

	if _, err := runCommand(t, newNormalizeCommand(), "[]", "--strictness", "5", "-"); err == nil {
		t.Fatalf("expected error for strictness 5")
	}
}

func TestNormalizeRejectsUnknownGender(t *testing.T) {
	clearEnv(t)

	if _, err := runCommand(t, newNormalizeCommand(), "[]", "--gender", "robot", "-"); err == nil {
		t.Fatalf("expected error for unknown gender")
	}
}

func TestMatchExplains(t *testing.T) {
	clearEnv(t)

	out, err := runCommand(t, newMatchCommand(), "", "--limit", "3", "S.G.P.T", "Creatinin", "Xyzzy Plugh")
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	var explanations []matchExplanation
	if err := json.Unmarshal([]byte(out), &explanations); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}

	if len(explanations) != 3 {
		t.Fatalf("expected 3 explanations, got %d", len(explanations))
	}

	if m := explanations[0].Match; m == nil || m.ParameterID != "alt" {
		t.Fatalf("expected S.G.P.T to match alt, got %+v", explanations[0])
	}

	if m := explanations[1].Match; m == nil || m.ParameterID != "creatinine" || m.Tier != matcher.TierFuzzy {
		t.Fatalf("expected fuzzy creatinine match, got %+v", explanations[1])
	}

	if explanations[2].Match != nil {
		t.Fatalf("expected no match for unrelated text, got %+v", explanations[2].Match)
	}

	for _, exp := range explanations {
		if len(exp.Candidates) > 3 {
			t.Fatalf("expected at most 3 candidates for %q, got %d", exp.Label, len(exp.Candidates))
		}
	}
}

func TestMatchRequiresLabel(t *testing.T) {
	clearEnv(t)

	_, err := runCommand(t, newMatchCommand(), "")
	if !errors.Is(err, errLabelRequired) {
		t.Fatalf("expected errLabelRequired, got %v", err)
	}
}

func TestConvert(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name      string
		args      []string
		wantValue float64
		wantUnit  string
	}{
		{name: "units", args: []string{"1", "g/dL", "mg/dL"}, wantValue: 1000, wantUnit: "mg/dL"},
		{name: "parameter factor", args: []string{"--parameter", "glucose_fasting", "5.5", "mmol/L"}, wantValue: 99.1, wantUnit: "mg/dl"},
		{name: "comma decimal", args: []string{"--parameter", "creatinine", "88,4", "umol/L"}, wantValue: 1, wantUnit: "mg/dl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, newConvertCommand(), "", tt.args...)
			if err != nil {
				t.Fatalf("convert failed: %v", err)
			}

			var got conversion
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("failed to decode output: %v", err)
			}

			assertFloatClose(t, got.Value, tt.wantValue)
			if got.Unit != tt.wantUnit {
				t.Fatalf("expected unit %q, got %q", tt.wantUnit, got.Unit)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	clearEnv(t)

	if _, err := runCommand(t, newConvertCommand(), "", "1", "g/dL"); !errors.Is(err, errConvertUsage) {
		t.Fatalf("expected errConvertUsage, got %v", err)
	}

	if _, err := runCommand(t, newConvertCommand(), "", "abc", "g/dL", "mg/dL"); !errors.Is(err, pipeline.ErrInvalidNumericValue) {
		t.Fatalf("expected ErrInvalidNumericValue, got %v", err)
	}

	if _, err := runCommand(t, newConvertCommand(), "", "1", "g/dL", "U/L"); err == nil {
		t.Fatalf("expected error converting across dimensions")
	}

	if _, err := runCommand(t, newConvertCommand(), "", "--parameter", "nope", "1", "g/dL"); err == nil {
		t.Fatalf("expected error for unknown parameter")
	}
}

func TestValidateStrictness(t *testing.T) {
	t.Parallel()

	for _, v := range []int{0, 1, 2} {
		if err := validateStrictness(v); err != nil {
			t.Fatalf("expected strictness %d to be valid: %v", v, err)
		}
	}

	for _, v := range []int{-1, 3} {
		if err := validateStrictness(v); !errors.Is(err, errInvalidStrictness) {
			t.Fatalf("expected errInvalidStrictness for %d, got %v", v, err)
		}
	}
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	for _, sub := range []string{"up", "down", "status", "version"} {
		_, err := runCommand(t, newMigrateCommand(), "", sub)
		if !errors.Is(err, errDatabaseURLRequired) {
			t.Fatalf("migrate %s: expected errDatabaseURLRequired, got %v", sub, err)
		}
	}
}

func TestRegistryFilesFromEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	unitsPath := filepath.Join(dir, "units.yaml")
	registryPath := filepath.Join(dir, "parameters.yaml")

	unitsDoc := `units:
  - symbol: mg/dL
    dimension: mass_concentration
    factor: 0.01
  - symbol: g/L
    dimension: mass_concentration
    factor: 1
`
	registryDoc := `parameters:
  - id: widget
    display_name: Widget Level
    canonical_unit: mg/dL
    synonyms: [gadget]
`
	if err := os.WriteFile(unitsPath, []byte(unitsDoc), 0o600); err != nil {
		t.Fatalf("failed to write units: %v", err)
	}
	if err := os.WriteFile(registryPath, []byte(registryDoc), 0o600); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}

	t.Setenv(unitsEnvVar, unitsPath)
	t.Setenv(registryEnvVar, registryPath)

	stdin := `[{"label": "Gadget", "value": "2", "unit": "g/L"}, {"label": "ALT", "value": "20", "unit": "U/L"}]`

	out, err := runCommand(t, newNormalizeCommand(), stdin, "-")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	results := decodeResults(t, out)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	widget := results[0].Resolved
	if widget == nil || widget.ParameterID != "widget" {
		t.Fatalf("expected widget, got %+v", results[0])
	}
	assertFloatClose(t, widget.Value, 200)

	if results[1].Unmatched == nil {
		t.Fatalf("expected ALT to be unknown to the custom registry, got %+v", results[1])
	}
}

func TestMissingRegistryFile(t *testing.T) {
	clearEnv(t)

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := runCommand(t, newMatchCommand(), "", "--registry", missing, "ALT")
	if !errors.Is(err, registry.ErrRegistryLoad) {
		t.Fatalf("expected ErrRegistryLoad, got %v", err)
	}

	_, err = runCommand(t, newMatchCommand(), "", "--units", missing, "ALT")
	if !errors.Is(err, units.ErrUnitTableLoad) {
		t.Fatalf("expected ErrUnitTableLoad, got %v", err)
	}
}
