// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sarthak-egenome/bloodpdf-parser/matcher"
	"github.com/sarthak-egenome/bloodpdf-parser/pipeline"
	"github.com/sarthak-egenome/bloodpdf-parser/reference"
)

func testContext() context.Context {
	return context.Background()
}

func sampleResults() []pipeline.Result {
	return []pipeline.Result{
		{
			Index: 0,
			Resolved: &pipeline.ResolvedEntry{
				RawLabel:    "S.G.P.T",
				ParameterID: "alt",
				DisplayName: "ALT",
				Value:       45,
				Unit:        "U/L",
				MatchTier:   matcher.TierSynonymExact,
				Confidence:  0.9,
				Flag:        reference.FlagHigh,
			},
		},
		{
			Index: 1,
			Unmatched: &pipeline.UnmatchedEntry{
				RawLabel: "Random Unrelated Text",
				Reason:   pipeline.ReasonNoCandidate,
			},
		},
		{
			Index: 2,
			Resolved: &pipeline.ResolvedEntry{
				RawLabel:    "Fasting Blood Sugar",
				ParameterID: "glucose_fasting",
				DisplayName: "Fasting Glucose",
				Value:       99.1,
				Unit:        "mg/dL",
				MatchTier:   matcher.TierExact,
				Confidence:  1,
				UnitAssumed: true,
			},
		},
		{
			Index: 3,
			Unmatched: &pipeline.UnmatchedEntry{
				RawLabel: "Creatinine",
				Reason:   pipeline.ReasonIncompatibleUnit,
				Detail:   "bananas",
			},
		},
	}
}

func mustSaveReport(t *testing.T, in SaveReportInput) uuid.UUID {
	t.Helper()
	id, err := SaveReport(testContext(), in)
	if err != nil {
		t.Fatalf("failed to save report: %v", err)
	}
	return id
}
