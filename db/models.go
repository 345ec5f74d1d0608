/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarthak-egenome/bloodpdf-parser/reference"
)

// LabReport is one normalized report
type LabReport struct {
	ID            uuid.UUID         `db:"id"`
	Source        string            `db:"source"`
	Strictness    int               `db:"strictness"`
	PatientAge    *int              `db:"patient_age"`
	PatientGender *reference.Gender `db:"patient_gender"`
	EntryCount    int               `db:"entry_count"`
	CreatedAt     time.Time         `db:"created_at"`
}

// LabResult is a resolved entry of a report, in canonical units
type LabResult struct {
	ID          uuid.UUID `db:"id"`
	ReportID    uuid.UUID `db:"report_id"`
	EntryIndex  int       `db:"entry_index"`
	RawLabel    string    `db:"raw_label"`
	ParameterID string    `db:"parameter_id"`
	Value       float64   `db:"value"`
	Unit        string    `db:"unit"`
	MatchTier   string    `db:"match_tier"`
	Confidence  float64   `db:"confidence"`
	UnitAssumed bool      `db:"unit_assumed"`
	Flag        *string   `db:"flag"`
	CreatedAt   time.Time `db:"created_at"`
}

// UnmatchedEntry is an entry of a report that could not be resolved
type UnmatchedEntry struct {
	ID         uuid.UUID `db:"id"`
	ReportID   uuid.UUID `db:"report_id"`
	EntryIndex int       `db:"entry_index"`
	RawLabel   string    `db:"raw_label"`
	Reason     string    `db:"reason"`
	Detail     *string   `db:"detail"`
	CreatedAt  time.Time `db:"created_at"`
}

// ReferenceRange represents reference and optimal ranges for a parameter
type ReferenceRange struct {
	ID           uuid.UUID          `db:"id"`
	ParameterID  string             `db:"parameter_id"`
	AgeRange     reference.AgeRange `db:"age_range"`
	Gender       reference.Gender   `db:"gender"`
	ReferenceMin *float64           `db:"reference_min"`
	ReferenceMax *float64           `db:"reference_max"`
	OptimalMin   *float64           `db:"optimal_min"`
	OptimalMax   *float64           `db:"optimal_max"`
	CreatedAt    time.Time          `db:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at"`
}

// Range converts the stored row back into a reference.Range.
func (rr ReferenceRange) Range() reference.Range {
	return reference.Range{
		ParameterID:  rr.ParameterID,
		AgeRange:     rr.AgeRange,
		Gender:       rr.Gender,
		ReferenceMin: rr.ReferenceMin,
		ReferenceMax: rr.ReferenceMax,
		OptimalMin:   rr.OptimalMin,
		OptimalMax:   rr.OptimalMax,
	}
}
