/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sarthak-egenome/bloodpdf-parser/pipeline"
	"github.com/sarthak-egenome/bloodpdf-parser/reference"
)

// SaveReportInput holds a resolved batch to persist
type SaveReportInput struct {
	Source     string
	Strictness int
	Profile    *reference.Profile
	Results    []pipeline.Result
}

// SaveReport stores a report with its resolved and unmatched entries in a
// single transaction and returns the new report ID. A negative profile age
// is stored as unknown.
func SaveReport(ctx context.Context, in SaveReportInput) (uuid.UUID, error) {
	if pool == nil {
		return uuid.Nil, ErrDatabaseConnectionNotInitialized
	}

	if len(in.Results) == 0 {
		return uuid.Nil, ErrEmptyReport
	}

	var (
		age    *int
		gender *string
	)

	if in.Profile != nil {
		g := string(in.Profile.Gender)
		gender = &g

		if in.Profile.Age >= 0 {
			a := in.Profile.Age
			age = &a
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	reportID := uuid.New()

	_, err = tx.Exec(ctx, `
		INSERT INTO lab_reports (id, source, strictness, patient_age, patient_gender, entry_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, reportID, in.Source, in.Strictness, age, gender, len(in.Results))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create lab report: %w", err)
	}

	batch := &pgx.Batch{}

	for _, r := range in.Results {
		switch {
		case r.Resolved != nil:
			res := r.Resolved

			var flag *string
			if res.Flag != "" {
				f := string(res.Flag)
				flag = &f
			}

			batch.Queue(`
				INSERT INTO lab_results (id, report_id, entry_index, raw_label, parameter_id, value, unit, match_tier, confidence, unit_assumed, flag)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			`, uuid.New(), reportID, r.Index, res.RawLabel, res.ParameterID, res.Value, res.Unit,
				res.MatchTier.String(), res.Confidence, res.UnitAssumed, flag)
		case r.Unmatched != nil:
			un := r.Unmatched

			var detail *string
			if un.Detail != "" {
				detail = &un.Detail
			}

			batch.Queue(`
				INSERT INTO unmatched_entries (id, report_id, entry_index, raw_label, reason, detail)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, uuid.New(), reportID, r.Index, un.RawLabel, string(un.Reason), detail)
		}
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return uuid.Nil, fmt.Errorf("failed to store report entry: %w", err)
		}
	}

	if err := results.Close(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to store report entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit lab report: %w", err)
	}

	logger.Info("Saved lab report", "id", reportID, "source", in.Source, "entries", len(in.Results))

	return reportID, nil
}

const reportColumns = `id, source, strictness, patient_age, patient_gender, entry_count, created_at`

func scanReport(row pgx.Row) (*LabReport, error) {
	var (
		report LabReport
		gender *string
	)

	if err := row.Scan(&report.ID, &report.Source, &report.Strictness, &report.PatientAge, &gender, &report.EntryCount, &report.CreatedAt); err != nil {
		return nil, err
	}

	if gender != nil {
		g := reference.Gender(*gender)
		report.PatientGender = &g
	}

	return &report, nil
}

// GetReport retrieves a report by ID
func GetReport(ctx context.Context, id uuid.UUID) (*LabReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	row := pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM lab_reports WHERE id = $1`, id)

	report, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab report: %w", err)
	}

	return report, nil
}

// ListReports returns the most recent reports, newest first
func ListReports(ctx context.Context, limit int) ([]LabReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = 50
	}

	rows, err := pool.Query(ctx, `SELECT `+reportColumns+` FROM lab_reports ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab reports: %w", err)
	}
	defer rows.Close()

	var reports []LabReport

	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lab report: %w", err)
		}

		reports = append(reports, *report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab reports: %w", err)
	}

	return reports, nil
}

// ListReportResults returns the resolved entries of a report in input order
func ListReportResults(ctx context.Context, reportID uuid.UUID) ([]LabResult, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, report_id, entry_index, raw_label, parameter_id, value, unit, match_tier, confidence, unit_assumed, flag, created_at
		FROM lab_results
		WHERE report_id = $1
		ORDER BY entry_index
	`

	rows, err := pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}
	defer rows.Close()

	var results []LabResult

	for rows.Next() {
		var r LabResult
		if err := rows.Scan(&r.ID, &r.ReportID, &r.EntryIndex, &r.RawLabel, &r.ParameterID, &r.Value, &r.Unit,
			&r.MatchTier, &r.Confidence, &r.UnitAssumed, &r.Flag, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lab result: %w", err)
		}

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab results: %w", err)
	}

	return results, nil
}

// ListUnmatchedEntries returns the unmatched entries of a report in input order
func ListUnmatchedEntries(ctx context.Context, reportID uuid.UUID) ([]UnmatchedEntry, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, report_id, entry_index, raw_label, reason, detail, created_at
		FROM unmatched_entries
		WHERE report_id = $1
		ORDER BY entry_index
	`

	rows, err := pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unmatched entries: %w", err)
	}
	defer rows.Close()

	var entries []UnmatchedEntry

	for rows.Next() {
		var e UnmatchedEntry
		if err := rows.Scan(&e.ID, &e.ReportID, &e.EntryIndex, &e.RawLabel, &e.Reason, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unmatched entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unmatched entries: %w", err)
	}

	return entries, nil
}
