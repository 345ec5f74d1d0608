/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sarthak-egenome/bloodpdf-parser/reference"
)

// SyncReferenceRanges upserts every range of book. The book is the source
// of truth; rows are updated in place on each sync.
func SyncReferenceRanges(ctx context.Context, book *reference.Book) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	definitions := book.Ranges()
	logger.Infof("Syncing %d reference range definitions to database...", len(definitions))

	query := `
		INSERT INTO reference_ranges (parameter_id, age_range, gender, reference_min, reference_max, optimal_min, optimal_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (parameter_id, age_range, gender)
		DO UPDATE SET
			reference_min = EXCLUDED.reference_min,
			reference_max = EXCLUDED.reference_max,
			optimal_min = EXCLUDED.optimal_min,
			optimal_max = EXCLUDED.optimal_max,
			updated_at = now()
	`

	batch := &pgx.Batch{}
	for _, def := range definitions {
		batch.Queue(query,
			def.ParameterID, string(def.AgeRange), string(def.Gender),
			def.ReferenceMin, def.ReferenceMax,
			def.OptimalMin, def.OptimalMax,
		)
	}

	results := pool.SendBatch(ctx, batch)
	for _, def := range definitions {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to sync reference range for %s/%s/%s: %w",
				def.ParameterID, def.AgeRange, def.Gender, err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to sync reference ranges: %w", err)
	}

	logger.Infof("Successfully synced %d reference ranges", len(definitions))

	return nil
}

// GetReferenceRange retrieves the stored range for a parameter. Like
// reference.Book.Lookup it prefers the gender over unisex, then the age
// band over all ages. It returns nil when no range is stored.
func GetReferenceRange(ctx context.Context, parameterID string, ageRange reference.AgeRange, gender reference.Gender) (*ReferenceRange, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, parameter_id, age_range, gender, reference_min, reference_max, optimal_min, optimal_max, created_at, updated_at
		FROM reference_ranges
		WHERE parameter_id = $1 AND age_range = $2 AND gender = $3
	`

	for _, age := range []reference.AgeRange{ageRange, reference.AgeAll} {
		for _, g := range []reference.Gender{gender, reference.GenderUnisex} {
			var (
				rr          ReferenceRange
				storedAge   string
				storedGender string
			)

			err := pool.QueryRow(ctx, query, parameterID, string(age), string(g)).Scan(
				&rr.ID, &rr.ParameterID, &storedAge, &storedGender,
				&rr.ReferenceMin, &rr.ReferenceMax, &rr.OptimalMin, &rr.OptimalMax,
				&rr.CreatedAt, &rr.UpdatedAt,
			)
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to get reference range: %w", err)
			}

			rr.AgeRange = reference.AgeRange(storedAge)
			rr.Gender = reference.Gender(storedGender)

			return &rr, nil
		}
	}

	return nil, nil
}
