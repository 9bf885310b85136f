// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

// SQLRepository stores decisions in the decision table. It implements
// store.Repository.
type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Insert(ctx context.Context, d models.Decision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO decision (id, title, creator_id, status, blind_voting, final_option_text, version, created_unix_nano, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, d.ID, d.Title, d.CreatorID, string(d.Status), d.BlindVoting, finalText(d), d.Version, d.CreatedAt.UnixNano(), string(payload))
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (models.Decision, error) {
	var payload string
	var version int64
	err := r.db.QueryRowContext(ctx, "SELECT payload, version FROM decision WHERE id = $1", id).Scan(&payload, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Decision{}, fmt.Errorf("%w: decision %s", decision.ErrNotFound, id)
	}
	if err != nil {
		return models.Decision{}, fmt.Errorf("query decision: %w", err)
	}
	return decode(payload, version)
}

func (r *SQLRepository) List(ctx context.Context, status models.Status) ([]models.Decision, error) {
	query := "SELECT payload, version FROM decision ORDER BY created_unix_nano DESC, id"
	var args []any
	if status != "" {
		query = "SELECT payload, version FROM decision WHERE status = $1 ORDER BY created_unix_nano DESC, id"
		args = append(args, string(status))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	decisions := []models.Decision{}
	for rows.Next() {
		var payload string
		var version int64
		if err := rows.Scan(&payload, &version); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		d, err := decode(payload, version)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return decisions, nil
}

// Update writes d only if the row is still at expectedVersion.
func (r *SQLRepository) Update(ctx context.Context, d models.Decision, expectedVersion int64) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE decision
		SET status = $1, final_option_text = $2, version = $3, payload = $4
		WHERE id = $5 AND version = $6
	`, string(d.Status), finalText(d), d.Version, string(payload), d.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("update decision: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update decision: %w", err)
	}
	if n == 1 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM decision WHERE id = $1", d.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: decision %s", decision.ErrNotFound, d.ID)
	}
	if err != nil {
		return fmt.Errorf("query decision: %w", err)
	}
	return fmt.Errorf("%w: decision %s changed since version %d", store.ErrConflict, d.ID, expectedVersion)
}

func decode(payload string, version int64) (models.Decision, error) {
	var d models.Decision
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return models.Decision{}, fmt.Errorf("unmarshal decision: %w", err)
	}
	if d.Ballots == nil {
		d.Ballots = map[string]string{}
	}
	// The column is authoritative for compare-and-set.
	d.Version = version
	return d, nil
}

func finalText(d models.Decision) sql.NullString {
	if d.FinalOptionText == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *d.FinalOptionText, Valid: true}
}
