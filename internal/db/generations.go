package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Generation statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Generation is one recorded generation attempt.
type Generation struct {
	ID           uuid.UUID `json:"id"`
	ProspectName string    `json:"prospect_name"`
	CompanyName  string    `json:"company_name"`
	Mode         string    `json:"mode"`
	Style        string    `json:"style,omitempty"`
	Model        string    `json:"model"`
	Provider     string    `json:"provider"`
	Status       string    `json:"status"`
	Subject      string    `json:"subject,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordGeneration stores one generation attempt and returns its id.
func (db *DB) RecordGeneration(ctx context.Context, g Generation) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, nil
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO generations (prospect_name, company_name, mode, style, model, provider, status, subject)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		g.ProspectName, g.CompanyName, g.Mode, g.Style, g.Model, g.Provider, g.Status, g.Subject,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record generation: %w", err)
	}
	return id, nil
}

// GetGeneration retrieves one generation by id, or nil when absent.
func (db *DB) GetGeneration(ctx context.Context, id uuid.UUID) (*Generation, error) {
	if db == nil {
		return nil, nil
	}

	var g Generation
	err := db.pool.QueryRow(ctx,
		`SELECT id, prospect_name, company_name, mode, style, model, provider, status, subject, created_at
		 FROM generations WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.ProspectName, &g.CompanyName, &g.Mode, &g.Style, &g.Model, &g.Provider, &g.Status, &g.Subject, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return &g, nil
}

// GenerationFilters holds optional filters for listing generations.
type GenerationFilters struct {
	Company string
	Mode    string
	Status  string
	Limit   int
}

// ListGenerations retrieves recent generations, newest first.
func (db *DB) ListGenerations(ctx context.Context, filters GenerationFilters) ([]Generation, error) {
	if db == nil {
		return nil, nil
	}
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	query := `SELECT id, prospect_name, company_name, mode, style, model, provider, status, subject, created_at
		FROM generations WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Company != "" {
		query += fmt.Sprintf(" AND company_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}
	if filters.Mode != "" {
		query += fmt.Sprintf(" AND mode = $%d", argNum)
		args = append(args, filters.Mode)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var generations []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.ProspectName, &g.CompanyName, &g.Mode, &g.Style, &g.Model, &g.Provider, &g.Status, &g.Subject, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		generations = append(generations, g)
	}
	return generations, nil
}
