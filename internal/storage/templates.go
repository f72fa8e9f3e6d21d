package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/jackc/pgx/v5"
)

// InsertTemplate stores a new workout template.
func (db *DB) InsertTemplate(ctx context.Context, t models.Template) error {
	items, err := json.Marshal(t.Items)
	if err != nil {
		return fmt.Errorf("encoding template items: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO templates (id, name, items) VALUES ($1,$2,$3)`,
		t.ID, t.Name, items)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

// UpdateTemplate replaces a template's name and item list.
func (db *DB) UpdateTemplate(ctx context.Context, t models.Template) error {
	items, err := json.Marshal(t.Items)
	if err != nil {
		return fmt.Errorf("encoding template items: %w", err)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE templates SET name=$2, items=$3 WHERE id=$1`,
		t.ID, t.Name, items)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTemplate removes a template.
func (db *DB) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM templates WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTemplate retrieves one template by id.
func (db *DB) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	row := db.Pool.QueryRow(ctx, `SELECT id, name, items FROM templates WHERE id=$1`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying template: %w", err)
	}
	return t, nil
}

// ListTemplates retrieves all templates.
func (db *DB) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, items FROM templates ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

func scanTemplate(row pgx.Row) (*models.Template, error) {
	var t models.Template
	var items []byte
	if err := row.Scan(&t.ID, &t.Name, &items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &t.Items); err != nil {
		return nil, fmt.Errorf("decoding template items: %w", err)
	}
	return &t, nil
}
