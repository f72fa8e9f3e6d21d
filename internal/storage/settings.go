package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/jackc/pgx/v5"
)

func defaultSettings() models.Settings {
	return models.Settings{Profile: models.DefaultProfile()}
}

// GetSettings retrieves the singleton settings row, or nil when no row
// has been stored yet.
func (db *DB) GetSettings(ctx context.Context) (*models.Settings, error) {
	var doc []byte
	err := db.Pool.QueryRow(ctx, `SELECT doc FROM settings WHERE id = 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}

	var s models.Settings
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return &s, nil
}

// PutSettings stores the singleton settings row, replacing any prior value.
func (db *DB) PutSettings(ctx context.Context, s models.Settings) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO settings (id, doc) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		doc)
	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// GlobalProfile returns the stored global progression profile, falling
// back to the built-in default when nothing is stored.
func (db *DB) GlobalProfile(ctx context.Context) (models.ProgressionProfile, error) {
	s, err := db.GetSettings(ctx)
	if err != nil {
		return models.ProgressionProfile{}, err
	}
	if s == nil {
		return models.DefaultProfile(), nil
	}
	return s.Profile, nil
}
