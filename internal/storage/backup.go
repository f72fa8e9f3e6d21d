package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

// ExportState reads the complete application state for the JSON backup.
func (db *DB) ExportState(ctx context.Context) (*models.Backup, error) {
	exercises, err := db.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting exercises: %w", err)
	}
	logs, err := db.ListAllLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting logs: %w", err)
	}
	templates, err := db.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting templates: %w", err)
	}
	settings, err := db.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting settings: %w", err)
	}

	b := &models.Backup{
		Exercises: exercises,
		Logs:      logs,
		Templates: templates,
		Settings:  defaultSettings(),
	}
	if settings != nil {
		b.Settings = *settings
	}
	if b.Exercises == nil {
		b.Exercises = []models.Exercise{}
	}
	if b.Logs == nil {
		b.Logs = []models.LogEntry{}
	}
	if b.Templates == nil {
		b.Templates = []models.Template{}
	}
	return b, nil
}

// ImportState replaces the complete application state from a backup in
// a single transaction. Nothing is touched when any step fails.
func (db *DB) ImportState(ctx context.Context, b *models.Backup) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"logs", "templates", "exercises", "settings"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, ex := range b.Exercises {
		tags, fields, profile, err := marshalExerciseJSON(ex)
		if err != nil {
			return err
		}
		var repMin, repMax, durMin, durMax *int
		if ex.RepRange != nil {
			repMin, repMax = &ex.RepRange.Min, &ex.RepRange.Max
		}
		if ex.DurationRangeSec != nil {
			durMin, durMax = &ex.DurationRangeSec.Min, &ex.DurationRangeSec.Max
		}
		var gtgIntensity *float64
		var gtgDeloadUntil *time.Time
		if ex.GTG != nil {
			gtgIntensity = &ex.GTG.Intensity
			gtgDeloadUntil = ex.GTG.DeloadUntil
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO exercises (`+exerciseColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
			ex.ID, ex.Name, ex.Category, tags, ex.Notes, fields, ex.Kind,
			repMin, repMax, zeroNil(ex.RepIncrement), zeroNil(ex.MinRepsFloor),
			zeroNilF(ex.LoadIncrementKg), ex.ProgressionPriority,
			durMin, durMax, zeroNil(ex.TimeIncrementSec),
			ex.Mode, gtgIntensity, gtgDeloadUntil, profile, ex.CreatedAt)
		if err != nil {
			return fmt.Errorf("importing exercise %s: %w", ex.ID, err)
		}
	}

	for _, l := range b.Logs {
		_, err := tx.Exec(ctx,
			`INSERT INTO logs (`+logColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			l.ID, l.ExerciseID, l.Timestamp, l.Status,
			l.Reps, l.LoadKg, l.DurationSec, l.RIR, l.Pain0to10)
		if err != nil {
			return fmt.Errorf("importing log %s: %w", l.ID, err)
		}
	}

	for _, t := range b.Templates {
		items, err := json.Marshal(t.Items)
		if err != nil {
			return fmt.Errorf("encoding template items: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO templates (id, name, items) VALUES ($1,$2,$3)`,
			t.ID, t.Name, items)
		if err != nil {
			return fmt.Errorf("importing template %s: %w", t.ID, err)
		}
	}

	doc, err := json.Marshal(b.Settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO settings (id, doc) VALUES (1, $1)`, doc); err != nil {
		return fmt.Errorf("importing settings: %w", err)
	}

	return tx.Commit(ctx)
}
