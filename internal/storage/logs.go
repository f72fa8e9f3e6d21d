package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/jackc/pgx/v5"
)

const logColumns = `id, exercise_id, ts, status, reps, load_kg, duration_sec, rir, pain`

// InsertLog appends a log entry. Entries are immutable: there is no
// update path, only insert and delete.
func (db *DB) InsertLog(ctx context.Context, l models.LogEntry) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO logs (`+logColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		l.ID, l.ExerciseID, l.Timestamp, l.Status,
		l.Reps, l.LoadKg, l.DurationSec, l.RIR, l.Pain0to10)
	if err != nil {
		return fmt.Errorf("inserting log: %w", err)
	}
	return nil
}

// DeleteLog removes a log entry.
func (db *DB) DeleteLog(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM logs WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLog retrieves one log entry by id.
func (db *DB) GetLog(ctx context.Context, id string) (*models.LogEntry, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+logColumns+` FROM logs WHERE id=$1`, id)
	l, err := scanLog(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying log: %w", err)
	}
	return l, nil
}

// ListLogs retrieves the full log history for one exercise, newest first.
func (db *DB) ListLogs(ctx context.Context, exerciseID string) ([]models.LogEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+logColumns+` FROM logs WHERE exercise_id=$1 ORDER BY ts DESC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	defer rows.Close()
	return scanLogs(rows)
}

// QueryLogs retrieves log entries in a time range, optionally filtered
// to one exercise. Newest first.
func (db *DB) QueryLogs(ctx context.Context, exerciseID string, start, end time.Time) ([]models.LogEntry, error) {
	var rows pgx.Rows
	var err error
	if exerciseID != "" {
		rows, err = db.Pool.Query(ctx,
			`SELECT `+logColumns+` FROM logs
			 WHERE exercise_id=$1 AND ts >= $2 AND ts < $3 ORDER BY ts DESC`,
			exerciseID, start, end)
	} else {
		rows, err = db.Pool.Query(ctx,
			`SELECT `+logColumns+` FROM logs
			 WHERE ts >= $1 AND ts < $2 ORDER BY ts DESC`,
			start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	defer rows.Close()
	return scanLogs(rows)
}

// ListAllLogs retrieves every log entry, oldest first, for export.
func (db *DB) ListAllLogs(ctx context.Context) ([]models.LogEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+logColumns+` FROM logs ORDER BY ts ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	defer rows.Close()
	return scanLogs(rows)
}

func scanLog(row pgx.Row) (*models.LogEntry, error) {
	var l models.LogEntry
	err := row.Scan(&l.ID, &l.ExerciseID, &l.Timestamp, &l.Status,
		&l.Reps, &l.LoadKg, &l.DurationSec, &l.RIR, &l.Pain0to10)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLogs(rows pgx.Rows) ([]models.LogEntry, error) {
	var result []models.LogEntry
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning log: %w", err)
		}
		result = append(result, *l)
	}
	return result, rows.Err()
}
