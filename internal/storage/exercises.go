package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

const exerciseColumns = `id, name, category, tags, notes, fields, kind,
	 rep_min, rep_max, rep_increment, min_reps_floor,
	 load_increment_kg, progression_priority,
	 duration_min_sec, duration_max_sec, time_increment_sec,
	 mode, gtg_intensity, gtg_deload_until, profile, created_at`

// InsertExercise stores a new exercise.
func (db *DB) InsertExercise(ctx context.Context, ex models.Exercise) error {
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

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO exercises (`+exerciseColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		ex.ID, ex.Name, ex.Category, tags, ex.Notes, fields, ex.Kind,
		repMin, repMax, zeroNil(ex.RepIncrement), zeroNil(ex.MinRepsFloor),
		zeroNilF(ex.LoadIncrementKg), ex.ProgressionPriority,
		durMin, durMax, zeroNil(ex.TimeIncrementSec),
		ex.Mode, gtgIntensity, gtgDeloadUntil, profile, ex.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

// UpdateExercise replaces a stored exercise's attributes.
func (db *DB) UpdateExercise(ctx context.Context, ex models.Exercise) error {
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

	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET name=$2, category=$3, tags=$4, notes=$5, fields=$6, kind=$7,
		 rep_min=$8, rep_max=$9, rep_increment=$10, min_reps_floor=$11,
		 load_increment_kg=$12, progression_priority=$13,
		 duration_min_sec=$14, duration_max_sec=$15, time_increment_sec=$16,
		 mode=$17, gtg_intensity=$18, gtg_deload_until=$19, profile=$20
		 WHERE id=$1`,
		ex.ID, ex.Name, ex.Category, tags, ex.Notes, fields, ex.Kind,
		repMin, repMax, zeroNil(ex.RepIncrement), zeroNil(ex.MinRepsFloor),
		zeroNilF(ex.LoadIncrementKg), ex.ProgressionPriority,
		durMin, durMax, zeroNil(ex.TimeIncrementSec),
		ex.Mode, gtgIntensity, gtgDeloadUntil, profile)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExercise removes an exercise; its logs cascade.
func (db *DB) DeleteExercise(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetExercise retrieves one exercise by id.
func (db *DB) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id=$1`, id)
	ex, err := scanExercise(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return ex, nil
}

// ListExercises retrieves all exercises, oldest first.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, *ex)
	}
	return result, rows.Err()
}

// UpdateGTGState applies fn to the exercise's persisted GTG state under
// a row lock, serializing concurrent log-completion events for the same
// exercise so no adjustment is lost.
func (db *DB) UpdateGTGState(ctx context.Context, exerciseID string, fn func(models.GTGState) models.GTGState) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning gtg update: %w", err)
	}
	defer tx.Rollback(ctx)

	var intensity *float64
	var deloadUntil *time.Time
	err = tx.QueryRow(ctx,
		`SELECT gtg_intensity, gtg_deload_until FROM exercises WHERE id=$1 FOR UPDATE`,
		exerciseID).Scan(&intensity, &deloadUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("locking exercise row: %w", err)
	}

	state := models.GTGState{DeloadUntil: deloadUntil}
	if intensity != nil {
		state.Intensity = *intensity
	}
	state = fn(state)

	_, err = tx.Exec(ctx,
		`UPDATE exercises SET gtg_intensity=$2, gtg_deload_until=$3 WHERE id=$1`,
		exerciseID, state.Intensity, state.DeloadUntil)
	if err != nil {
		return fmt.Errorf("writing gtg state: %w", err)
	}
	return tx.Commit(ctx)
}

func marshalExerciseJSON(ex models.Exercise) (tags, fields, profile []byte, err error) {
	if len(ex.Tags) > 0 {
		if tags, err = json.Marshal(ex.Tags); err != nil {
			return nil, nil, nil, fmt.Errorf("encoding tags: %w", err)
		}
	}
	if len(ex.Fields) > 0 {
		if fields, err = json.Marshal(ex.Fields); err != nil {
			return nil, nil, nil, fmt.Errorf("encoding fields: %w", err)
		}
	}
	if ex.Profile != nil {
		if profile, err = json.Marshal(ex.Profile); err != nil {
			return nil, nil, nil, fmt.Errorf("encoding profile: %w", err)
		}
	}
	return tags, fields, profile, nil
}

func scanExercise(row pgx.Row) (*models.Exercise, error) {
	var ex models.Exercise
	var tags, fields, profile []byte
	var repMin, repMax, repInc, repsFloor, durMin, durMax, timeInc *int
	var loadInc, gtgIntensity *float64
	var gtgDeloadUntil *time.Time

	err := row.Scan(&ex.ID, &ex.Name, &ex.Category, &tags, &ex.Notes, &fields, &ex.Kind,
		&repMin, &repMax, &repInc, &repsFloor,
		&loadInc, &ex.ProgressionPriority,
		&durMin, &durMax, &timeInc,
		&ex.Mode, &gtgIntensity, &gtgDeloadUntil, &profile, &ex.CreatedAt)
	if err != nil {
		return nil, err
	}

	if tags != nil {
		if err := json.Unmarshal(tags, &ex.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
	}
	if fields != nil {
		if err := json.Unmarshal(fields, &ex.Fields); err != nil {
			return nil, fmt.Errorf("decoding fields: %w", err)
		}
	}
	if profile != nil {
		ex.Profile = &models.ProgressionProfile{}
		if err := json.Unmarshal(profile, ex.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}
	}

	if repMin != nil && repMax != nil {
		ex.RepRange = &models.IntRange{Min: *repMin, Max: *repMax}
	}
	if durMin != nil && durMax != nil {
		ex.DurationRangeSec = &models.IntRange{Min: *durMin, Max: *durMax}
	}
	if repInc != nil {
		ex.RepIncrement = *repInc
	}
	if repsFloor != nil {
		ex.MinRepsFloor = *repsFloor
	}
	if loadInc != nil {
		ex.LoadIncrementKg = *loadInc
	}
	if timeInc != nil {
		ex.TimeIncrementSec = *timeInc
	}
	if gtgIntensity != nil || gtgDeloadUntil != nil {
		ex.GTG = &models.GTGState{DeloadUntil: gtgDeloadUntil}
		if gtgIntensity != nil {
			ex.GTG.Intensity = *gtgIntensity
		}
	}

	return &ex, nil
}

func zeroNil(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func zeroNilF(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
