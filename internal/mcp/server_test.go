package mcp

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// stubDataSource serves canned data to MCP handlers.
type stubDataSource struct {
	exercises []models.Exercise
	logs      map[string][]models.LogEntry
	profile   models.ProgressionProfile

	inserted []models.LogEntry
	states   map[string]models.GTGState
}

var _ DataSource = (*stubDataSource)(nil)

func (s *stubDataSource) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return s.exercises, nil
}

func (s *stubDataSource) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	for i := range s.exercises {
		if s.exercises[i].ID == id {
			return &s.exercises[i], nil
		}
	}
	return nil, errors.New("exercise not found")
}

func (s *stubDataSource) ListLogs(ctx context.Context, exerciseID string) ([]models.LogEntry, error) {
	return s.logs[exerciseID], nil
}

func (s *stubDataSource) QueryLogs(ctx context.Context, exerciseID string, start, end time.Time) ([]models.LogEntry, error) {
	var out []models.LogEntry
	for _, l := range s.logs[exerciseID] {
		if !l.Timestamp.Before(start) && l.Timestamp.Before(end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubDataSource) InsertLog(ctx context.Context, l models.LogEntry) error {
	s.inserted = append(s.inserted, l)
	s.logs[l.ExerciseID] = append(s.logs[l.ExerciseID], l)
	return nil
}

func (s *stubDataSource) GlobalProfile(ctx context.Context) (models.ProgressionProfile, error) {
	return s.profile, nil
}

func (s *stubDataSource) UpdateGTGState(ctx context.Context, exerciseID string, fn func(models.GTGState) models.GTGState) error {
	if s.states == nil {
		s.states = make(map[string]models.GTGState)
	}
	s.states[exerciseID] = fn(s.states[exerciseID])
	return nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testStub() *stubDataSource {
	return &stubDataSource{
		exercises: []models.Exercise{
			{ID: "pull", Name: "Pull-up", Kind: models.KindReps},
			{ID: "dip", Name: "Weighted Dip", Kind: models.KindWeighted},
		},
		logs: map[string][]models.LogEntry{
			"pull": {
				{ID: "a", ExerciseID: "pull", Timestamp: testNow.Add(-2 * 24 * time.Hour), Status: models.StatusComplete, Reps: intPtr(10), Pain0to10: intPtr(5)},
				{ID: "b", ExerciseID: "pull", Timestamp: testNow.Add(-3 * 24 * time.Hour), Status: models.StatusComplete, Reps: intPtr(12)},
				{ID: "c", ExerciseID: "pull", Timestamp: testNow.Add(-10 * 24 * time.Hour), Status: models.StatusComplete, Reps: intPtr(20)},
			},
			"dip": {
				{ID: "d", ExerciseID: "dip", Timestamp: testNow.Add(-24 * time.Hour), Status: models.StatusComplete, Reps: intPtr(8), LoadKg: floatPtr(40)},
			},
		},
		profile: models.DefaultProfile(),
	}
}

// TestBuildTrainingWeek verifies the cross-exercise rollup: per-kind
// volume in the two rolling weeks, set counts, and pain flags.
func TestBuildTrainingWeek(t *testing.T) {
	h := &handlers{ds: testStub(), log: slog.Default()}

	week, err := h.buildTrainingWeek(context.Background(), testNow)
	if err != nil {
		t.Fatalf("buildTrainingWeek: %v", err)
	}

	if len(week.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(week.Exercises))
	}

	pull := week.Exercises[0]
	if pull.ExerciseID != "pull" {
		t.Fatalf("first entry = %q, want pull", pull.ExerciseID)
	}
	if pull.VolumeThisWeek != 22 {
		t.Errorf("pull this week = %v, want 22", pull.VolumeThisWeek)
	}
	if pull.VolumePrevWeek != 20 {
		t.Errorf("pull prev week = %v, want 20", pull.VolumePrevWeek)
	}
	if pull.SetsThisWeek != 2 {
		t.Errorf("pull sets this week = %d, want 2", pull.SetsThisWeek)
	}
	if pull.PainSummary.DeloadCount != 1 || pull.PainSummary.FreezeDays != 1 {
		t.Errorf("pull pain summary = %+v, want one flagged log", pull.PainSummary)
	}

	dip := week.Exercises[1]
	if dip.VolumeThisWeek != 320 {
		t.Errorf("dip this week = %v, want 320 (8 reps x 40 kg)", dip.VolumeThisWeek)
	}

	if week.TotalSetsThisWeek != 3 {
		t.Errorf("total sets = %d, want 3", week.TotalSetsThisWeek)
	}
}

// TestLogSetInsertsAndValidates verifies the log_set tool inserts a
// valid set and reports engine validation failures without inserting.
func TestLogSetInsertsAndValidates(t *testing.T) {
	ds := testStub()
	h := &handlers{ds: ds, log: slog.Default()}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"exercise_id": "dip",
		"reps":        float64(9),
		"load_kg":     float64(42.5),
		"rir":         float64(2),
	}
	res, err := h.logSet(context.Background(), req)
	if err != nil {
		t.Fatalf("logSet: %v", err)
	}
	if res.IsError {
		t.Fatalf("logSet returned error result: %+v", res)
	}
	if len(ds.inserted) != 1 {
		t.Fatalf("inserted = %d logs, want 1", len(ds.inserted))
	}
	got := ds.inserted[0]
	if got.Reps == nil || *got.Reps != 9 || got.LoadKg == nil || *got.LoadKg != 42.5 {
		t.Errorf("inserted log = %+v, want 9 reps at 42.5 kg", got)
	}
	if got.Status != models.StatusComplete {
		t.Errorf("status = %q, want complete", got.Status)
	}

	// Weighted sets without a load fail engine validation.
	bad := mcp.CallToolRequest{}
	bad.Params.Arguments = map[string]any{
		"exercise_id": "dip",
		"reps":        float64(9),
	}
	if _, err := h.logSet(context.Background(), bad); err != nil {
		t.Fatalf("logSet invalid: %v", err)
	}
	if len(ds.inserted) != 1 {
		t.Errorf("invalid set was inserted, total = %d", len(ds.inserted))
	}
}

// TestDefaultTimeRange verifies time range defaults (last 7 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 7 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 167 || diff.Hours() > 169 { // ~168 hours = 7 days
		t.Errorf("default range = %.0f hours, want ~168", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2026 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	if end.Year() != 2026 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2026-01-31", end)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestOptArgs verifies optional numeric argument extraction.
func TestOptArgs(t *testing.T) {
	args := map[string]any{"reps": float64(8), "load_kg": float64(42.5)}

	if v := optInt(args, "reps"); v == nil || *v != 8 {
		t.Errorf("optInt(reps) = %v, want 8", v)
	}
	if v := optInt(args, "rir"); v != nil {
		t.Errorf("optInt(missing) = %v, want nil", *v)
	}
	if v := optFloat(args, "load_kg"); v == nil || *v != 42.5 {
		t.Errorf("optFloat(load_kg) = %v, want 42.5", v)
	}
	if v := optFloat(args, "pain"); v != nil {
		t.Errorf("optFloat(missing) = %v, want nil", *v)
	}
}
