package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"github.com/aurelienperez/grease-the-groove/internal/progression"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// TestParseAt verifies the optional `at` parameter parsing.
func TestParseAt(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/exercises/x/next-target?at=2026-03-15T12:00:00Z", nil)
	at, err := parseAt(req)
	if err != nil {
		t.Fatalf("parseAt: %v", err)
	}
	want := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("at = %v, want %v", at, want)
	}

	req = httptest.NewRequest("GET", "/api/v1/exercises/x/next-target", nil)
	before := time.Now()
	at, err = parseAt(req)
	if err != nil {
		t.Fatalf("parseAt default: %v", err)
	}
	if at.Before(before.Add(-time.Minute)) || at.After(time.Now().Add(time.Minute)) {
		t.Errorf("default at = %v, want roughly now", at)
	}

	req = httptest.NewRequest("GET", "/api/v1/exercises/x/next-target?at=yesterday", nil)
	if _, err = parseAt(req); err == nil {
		t.Error("expected error for invalid at")
	}
}

// TestParseTimeRange verifies range parsing and the last-7-days default.
func TestParseTimeRange(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/exercises/x/logs?start=2026-03-01&end=2026-03-10", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange: %v", err)
	}
	if start.Day() != 1 || start.Month() != 3 {
		t.Errorf("start = %v, want 2026-03-01", start)
	}
	// Date-only end rolls to end of day.
	if end.Day() != 11 {
		t.Errorf("end = %v, want rolled to 2026-03-11T00:00", end)
	}

	req = httptest.NewRequest("GET", "/api/v1/exercises/x/logs", nil)
	start, end, err = parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange default: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 167 || diff.Hours() > 169 {
		t.Errorf("default range = %.0f hours, want ~168", diff.Hours())
	}
}

// TestFixedTarget verifies fixed template targets are wrapped with the
// metric type matching the exercise's kind.
func TestFixedTarget(t *testing.T) {
	tests := []struct {
		name string
		ex   models.Exercise
		f    models.FixedTarget
		want progression.MetricType
	}{
		{
			name: "reps",
			ex:   models.Exercise{Kind: models.KindReps},
			f:    models.FixedTarget{Reps: intPtr(10)},
			want: progression.MetricReps,
		},
		{
			name: "weighted",
			ex:   models.Exercise{Kind: models.KindWeighted},
			f:    models.FixedTarget{Reps: intPtr(5), LoadKg: floatPtr(20)},
			want: progression.MetricWeightedReps,
		},
		{
			name: "isometric",
			ex:   models.Exercise{Kind: models.KindIsometric},
			f:    models.FixedTarget{DurationSec: intPtr(45)},
			want: progression.MetricDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixedTarget(&tt.ex, &tt.f)
			if got.MetricType != tt.want {
				t.Errorf("metricType = %q, want %q", got.MetricType, tt.want)
			}
			if got.Frozen || got.Deload {
				t.Error("fixed targets must not carry engine flags")
			}
			if tt.f.Reps != nil && (got.Reps == nil || *got.Reps != *tt.f.Reps) {
				t.Errorf("reps = %v, want %v", got.Reps, *tt.f.Reps)
			}
		})
	}
}
