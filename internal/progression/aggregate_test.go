package progression

import (
	"testing"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func ago(d time.Duration) time.Time { return testNow.Add(-d) }

func repLog(ts time.Time, reps int) models.LogEntry {
	return models.LogEntry{
		ID:         "log-" + ts.Format(time.RFC3339),
		ExerciseID: "ex-1",
		Timestamp:  ts,
		Status:     models.StatusComplete,
		Reps:       intPtr(reps),
	}
}

func repVolume(l models.LogEntry) float64 {
	if l.Reps == nil {
		return 0
	}
	return float64(*l.Reps)
}

func TestWeeklyVolumeWindows(t *testing.T) {
	logs := []models.LogEntry{
		repLog(ago(time.Hour), 10),         // this week
		repLog(ago(6*24*time.Hour), 20),    // this week
		repLog(ago(8*24*time.Hour), 30),    // previous week
		repLog(ago(13*24*time.Hour), 40),   // previous week
		repLog(ago(20*24*time.Hour), 1000), // outside both windows
	}

	thisWeek, prevWeek := WeeklyVolume(logs, testNow, repVolume)
	if thisWeek != 30 {
		t.Errorf("thisWeek = %v, want 30", thisWeek)
	}
	if prevWeek != 70 {
		t.Errorf("prevWeek = %v, want 70", prevWeek)
	}
}

func TestWeeklyVolumeCountsSkippedLogs(t *testing.T) {
	skipped := repLog(ago(time.Hour), 10)
	skipped.Status = models.StatusSkipped

	thisWeek, _ := WeeklyVolume([]models.LogEntry{skipped}, testNow, repVolume)
	if thisWeek != 10 {
		t.Errorf("thisWeek = %v, want 10 (skipped logs still count toward volume)", thisWeek)
	}
}

func TestWeeklyVolumeEmpty(t *testing.T) {
	thisWeek, prevWeek := WeeklyVolume(nil, testNow, repVolume)
	if thisWeek != 0 || prevWeek != 0 {
		t.Errorf("empty history: got (%v, %v), want (0, 0)", thisWeek, prevWeek)
	}
}

func TestSummarizePainFlags(t *testing.T) {
	withPain := func(ts time.Time, pain int) models.LogEntry {
		l := repLog(ts, 10)
		l.Pain0to10 = intPtr(pain)
		return l
	}

	logs := []models.LogEntry{
		withPain(ago(1*24*time.Hour), 7),  // deload + freeze
		withPain(ago(2*24*time.Hour), 5),  // deload + freeze
		withPain(ago(3*24*time.Hour), 3),  // freeze only
		withPain(ago(4*24*time.Hour), 2),  // neither
		repLog(ago(5*24*time.Hour), 10),   // no pain recorded
	}

	s := SummarizePainFlags(logs)
	if s.DeloadCount != 2 {
		t.Errorf("DeloadCount = %d, want 2", s.DeloadCount)
	}
	if s.FreezeDays != 3 {
		t.Errorf("FreezeDays = %d, want 3", s.FreezeDays)
	}
	// 5 distinct days over the 4-week normalization: round(5/4*7) = 9.
	if s.ActiveDaysPerWeek != 9 {
		t.Errorf("ActiveDaysPerWeek = %d, want 9", s.ActiveDaysPerWeek)
	}
}

func TestSummarizePainFlagsEmpty(t *testing.T) {
	s := SummarizePainFlags(nil)
	if s.DeloadCount != 0 || s.FreezeDays != 0 || s.ActiveDaysPerWeek != 0 {
		t.Errorf("empty history: got %+v, want zeroes", s)
	}
}
