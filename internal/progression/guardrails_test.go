package progression

import (
	"testing"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

func TestGuardrailWorkingSet(t *testing.T) {
	old := repLog(ago(20*24*time.Hour), 8)
	skipped := repLog(ago(time.Hour), 8)
	skipped.Status = models.StatusSkipped
	recent := repLog(ago(2*24*time.Hour), 8)
	newest := repLog(ago(time.Minute), 12)

	g := evaluateGuardrails([]models.LogEntry{old, skipped, recent, newest}, testNow, models.DefaultProfile())

	if len(g.working) != 2 {
		t.Fatalf("working set size = %d, want 2 (complete, last 14 days)", len(g.working))
	}
	if *g.working[0].Reps != 12 {
		t.Errorf("working set not newest-first: first entry reps = %d, want 12", *g.working[0].Reps)
	}
	if g.frozen || g.deload {
		t.Errorf("no pain signals: frozen=%v deload=%v, want false", g.frozen, g.deload)
	}
}

func TestGuardrailWorkingSetCap(t *testing.T) {
	var logs []models.LogEntry
	for i := 0; i < 40; i++ {
		logs = append(logs, repLog(ago(time.Duration(i)*time.Hour), 8))
	}

	g := evaluateGuardrails(logs, testNow, models.DefaultProfile())
	if len(g.working) != 30 {
		t.Errorf("working set size = %d, want 30 (cap)", len(g.working))
	}
}

func TestGuardrailPainHigh(t *testing.T) {
	l := repLog(ago(time.Hour), 10)
	l.Pain0to10 = intPtr(7)

	g := evaluateGuardrails([]models.LogEntry{l}, testNow, models.DefaultProfile())
	if !g.deload || !g.frozen {
		t.Errorf("pain 7 >= painReduce 5: deload=%v frozen=%v, want true", g.deload, g.frozen)
	}
	if len(g.notes) == 0 {
		t.Error("expected a deload explanation note")
	}
}

func TestGuardrailPainWarnStreak(t *testing.T) {
	profile := models.DefaultProfile() // painWarn=3, painReduce=5, freezeDaysIfPain=3

	mk := func(pains ...int) []models.LogEntry {
		var logs []models.LogEntry
		for i, p := range pains {
			l := repLog(ago(time.Duration(i+1)*24*time.Hour), 10)
			l.Pain0to10 = intPtr(p)
			logs = append(logs, l)
		}
		return logs
	}

	tests := []struct {
		name   string
		logs   []models.LogEntry
		deload bool
	}{
		{"full streak at warn level", mk(3, 4, 3), true},
		{"streak broken by low pain", mk(3, 1, 4), false},
		{"too few pain logs", mk(4, 4), false},
		{"older pain beyond window ignored", mk(2, 3, 3, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := evaluateGuardrails(tt.logs, testNow, profile)
			if g.deload != tt.deload {
				t.Errorf("deload = %v, want %v", g.deload, tt.deload)
			}
		})
	}
}

func TestGuardrailSkippedLogsCountForPain(t *testing.T) {
	// The pain window ignores completion status.
	l := repLog(ago(time.Hour), 10)
	l.Status = models.StatusSkipped
	l.Pain0to10 = intPtr(8)

	g := evaluateGuardrails([]models.LogEntry{l}, testNow, models.DefaultProfile())
	if !g.deload {
		t.Error("skipped log with pain 8 should still trigger a deload")
	}
}
