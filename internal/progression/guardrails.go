package progression

import (
	"sort"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

const (
	workingSetWindow = 14 * 24 * time.Hour
	workingSetCap    = 30
)

// guardrails is the advisory safety state recomputed on every target
// computation. Nothing here is persisted against the exercise.
type guardrails struct {
	// Complete logs from the last 14 days, newest first, at most 30.
	working []models.LogEntry
	profile models.ProgressionProfile
	notes   []string
	frozen  bool
	deload  bool
}

// evaluateGuardrails decides, from the most recent pain and effort
// signals, whether progression must be held or actively reduced.
//
// The working set for effort decisions is complete-status logs within
// the last 14 days, capped to the 30 most recent. The pain window is
// independent: up to profile.FreezeDaysIfPain most-recent logs of any
// status that carry a pain value.
func evaluateGuardrails(logs []models.LogEntry, now time.Time, profile models.ProgressionProfile) guardrails {
	g := guardrails{profile: profile}

	sorted := make([]models.LogEntry, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	cutoff := now.Add(-workingSetWindow)
	for _, l := range sorted {
		if !l.Complete() || l.Timestamp.Before(cutoff) {
			continue
		}
		g.working = append(g.working, l)
		if len(g.working) == workingSetCap {
			break
		}
	}

	var painLogs []models.LogEntry
	if profile.FreezeDaysIfPain > 0 {
		for _, l := range sorted {
			if l.Pain0to10 == nil {
				continue
			}
			painLogs = append(painLogs, l)
			if len(painLogs) == profile.FreezeDaysIfPain {
				break
			}
		}
	}

	painHigh := false
	for _, l := range painLogs {
		if *l.Pain0to10 >= profile.PainReduce {
			painHigh = true
			break
		}
	}

	painWarnStreak := profile.FreezeDaysIfPain > 0 && len(painLogs) == profile.FreezeDaysIfPain
	for _, l := range painLogs {
		if *l.Pain0to10 < profile.PainWarn {
			painWarnStreak = false
			break
		}
	}

	g.deload = painHigh || painWarnStreak
	// Frozen coincides with deload in the base design; it stays a named
	// flag for explanation text and future divergence.
	g.frozen = g.deload

	if g.deload {
		g.notes = append(g.notes, "Pain guardrails triggered a deload.")
	}

	return g
}
