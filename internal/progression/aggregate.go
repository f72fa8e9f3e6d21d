package progression

import (
	"math"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

const (
	week      = 7 * 24 * time.Hour
	painWarn  = 3 // flags a log as pain-affected
	painHeavy = 5 // flags a log as requiring reduction
)

// WeeklyVolume sums volumeFn over the last two rolling weeks relative to
// now: thisWeek covers [now-7d, now), prevWeek covers [now-14d, now-7d).
// No status filtering happens here; skipped logs still count toward
// volume, since abandoned sets are already signaled via status.
func WeeklyVolume(logs []models.LogEntry, now time.Time, volumeFn func(models.LogEntry) float64) (thisWeek, prevWeek float64) {
	weekAgo := now.Add(-week)
	twoWeeksAgo := now.Add(-2 * week)

	for _, l := range logs {
		switch {
		case !l.Timestamp.Before(weekAgo) && l.Timestamp.Before(now):
			thisWeek += volumeFn(l)
		case !l.Timestamp.Before(twoWeeksAgo) && l.Timestamp.Before(weekAgo):
			prevWeek += volumeFn(l)
		}
	}
	return thisWeek, prevWeek
}

// WeeklyVolumeFor computes the rolling-week volumes using the volume
// metric of the exercise's kind.
func WeeklyVolumeFor(ex *models.Exercise, logs []models.LogEntry, now time.Time) (thisWeek, prevWeek float64) {
	return WeeklyVolume(logs, now, strategyFor(ex.Kind).volume)
}

// PainSummary aggregates pain flags and activity rate over a log set.
type PainSummary struct {
	// Logs with pain at or above the reduction threshold (5).
	DeloadCount int `json:"deloadCount"`
	// Logs with pain at or above the warning threshold (3).
	FreezeDays int `json:"freezeDays"`
	// Rough weekly activity rate, assuming a 4-week normalization window.
	ActiveDaysPerWeek int `json:"activeDaysPerWeek"`
}

// SummarizePainFlags counts pain-flagged logs and estimates weekly
// activity over the supplied set. The function does not bound its input
// window; callers pre-filter when a window applies.
func SummarizePainFlags(logs []models.LogEntry) PainSummary {
	var s PainSummary
	days := make(map[string]struct{})

	for _, l := range logs {
		days[l.Timestamp.Format("2006-01-02")] = struct{}{}
		if l.Pain0to10 == nil {
			continue
		}
		if *l.Pain0to10 >= painHeavy {
			s.DeloadCount++
		}
		if *l.Pain0to10 >= painWarn {
			s.FreezeDays++
		}
	}

	s.ActiveDaysPerWeek = int(math.Round(float64(len(days)) / 4 * 7))
	return s
}
