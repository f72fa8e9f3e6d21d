package progression

import (
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

// StatsSummary is the per-exercise analytics summary. Statistics whose
// source set is empty, or which do not apply to the exercise's kind, are
// omitted rather than zeroed, signaling "not computed" to the display
// layer. Volume and pain-summary fields are always present.
type StatsSummary struct {
	WindowDays int `json:"windowDays"`

	PRReps           *int     `json:"prReps,omitempty"`
	PRLoadKg         *float64 `json:"prLoadKg,omitempty"`
	PRDurationSec    *int     `json:"prDurationSec,omitempty"`
	BestEstimated1RM *float64 `json:"bestEstimated1RM,omitempty"`

	AvgRIR    *float64 `json:"avgRir,omitempty"`
	MedianRIR *float64 `json:"medianRir,omitempty"`
	AvgPain   *float64 `json:"avgPain,omitempty"`

	VolumeThisWeek float64     `json:"volumeThisWeek"`
	VolumePrevWeek float64     `json:"volumePrevWeek"`
	PainSummary    PainSummary `json:"painSummary"`
}

// ComputeStats builds the analytics summary for one exercise. PRs and
// subjective averages come from logs within windowDays of now; the
// weekly volumes and the pain summary are computed over the full
// history, matching what the next-target computation sees.
func ComputeStats(ex *models.Exercise, logs []models.LogEntry, now time.Time, windowDays int) StatsSummary {
	s := StatsSummary{WindowDays: windowDays}
	strat := strategyFor(ex.Kind)

	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	var windowed []models.LogEntry
	for _, l := range logs {
		if !l.Timestamp.Before(cutoff) && !l.Timestamp.After(now) {
			windowed = append(windowed, l)
		}
	}

	var rirs, pains []float64
	for _, l := range windowed {
		if l.RIR != nil {
			rirs = append(rirs, float64(*l.RIR))
		}
		if l.Pain0to10 != nil {
			pains = append(pains, float64(*l.Pain0to10))
		}
	}
	if len(rirs) > 0 {
		avg := Average(rirs)
		med := Median(rirs)
		s.AvgRIR = &avg
		s.MedianRIR = &med
	}
	if len(pains) > 0 {
		avg := Average(pains)
		s.AvgPain = &avg
	}

	switch ex.Kind {
	case models.KindWeighted:
		for _, l := range windowed {
			if l.Reps != nil && (s.PRReps == nil || *l.Reps > *s.PRReps) {
				v := *l.Reps
				s.PRReps = &v
			}
			if l.LoadKg != nil && (s.PRLoadKg == nil || *l.LoadKg > *s.PRLoadKg) {
				v := *l.LoadKg
				s.PRLoadKg = &v
			}
			if l.Reps != nil && l.LoadKg != nil {
				est := EstimateOneRepMax(*l.Reps, *l.LoadKg)
				if s.BestEstimated1RM == nil || est > *s.BestEstimated1RM {
					s.BestEstimated1RM = &est
				}
			}
		}
	case models.KindIsometric:
		for _, l := range windowed {
			if l.DurationSec != nil && (s.PRDurationSec == nil || *l.DurationSec > *s.PRDurationSec) {
				v := *l.DurationSec
				s.PRDurationSec = &v
			}
		}
	default:
		for _, l := range windowed {
			if l.Reps != nil && (s.PRReps == nil || *l.Reps > *s.PRReps) {
				v := *l.Reps
				s.PRReps = &v
			}
		}
	}

	s.VolumeThisWeek, s.VolumePrevWeek = WeeklyVolume(logs, now, strat.volume)
	s.PainSummary = SummarizePainFlags(logs)
	return s
}
