package progression

import (
	"fmt"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

// MetricType tags a NextTarget with the metric the target prescribes.
type MetricType string

const (
	MetricReps         MetricType = "reps"
	MetricWeightedReps MetricType = "weighted_reps"
	MetricDuration     MetricType = "duration_sec"
)

// NextTarget is the engine's recommendation for the next set. Only the
// fields matching MetricType are populated. Notes are ordered,
// human-readable explanations of the decisions taken.
type NextTarget struct {
	MetricType  MetricType `json:"metricType"`
	Reps        *int       `json:"reps,omitempty"`
	LoadKg      *float64   `json:"loadKg,omitempty"`
	DurationSec *int       `json:"durationSec,omitempty"`
	Frozen      bool       `json:"frozen"`
	Deload      bool       `json:"deload"`
	Notes       []string   `json:"notes,omitempty"`
}

// target is the internal working representation shared by all kinds.
// Each strategy reads and writes only the fields its kind uses.
type target struct {
	reps        int
	loadKg      float64
	durationSec int
}

// strategy parameterizes the shared ComputeNextTarget control flow with
// kind-specific behavior: volume extraction, baseline selection, the
// effort-driven adjustment, and deload scaling.
type strategy struct {
	metric  MetricType
	volume  func(models.LogEntry) float64
	initial func(ex *models.Exercise) target
	fromLog func(l models.LogEntry, prev target) target
	adjust  func(ex *models.Exercise, p models.ProgressionProfile, medianRIR float64, t target) (target, string)
	scale   func(ex *models.Exercise, factor float64, t target) target
	emit    func(t target) NextTarget
}

func strategyFor(kind models.ExerciseKind) strategy {
	switch kind {
	case models.KindWeighted:
		return weightedStrategy
	case models.KindIsometric:
		return isometricStrategy
	default:
		return repStrategy
	}
}

var repStrategy = strategy{
	metric: MetricReps,
	volume: func(l models.LogEntry) float64 {
		if l.Reps == nil {
			return 0
		}
		return float64(*l.Reps)
	},
	initial: func(ex *models.Exercise) target {
		return target{reps: ex.RepRange.Min}
	},
	fromLog: func(l models.LogEntry, prev target) target {
		if l.Reps != nil {
			prev.reps = *l.Reps
		}
		return prev
	},
	adjust: func(ex *models.Exercise, p models.ProgressionProfile, medianRIR float64, t target) (target, string) {
		var note string
		switch {
		case medianRIR > float64(p.TargetRIRMax):
			t.reps += ex.RepIncrement
			note = "Effort was easy; adding reps."
		case medianRIR < float64(p.TargetRIRMin):
			t.reps -= ex.RepIncrement
			note = "Effort was high; reducing reps."
		}
		t.reps = Clamp(t.reps, ex.MinRepsFloor, ex.RepRange.Max)
		return t, note
	},
	scale: func(ex *models.Exercise, factor float64, t target) target {
		t.reps = roundInt(float64(t.reps) * factor)
		if t.reps < ex.MinRepsFloor {
			t.reps = ex.MinRepsFloor
		}
		return t
	},
	emit: func(t target) NextTarget {
		reps := t.reps
		return NextTarget{MetricType: MetricReps, Reps: &reps}
	},
}

var weightedStrategy = strategy{
	metric: MetricWeightedReps,
	volume: func(l models.LogEntry) float64 {
		if l.Reps == nil || l.LoadKg == nil {
			return 0
		}
		return float64(*l.Reps) * *l.LoadKg
	},
	initial: func(ex *models.Exercise) target {
		return target{reps: ex.RepRange.Min}
	},
	fromLog: func(l models.LogEntry, prev target) target {
		if l.Reps != nil {
			prev.reps = *l.Reps
		}
		if l.LoadKg != nil {
			prev.loadKg = *l.LoadKg
		}
		return prev
	},
	adjust: func(ex *models.Exercise, p models.ProgressionProfile, medianRIR float64, t target) (target, string) {
		// Reps are exhausted before load increases, regardless of the
		// configured progression priority.
		switch {
		case medianRIR > float64(p.TargetRIRMax):
			if t.reps < ex.RepRange.Max {
				t.reps += ex.RepIncrement
				if t.reps > ex.RepRange.Max {
					t.reps = ex.RepRange.Max
				}
				return t, "Effort was easy; adding reps."
			}
			t.loadKg += ex.LoadIncrementKg
			t.reps = ex.RepRange.Min
			return t, "Hit top of rep range; adding load."
		case medianRIR < float64(p.TargetRIRMax):
			t.reps -= ex.RepIncrement
			if t.reps < ex.RepRange.Min {
				t.reps = ex.RepRange.Min
			}
			return t, "Effort was high; reducing reps."
		}
		return t, ""
	},
	scale: func(ex *models.Exercise, factor float64, t target) target {
		// Deload scales the rep prescription; the load stays put.
		t.reps = roundInt(float64(t.reps) * factor)
		if t.reps < ex.RepRange.Min {
			t.reps = ex.RepRange.Min
		}
		return t
	},
	emit: func(t target) NextTarget {
		reps := t.reps
		load := t.loadKg
		return NextTarget{MetricType: MetricWeightedReps, Reps: &reps, LoadKg: &load}
	},
}

var isometricStrategy = strategy{
	metric: MetricDuration,
	volume: func(l models.LogEntry) float64 {
		if l.DurationSec == nil {
			return 0
		}
		return float64(*l.DurationSec)
	},
	initial: func(ex *models.Exercise) target {
		return target{durationSec: ex.DurationRangeSec.Min}
	},
	fromLog: func(l models.LogEntry, prev target) target {
		if l.DurationSec != nil {
			prev.durationSec = *l.DurationSec
		}
		return prev
	},
	adjust: func(ex *models.Exercise, p models.ProgressionProfile, medianRIR float64, t target) (target, string) {
		var note string
		switch {
		case medianRIR > float64(p.TargetRIRMax):
			t.durationSec += ex.TimeIncrementSec
			note = "Effort was easy; extending the hold."
		case medianRIR < float64(p.TargetRIRMin):
			t.durationSec -= ex.TimeIncrementSec
			note = "Effort was high; shortening the hold."
		}
		t.durationSec = Clamp(t.durationSec, ex.DurationRangeSec.Min, ex.DurationRangeSec.Max)
		return t, note
	},
	scale: func(ex *models.Exercise, factor float64, t target) target {
		t.durationSec = roundInt(float64(t.durationSec) * factor)
		if t.durationSec < ex.DurationRangeSec.Min {
			t.durationSec = ex.DurationRangeSec.Min
		}
		return t
	},
	emit: func(t target) NextTarget {
		dur := t.durationSec
		return NextTarget{MetricType: MetricDuration, DurationSec: &dur}
	},
}

// ValidateLog checks a log entry against the exercise's kind. Metric
// presence is only enforced for complete entries; skipped entries are
// always valid. The returned reasons are human-readable and empty when
// the entry is valid.
func ValidateLog(ex *models.Exercise, l *models.LogEntry) []string {
	if !l.Complete() {
		return nil
	}

	var problems []string
	switch ex.Kind {
	case models.KindWeighted:
		if l.Reps == nil || *l.Reps < 1 {
			problems = append(problems, "reps must be at least 1")
		}
		if l.LoadKg == nil || *l.LoadKg <= 0 {
			problems = append(problems, "loadKg must be above 0")
		}
	case models.KindIsometric:
		if l.DurationSec == nil || *l.DurationSec <= 0 {
			problems = append(problems, "durationSec must be above 0")
		}
	default:
		if l.Reps == nil || *l.Reps < 1 {
			problems = append(problems, "reps must be at least 1")
		}
	}

	for _, check := range []struct {
		name string
		v    *int
	}{{"rir", l.RIR}, {"pain0to10", l.Pain0to10}} {
		if check.v != nil && (*check.v < 0 || *check.v > 10) {
			problems = append(problems, check.name+" must be within 0-10")
		}
	}

	return problems
}

// ComputeNextTarget computes the recommended next set for an exercise
// from its full log history. The computation is deterministic in
// (exercise, logs, now, profile) and mutates none of its inputs.
//
// The shared flow: guardrail evaluation, then a median-RIR effort
// adjustment, then the weekly volume cap (which reverts the adjustment),
// then the deload override (which supersedes both).
func ComputeNextTarget(ex *models.Exercise, logs []models.LogEntry, now time.Time, profile models.ProgressionProfile) NextTarget {
	if ex.Mode == models.ModeGTG {
		return computeGTGTarget(ex, logs, now, profile)
	}

	strat := strategyFor(ex.Kind)
	g := evaluateGuardrails(logs, now, profile)
	notes := g.notes

	var rirs []float64
	for _, l := range g.working {
		if l.RIR != nil {
			rirs = append(rirs, float64(*l.RIR))
		}
	}

	last := strat.initial(ex)
	if len(g.working) > 0 {
		last = strat.fromLog(g.working[0], last)
	}

	proposed := last
	if !g.frozen && !g.deload && len(rirs) > 0 {
		var note string
		proposed, note = strat.adjust(ex, g.profile, Median(rirs), last)
		if note != "" {
			notes = append(notes, note)
		}
	}

	// Volume cap over the full history, not just the working set.
	thisWeek, prevWeek := WeeklyVolume(logs, now, strat.volume)
	if prevWeek > 0 {
		increasePct := (thisWeek - prevWeek) / prevWeek * 100
		if increasePct > g.profile.MaxWeeklyVolumeIncreasePct {
			proposed = last
			notes = append(notes, fmt.Sprintf(
				"Weekly volume up %.0f%%, above the %.0f%% cap; holding last target.",
				increasePct, g.profile.MaxWeeklyVolumeIncreasePct))
		}
	}

	if g.deload {
		proposed = strat.scale(ex, g.profile.DeloadVolumeFactor, last)
		notes = append(notes, fmt.Sprintf(
			"Deload: target reduced to %d%% of the last set.",
			roundInt(g.profile.DeloadVolumeFactor*100)))
	}

	result := strat.emit(proposed)
	result.Frozen = g.frozen
	result.Deload = g.deload
	result.Notes = notes
	return result
}
