package progression

import (
	"fmt"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

// Grease-the-groove mode prescribes frequent submaximal sets: a fixed
// fraction of the recent best rather than a progressive-overload delta.
// Unlike adaptive mode it carries persisted per-exercise state — the
// intensity scalar and a deload-until timestamp — which AdvanceGTG
// evolves on each completed log. The read-modify-write of that state
// must be serialized per exercise by the caller (the storage layer runs
// it under a row lock).
const (
	gtgDefaultIntensity = 0.7
	gtgMinIntensity     = 0.4
	gtgMaxIntensity     = 0.9

	// EMA weight for intensity adjustments and the per-step drift.
	gtgSmoothing = 0.25
	gtgStep      = 0.05
)

// AdvanceGTG returns the evolved GTG state after one completed log
// entry. Pain at or above the reduction threshold schedules a deload
// until now + profile.DeloadDays. Logged RIR nudges the intensity
// scalar toward the effort band by an exponential moving adjustment.
func AdvanceGTG(state models.GTGState, l models.LogEntry, profile models.ProgressionProfile, now time.Time) models.GTGState {
	if !l.Complete() {
		return state
	}
	if state.Intensity == 0 {
		state.Intensity = gtgDefaultIntensity
	}

	if l.Pain0to10 != nil && *l.Pain0to10 >= profile.PainReduce {
		until := now.Add(time.Duration(profile.DeloadDays) * 24 * time.Hour)
		state.DeloadUntil = &until
	}

	if l.RIR != nil {
		var proposed float64
		switch {
		case *l.RIR > profile.TargetRIRMax:
			proposed = state.Intensity + gtgStep
		case *l.RIR < profile.TargetRIRMin:
			proposed = state.Intensity - gtgStep
		}
		if proposed != 0 {
			state.Intensity = state.Intensity*(1-gtgSmoothing) + proposed*gtgSmoothing
		}
	}

	if state.Intensity < gtgMinIntensity {
		state.Intensity = gtgMinIntensity
	}
	if state.Intensity > gtgMaxIntensity {
		state.Intensity = gtgMaxIntensity
	}

	return state
}

// computeGTGTarget prescribes intensity × the best recent set. The base
// comes from the guardrail working set (complete logs, 14 days, capped),
// falling back to the configured minimum with no history.
func computeGTGTarget(ex *models.Exercise, logs []models.LogEntry, now time.Time, profile models.ProgressionProfile) NextTarget {
	strat := strategyFor(ex.Kind)
	g := evaluateGuardrails(logs, now, profile)
	notes := g.notes

	intensity := gtgDefaultIntensity
	var deloadUntil *time.Time
	if ex.GTG != nil {
		if ex.GTG.Intensity > 0 {
			intensity = ex.GTG.Intensity
		}
		deloadUntil = ex.GTG.DeloadUntil
	}

	// Best recent set, not the latest: GTG scales from capacity.
	best := strat.initial(ex)
	bestMag := targetMagnitude(ex.Kind, best)
	for _, l := range g.working {
		candidate := strat.fromLog(l, strat.initial(ex))
		if mag := targetMagnitude(ex.Kind, candidate); mag > bestMag {
			best = candidate
			bestMag = mag
		}
	}

	proposed := strat.scale(ex, intensity, best)
	notes = append(notes, fmt.Sprintf("Grease the groove: %d%% of recent best.", roundInt(intensity*100)))

	deload := g.deload
	if deloadUntil != nil && now.Before(*deloadUntil) {
		deload = true
		notes = append(notes, "Scheduled deload is active until "+deloadUntil.Format("2006-01-02")+".")
	}
	if deload {
		proposed = strat.scale(ex, profile.DeloadVolumeFactor, proposed)
		notes = append(notes, fmt.Sprintf(
			"Deload: target reduced to %d%% of the prescription.",
			roundInt(profile.DeloadVolumeFactor*100)))
	}

	result := strat.emit(proposed)
	result.Frozen = deload
	result.Deload = deload
	result.Notes = notes
	return result
}

func targetMagnitude(kind models.ExerciseKind, t target) float64 {
	switch kind {
	case models.KindWeighted:
		return float64(t.reps) * t.loadKg
	case models.KindIsometric:
		return float64(t.durationSec)
	default:
		return float64(t.reps)
	}
}
