package progression

import "github.com/aurelienperez/grease-the-groove/internal/models"

// Defaults applied to partially-specified exercise configuration.
var (
	defaultRepRange      = models.IntRange{Min: 5, Max: 10}
	defaultDurationRange = models.IntRange{Min: 20, Max: 60}
)

const (
	defaultRepIncrement    = 1
	defaultMinRepsFloor    = 1
	defaultLoadIncrementKg = 2.5
	defaultTimeIncrement   = 5
)

// Normalize fills missing exercise configuration with defaults so the
// core computations can assume fully-populated configuration. It is the
// boundary step for tolerating malformed records: a missing baseline
// yields a degraded default target, never a failure.
func Normalize(ex *models.Exercise) {
	if ex.Kind == "" {
		ex.Kind = models.KindReps
	}
	if ex.Category == "" {
		ex.Category = models.CategoryOther
	}
	if ex.Mode == "" {
		ex.Mode = models.ModeAdaptive
	}

	switch ex.Kind {
	case models.KindReps, models.KindWeighted:
		if ex.RepRange == nil {
			r := defaultRepRange
			ex.RepRange = &r
		}
		if ex.RepRange.Min <= 0 {
			ex.RepRange.Min = defaultRepRange.Min
		}
		if ex.RepRange.Max < ex.RepRange.Min {
			ex.RepRange.Max = ex.RepRange.Min
		}
		if ex.RepIncrement <= 0 {
			ex.RepIncrement = defaultRepIncrement
		}
		if ex.MinRepsFloor <= 0 {
			ex.MinRepsFloor = defaultMinRepsFloor
		}
		if ex.Kind == models.KindWeighted && ex.LoadIncrementKg <= 0 {
			ex.LoadIncrementKg = defaultLoadIncrementKg
		}
	case models.KindIsometric:
		if ex.DurationRangeSec == nil {
			r := defaultDurationRange
			ex.DurationRangeSec = &r
		}
		if ex.DurationRangeSec.Min <= 0 {
			ex.DurationRangeSec.Min = defaultDurationRange.Min
		}
		if ex.DurationRangeSec.Max < ex.DurationRangeSec.Min {
			ex.DurationRangeSec.Max = ex.DurationRangeSec.Min
		}
		if ex.TimeIncrementSec <= 0 {
			ex.TimeIncrementSec = defaultTimeIncrement
		}
	}

	if ex.Mode == models.ModeGTG && ex.GTG == nil {
		ex.GTG = &models.GTGState{Intensity: gtgDefaultIntensity}
	}
}
