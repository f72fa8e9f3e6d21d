package models

import "time"

// Category groups exercises for display and filtering.
type Category string

const (
	CategoryPull   Category = "pull"
	CategoryPush   Category = "push"
	CategoryLegs   Category = "legs"
	CategoryCore   Category = "core"
	CategoryCardio Category = "cardio"
	CategoryOther  Category = "other"
)

// ExerciseKind selects the progression variant. The set is closed:
// exercises are rep-based, weighted-rep-based, or isometric-hold-based.
type ExerciseKind string

const (
	KindReps      ExerciseKind = "reps"
	KindWeighted  ExerciseKind = "weighted_reps"
	KindIsometric ExerciseKind = "isometric_hold"
)

// ProgressionMode selects between the two supported progression designs.
// Adaptive drives targets from live RIR and volume trends; GTG prescribes
// a submaximal fraction of the recent best and carries persisted state.
type ProgressionMode string

const (
	ModeAdaptive ProgressionMode = "adaptive"
	ModeGTG      ProgressionMode = "gtg"
)

// IntRange is an inclusive min/max pair. Min must not exceed Max.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v falls inside the range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// VariantField is a user-defined extra field descriptor (label + input type).
// Only the UI interprets these; the engine ignores them.
type VariantField struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// GTGState is the persisted per-exercise state for grease-the-groove mode:
// an intensity scalar in (0,1] and an optional deload expiry.
type GTGState struct {
	Intensity   float64    `json:"intensity"`
	DeloadUntil *time.Time `json:"deloadUntil,omitempty"`
}

// Exercise is a trained movement with its progression configuration.
// Kind-specific parameters are pointers/zero values for the kinds that
// do not use them; Normalize in the progression package fills gaps.
type Exercise struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category Category       `json:"category"`
	Tags     []string       `json:"tags,omitempty"`
	Notes    string         `json:"notes,omitempty"`
	Fields   []VariantField `json:"fields,omitempty"`
	Kind     ExerciseKind   `json:"kind"`

	// Rep-based and weighted-rep-based.
	RepRange     *IntRange `json:"repRange,omitempty"`
	RepIncrement int       `json:"repIncrement,omitempty"`
	MinRepsFloor int       `json:"minRepsFloor,omitempty"`

	// Weighted-rep-based. ProgressionPriority is informational only:
	// reps are always exhausted before load increases.
	LoadIncrementKg     float64 `json:"loadIncrementKg,omitempty"`
	ProgressionPriority string  `json:"progressionPriority,omitempty"`

	// Isometric-hold-based.
	DurationRangeSec *IntRange `json:"durationRangeSec,omitempty"`
	TimeIncrementSec int       `json:"timeIncrementSec,omitempty"`

	Mode ProgressionMode `json:"mode,omitempty"`
	GTG  *GTGState       `json:"gtg,omitempty"`

	// Optional per-exercise override of the global profile.
	Profile *ProgressionProfile `json:"profile,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the structural invariants of the configured kind.
func (e *Exercise) Validate() []string {
	var problems []string

	if e.Name == "" {
		problems = append(problems, "name is required")
	}

	switch e.Kind {
	case KindReps, KindWeighted:
		if e.RepRange != nil && e.RepRange.Min > e.RepRange.Max {
			problems = append(problems, "repRange.min must not exceed repRange.max")
		}
		if e.RepIncrement < 0 {
			problems = append(problems, "repIncrement must be positive")
		}
		if e.Kind == KindWeighted && e.LoadIncrementKg < 0 {
			problems = append(problems, "loadIncrementKg must be positive")
		}
	case KindIsometric:
		if e.DurationRangeSec != nil && e.DurationRangeSec.Min > e.DurationRangeSec.Max {
			problems = append(problems, "durationRangeSec.min must not exceed durationRangeSec.max")
		}
		if e.TimeIncrementSec < 0 {
			problems = append(problems, "timeIncrementSec must be positive")
		}
	case "":
		// Normalize will default the kind.
	default:
		problems = append(problems, "unknown exercise kind: "+string(e.Kind))
	}

	if e.Profile != nil {
		problems = append(problems, e.Profile.Validate()...)
	}

	return problems
}
