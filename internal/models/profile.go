package models

import "fmt"

// ProgressionProfile bundles the tunable thresholds driving target
// adjustment and the pain/volume guardrails. One global default lives in
// settings; an exercise may carry a full override.
type ProgressionProfile struct {
	Name string `json:"name,omitempty"`

	// Acceptable effort band. Median RIR above the band means the work
	// was easy (progress); below means it was hard (back off).
	TargetRIRMin int `json:"targetRirMin"`
	TargetRIRMax int `json:"targetRirMax"`

	// Cap on week-over-week volume growth, in percent.
	MaxWeeklyVolumeIncreasePct float64 `json:"maxWeeklyVolumeIncreasePct"`

	// Pain thresholds on the 0-10 scale.
	PainWarn   int `json:"painWarn"`
	PainReduce int `json:"painReduce"`

	DeloadDays         int     `json:"deloadDays"`
	DeloadVolumeFactor float64 `json:"deloadVolumeFactor"`

	// How many most-recent pain-flagged logs count toward a freeze.
	FreezeDaysIfPain int `json:"freezeDaysIfPain"`
}

// DefaultProfile returns the built-in global profile.
func DefaultProfile() ProgressionProfile {
	return ProgressionProfile{
		Name:                       "default",
		TargetRIRMin:               1,
		TargetRIRMax:               3,
		MaxWeeklyVolumeIncreasePct: 10,
		PainWarn:                   3,
		PainReduce:                 5,
		DeloadDays:                 7,
		DeloadVolumeFactor:         0.6,
		FreezeDaysIfPain:           3,
	}
}

// Validate checks the profile invariants.
func (p *ProgressionProfile) Validate() []string {
	var problems []string

	if p.TargetRIRMin >= p.TargetRIRMax {
		problems = append(problems, "targetRirMin must be below targetRirMax")
	}
	for _, check := range []struct {
		name string
		v    int
	}{
		{"targetRirMin", p.TargetRIRMin},
		{"targetRirMax", p.TargetRIRMax},
		{"painWarn", p.PainWarn},
		{"painReduce", p.PainReduce},
	} {
		if check.v < 0 || check.v > 10 {
			problems = append(problems, fmt.Sprintf("%s must be within 0-10", check.name))
		}
	}
	if p.DeloadVolumeFactor <= 0 || p.DeloadVolumeFactor > 1 {
		problems = append(problems, "deloadVolumeFactor must be in (0,1]")
	}
	if p.MaxWeeklyVolumeIncreasePct < 0 {
		problems = append(problems, "maxWeeklyVolumeIncreasePct must not be negative")
	}
	if p.DeloadDays < 0 {
		problems = append(problems, "deloadDays must not be negative")
	}
	if p.FreezeDaysIfPain < 0 {
		problems = append(problems, "freezeDaysIfPain must not be negative")
	}

	return problems
}

// Resolve returns the profile to use for an exercise: its own override
// when present, the global profile otherwise.
func (e *Exercise) Resolve(global ProgressionProfile) ProgressionProfile {
	if e.Profile != nil {
		return *e.Profile
	}
	return global
}

// Settings is the persisted application-wide configuration.
type Settings struct {
	Profile ProgressionProfile `json:"profile"`
}
