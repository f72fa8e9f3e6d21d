package models

import "fmt"

// TargetMode selects how a template item's target is produced.
type TargetMode string

const (
	TargetAuto  TargetMode = "auto"
	TargetFixed TargetMode = "fixed"
)

// FixedTarget is an explicit pre-set target bypassing the engine.
type FixedTarget struct {
	Reps        *int     `json:"reps,omitempty"`
	LoadKg      *float64 `json:"loadKg,omitempty"`
	DurationSec *int     `json:"durationSec,omitempty"`
}

// TemplateItem references an exercise within a template.
type TemplateItem struct {
	ExerciseID string       `json:"exerciseId"`
	TargetMode TargetMode   `json:"targetMode"`
	Fixed      *FixedTarget `json:"fixed,omitempty"`
}

// Template is a named, ordered workout plan.
type Template struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

// Validate checks template invariants.
func (t *Template) Validate() []string {
	var problems []string
	if t.Name == "" {
		problems = append(problems, "name is required")
	}
	for i, item := range t.Items {
		if item.ExerciseID == "" {
			problems = append(problems, fmt.Sprintf("items[%d].exerciseId is required", i))
		}
		if item.TargetMode == TargetFixed && item.Fixed == nil {
			problems = append(problems, fmt.Sprintf("items[%d] has fixed target mode but no fixed target", i))
		}
	}
	return problems
}
