package models

// Backup is the full-state JSON backup document. Shapes match the live
// records verbatim so export followed by import reproduces an equivalent
// engine-visible state.
type Backup struct {
	Exercises []Exercise `json:"exercises"`
	Logs      []LogEntry `json:"logs"`
	Templates []Template `json:"templates"`
	Settings  Settings   `json:"settings"`
}
