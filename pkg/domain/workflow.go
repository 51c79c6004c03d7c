package domain

// Transition is a declared directed edge between two modes. The constraint
// is shown to the deciding agent; it is never mechanically evaluated here.
type Transition struct {
	To         string `json:"to" yaml:"to"`
	Constraint string `json:"constraint" yaml:"constraint"`
}

// Mode is a named state in the workflow machine. A mode with no outgoing
// transitions is a valid terminal mode.
type Mode struct {
	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Workflow is the validated workflow definition. It is loaded once per
// process and treated as immutable; the graph may be cyclic by design
// (e.g. idle -> plan -> build -> idle).
type Workflow struct {
	Name    string          `json:"name" yaml:"name"`
	Default string          `json:"default" yaml:"default"`
	Modes   map[string]Mode `json:"modes" yaml:"modes"`
}

// TransitionsFrom returns the declared outgoing edges of a mode.
// An unknown mode yields nil, same as a terminal mode.
func (w *Workflow) TransitionsFrom(mode string) []Transition {
	return w.Modes[mode].Transitions
}

// HasMode reports whether a mode id is configured.
func (w *Workflow) HasMode(mode string) bool {
	_, ok := w.Modes[mode]
	return ok
}

// Allows reports whether the workflow declares an edge from -> to.
func (w *Workflow) Allows(from, to string) bool {
	for _, t := range w.Modes[from].Transitions {
		if t.To == to {
			return true
		}
	}
	return false
}
