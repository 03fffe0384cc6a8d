package importer

// State names a step of the import pipeline.
type State string

const (
	StateFetching            State = "FETCHING"
	StateStructuredData      State = "STRUCTURED_DATA"
	StateComplete            State = "COMPLETE"
	StatePartialFill         State = "PARTIAL_FILL"
	StateSiteSpecificPrimary State = "SITE_SPECIFIC_PRIMARY"
	StateHeuristicFallback   State = "HEURISTIC_FALLBACK"
	StateClean               State = "CLEAN"
	StateCategorize          State = "CATEGORIZE"
	StateDone                State = "DONE"
	StateFailed              State = "FAILED"
)

// Trace records the states one import went through and the strategy whose
// candidate survived.
type Trace struct {
	States   []State
	Strategy string
}

func (t *Trace) enter(s State) {
	t.States = append(t.States, s)
}

// Last returns the final state, or an empty state before the first transition.
func (t *Trace) Last() State {
	if len(t.States) == 0 {
		return ""
	}
	return t.States[len(t.States)-1]
}
