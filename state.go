package welllog

// State is the panel lifecycle driven by the active-well collaborator.
//
//	NoWell -> Loading -> LoadedWithCurves | LoadedEmpty
//
// Any well change goes back through Loading. ClearWell returns to NoWell.
type State uint8

const (
	// StateNoWell is the initial state; nothing is selected.
	StateNoWell State = iota
	// StateLoading waits for the loader to deliver a snapshot.
	StateLoading
	// StateLoadedWithCurves shows at least one curve with samples.
	StateLoadedWithCurves
	// StateLoadedEmpty shows a well without usable curve data.
	StateLoadedEmpty
)

var stateNames = [...]string{
	StateNoWell:           "no-well",
	StateLoading:          "loading",
	StateLoadedWithCurves: "loaded",
	StateLoadedEmpty:      "empty",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Loaded reports whether a well snapshot is applied.
func (s State) Loaded() bool {
	return s == StateLoadedWithCurves || s == StateLoadedEmpty
}
