package starlight

import "strconv"

// FinaleThreshold is the progress at which the sky counts as unwrapped and
// the completion message appears.
const FinaleThreshold = 0.98

const (
	// StateTree is the initial state: the tree is showing and rotation
	// drives the morph.
	StateTree State = iota
	// StateFinale is entered once progress reaches FinaleThreshold.
	StateFinale
	// StateQuit is final.
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateTree:
		return "tree"
	case StateFinale:
		return "finale"
	case StateQuit:
		return "quit"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}
