// Package morph tracks the tree's discrete form and the smoothed progress
// value every animated layer reads once per frame.
package morph

// State is the form the user has asked the tree to take.
type State uint8

const (
	Scattered State = iota
	Assembled
)

// Toggle returns the opposite state.
func (s State) Toggle() State {
	if s == Assembled {
		return Scattered
	}
	return Assembled
}

// Target returns the progress value the state pulls toward.
func (s State) Target() float64 {
	if s == Assembled {
		return 1
	}
	return 0
}

func (s State) String() string {
	switch s {
	case Assembled:
		return "assembled"
	default:
		return "scattered"
	}
}

// ParseState maps a name back to a State. Unknown names report false.
func ParseState(name string) (State, bool) {
	switch name {
	case "assembled", "ASSEMBLED", "tree":
		return Assembled, true
	case "scattered", "SCATTERED", "cloud":
		return Scattered, true
	}
	return Scattered, false
}
