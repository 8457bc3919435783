package solver

import "fmt"

// State is the solver lifecycle position
type State uint8

const (
	Initialized State = iota
	Evolving
	Solved
	Exhausted
)

var stateNames = [...]string{
	Initialized: "initialized",
	Evolving:    "evolving",
	Solved:      "solved",
	Exhausted:   "exhausted",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether advancing is a no-op
func (s State) Terminal() bool {
	return s == Solved || s == Exhausted
}
