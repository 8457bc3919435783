package lander

import "fmt"

// Outcome is the terminal classification of a flight
type Outcome uint8

const (
	// Flying means the chromosome ran out before any terminal event
	Flying Outcome = iota
	LandedCorrectly
	Crashed
	OutOfBounds
	// OutOfFuel means thrust was demanded from an empty tank under the crash policy
	OutOfFuel
)

var outcomeNames = [...]string{
	Flying:          "Flying",
	LandedCorrectly: "LandedCorrectly",
	Crashed:         "Crashed",
	OutOfBounds:     "OutOfBounds",
	OutOfFuel:       "OutOfFuel",
}

// Outcomes lists every outcome in declaration order
var Outcomes = []Outcome{Flying, LandedCorrectly, Crashed, OutOfBounds, OutOfFuel}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

func (o Outcome) MarshalText() ([]byte, error) {
	if int(o) >= len(outcomeNames) {
		return nil, fmt.Errorf("unknown outcome %d", o)
	}
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	for i, name := range outcomeNames {
		if name == string(b) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", b)
}

// Reason details why a flight crashed
type Reason uint8

const (
	ReasonNone Reason = iota
	// WrongTerrain is contact outside the landing zone
	WrongTerrain
	TooFastHorizontal
	TooFastVertical
	NotVertical
	// NonFinite is a numerically broken state
	NonFinite
)

var reasonNames = [...]string{
	ReasonNone:        "",
	WrongTerrain:      "WrongTerrain",
	TooFastHorizontal: "TooFastHorizontal",
	TooFastVertical:   "TooFastVertical",
	NotVertical:       "NotVertical",
	NonFinite:         "NonFinite",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", r)
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
