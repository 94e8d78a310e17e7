package ice

import "fmt"

// Phase identifies the solid water-ice polymorph occupying a shell.
// Values follow the conventional phase numbering.
type Phase int

const (
	I   Phase = 1
	III Phase = 3
	V   Phase = 5
)

func (p Phase) String() string {
	switch p {
	case I:
		return "Ih"
	case III:
		return "III"
	case V:
		return "V"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Valid reports whether p is one of the modeled polymorphs.
func (p Phase) Valid() bool {
	return p == I || p == III || p == V
}

// Phases lists the modeled polymorphs in integration order, outside in.
var Phases = []Phase{I, III, V}
