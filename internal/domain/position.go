package domain

// Position represents a standard field position code
type Position string

const (
	PositionGK  Position = "GK"
	PositionCB  Position = "CB"
	PositionLB  Position = "LB"
	PositionRB  Position = "RB"
	PositionLWB Position = "LWB"
	PositionRWB Position = "RWB"
	PositionCDM Position = "CDM"
	PositionCM  Position = "CM"
	PositionCAM Position = "CAM"
	PositionLM  Position = "LM"
	PositionRM  Position = "RM"
	PositionLW  Position = "LW"
	PositionRW  Position = "RW"
	PositionCF  Position = "CF"
	PositionST  Position = "ST"
)

// allPositions lists every known position code in declaration order
var allPositions = []Position{
	PositionGK, PositionCB, PositionLB, PositionRB, PositionLWB, PositionRWB,
	PositionCDM, PositionCM, PositionCAM, PositionLM, PositionRM,
	PositionLW, PositionRW, PositionCF, PositionST,
}

// positionCodes maps source strings to known position codes
var positionCodes = func() map[string]Position {
	m := make(map[string]Position, len(allPositions))
	for _, p := range allPositions {
		m[string(p)] = p
	}
	return m
}()

// ParsePosition maps a string to a known position code.
// The second return value reports whether the code is known;
// unknown-code handling (defaulting) is left to the caller.
func ParsePosition(s string) (Position, bool) {
	p, ok := positionCodes[s]
	return p, ok
}

// AllPositions returns every known position code
func AllPositions() []Position {
	out := make([]Position, len(allPositions))
	copy(out, allPositions)
	return out
}

// String returns the position code
func (p Position) String() string {
	return string(p)
}
