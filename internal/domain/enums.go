package domain

import (
	"fmt"
	"strings"
)

// Family selects the piece set a puzzle is built from.
type Family int

const (
	Soma      Family = iota // 7 pieces, 27 cubes
	Pentomino               // 12 pieces, 60 cubes
)

func (f Family) String() string {
	switch f {
	case Pentomino:
		return "pentomino"
	default:
		return "soma"
	}
}

// ParseFamily accepts the wire names "soma" and "pentomino".
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soma", "":
		return Soma, nil
	case "pentomino", "pentominoes":
		return Pentomino, nil
	}
	return Soma, fmt.Errorf("%w: unknown family %q", ErrInvalidPuzzle, s)
}

// Angle selects which projection lays out cells on screen.
type Angle int

const (
	AngleUpLeft Angle = iota
	AngleLeftRight
	AngleUp
)

var angleNames = [...]string{"up-left", "left-right", "up"}

func (a Angle) String() string {
	if a < 0 || int(a) >= len(angleNames) {
		return angleNames[0]
	}
	return angleNames[a]
}

// Next cycles through the view angles.
func (a Angle) Next() Angle { return (a + 1) % Angle(len(angleNames)) }

func ParseAngle(s string) (Angle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AngleUpLeft, nil
	}
	for i, n := range angleNames {
		if n == s {
			return Angle(i), nil
		}
	}
	return AngleUpLeft, fmt.Errorf("%w: unknown angle %q", ErrInvalidPuzzle, s)
}

// Axis names the rotation axis. Horizontal swaps width and length,
// Vertical swaps length and height.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Direction of a quarter turn. Left/Right go with Horizontal, Up/Down with Vertical.
type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
)

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis %q", s)
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return Right, nil
	case "left":
		return Left, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return Right, fmt.Errorf("unknown direction %q", s)
}

// Difficulty grades a puzzle by how many solutions it admits.
type Difficulty int

const (
	Unrated Difficulty = iota
	Easy
	Medium
	Hard
	Expert
)

var difficultyNames = [...]string{"unrated", "easy", "medium", "hard", "expert"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return difficultyNames[0]
	}
	return difficultyNames[d]
}

// SolveState records what is known about a puzzle's solutions.
type SolveState int

const (
	StateUnknown    SolveState = iota
	StateSolvable              // at least one solution found
	StateUnique                // exactly one solution exists
	StateUnsolvable            // exhaustive search found none
)
