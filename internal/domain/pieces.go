package domain

import (
	"fmt"
	"strings"
)

// Piece labels one cell of a solution: Empty, Unassigned, or a piece letter.
type Piece byte

const (
	Empty      Piece = 0
	Unassigned Piece = '*'
)

// IsPiece reports whether p is a piece letter rather than a sentinel.
func (p Piece) IsPiece() bool { return p >= 'A' && p <= 'Z' }

func (p Piece) String() string {
	switch {
	case p == Empty:
		return "."
	case p == Unassigned:
		return "*"
	default:
		return string(rune(p))
	}
}

// ParsePiece reads a single piece letter, case-insensitively.
func ParsePiece(s string) (Piece, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || !Piece(s[0]).IsPiece() {
		return Empty, fmt.Errorf("%w: %q", ErrPieceNotInFamily, s)
	}
	return Piece(s[0]), nil
}

// Shapes are unit-cube offsets with W as x, L as y and H as z.
var (
	somaOrder = []Piece{'V', 'L', 'T', 'Z', 'A', 'B', 'P'}
	somaShape = map[Piece][]Pos{
		'V': {{0, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		'L': {{0, 0, 0}, {0, 0, 1}, {0, 0, 2}, {0, 1, 0}},
		'T': {{0, 0, 0}, {0, 0, 1}, {0, 0, 2}, {0, 1, 1}},
		'Z': {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 2}},
		'A': {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {1, 1, 1}},
		'B': {{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
		'P': {{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {1, 0, 0}},
	}

	pentominoOrder = []Piece{'F', 'I', 'L', 'N', 'P', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z'}
	pentominoShape = map[Piece][]Pos{
		'F': flat(1, 0, 2, 0, 0, 1, 1, 1, 1, 2),
		'I': flat(0, 0, 1, 0, 2, 0, 3, 0, 4, 0),
		'L': flat(0, 0, 0, 1, 0, 2, 0, 3, 1, 3),
		'N': flat(1, 0, 1, 1, 1, 2, 0, 2, 0, 3),
		'P': flat(0, 0, 1, 0, 0, 1, 1, 1, 0, 2),
		'T': flat(0, 0, 1, 0, 2, 0, 1, 1, 1, 2),
		'U': flat(0, 0, 2, 0, 0, 1, 1, 1, 2, 1),
		'V': flat(0, 0, 0, 1, 0, 2, 1, 2, 2, 2),
		'W': flat(0, 0, 0, 1, 1, 1, 1, 2, 2, 2),
		'X': flat(1, 0, 0, 1, 1, 1, 2, 1, 1, 2),
		'Y': flat(1, 0, 0, 1, 1, 1, 1, 2, 1, 3),
		'Z': flat(0, 0, 1, 0, 1, 1, 1, 2, 2, 2),
	}
)

// flat turns x,y pairs into offsets on the bottom layer.
func flat(xy ...int) []Pos {
	out := make([]Pos, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Pos{W: xy[i], L: xy[i+1]})
	}
	return out
}

// Pieces lists the family's piece identifiers in canonical order.
func (f Family) Pieces() []Piece {
	if f == Pentomino {
		return append([]Piece(nil), pentominoOrder...)
	}
	return append([]Piece(nil), somaOrder...)
}

// Valid reports whether p names a piece of this family.
func (f Family) Valid(p Piece) bool {
	_, ok := f.shapes()[p]
	return ok
}

// Shape returns a copy of the canonical offsets of piece p, or nil.
func (f Family) Shape(p Piece) []Pos {
	s, ok := f.shapes()[p]
	if !ok {
		return nil
	}
	return append([]Pos(nil), s...)
}

// Volume is the number of cubes in a complete set of pieces.
func (f Family) Volume() int {
	n := 0
	for _, s := range f.shapes() {
		n += len(s)
	}
	return n
}

func (f Family) shapes() map[Piece][]Pos {
	if f == Pentomino {
		return pentominoShape
	}
	return somaShape
}
