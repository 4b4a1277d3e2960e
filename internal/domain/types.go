package domain

import "fmt"

// Solution assigns pieces to the occupied cells of a puzzle.
type Solution struct {
	Value       Grid[Piece]
	Order       []Piece
	Description string
}

func (s Solution) Clone() Solution {
	return Solution{
		Value:       s.Value.Clone(),
		Order:       append([]Piece(nil), s.Order...),
		Description: s.Description,
	}
}

// Puzzle is a polyform puzzle with its known solutions and view state.
type Puzzle struct {
	ID          string
	Name        string
	Description string
	Family      Family
	Angle       Angle
	Occupancy   Grid[bool]
	Solutions   []Solution
	// Active is the selected solution, -1 for none.
	Active       int
	Transparency int
	Difficulty   Difficulty
	SolveState   SolveState
	SolveNumber  int
	CreatedAt    int64
}

// NewPuzzle returns an empty puzzle of the given size.
func NewPuzzle(f Family, d Dims) *Puzzle {
	return &Puzzle{
		Family:    f,
		Occupancy: NewGrid[bool](d),
		Active:    -1,
	}
}

func (p *Puzzle) Dims() Dims { return p.Occupancy.Dims() }

// Occupied counts filled cells.
func (p *Puzzle) Occupied() int {
	n := 0
	p.Occupancy.Each(func(_ Pos, v bool) {
		if v {
			n++
		}
	})
	return n
}

func (p *Puzzle) Clone() *Puzzle {
	out := *p
	out.Occupancy = p.Occupancy.Clone()
	out.Solutions = make([]Solution, len(p.Solutions))
	for i, s := range p.Solutions {
		out.Solutions[i] = s.Clone()
	}
	return &out
}

// DraftFrom returns a solution grid with every occupied cell Unassigned.
func DraftFrom(occ Grid[bool]) Grid[Piece] {
	return Map(occ, func(_ Pos, filled bool) Piece {
		if filled {
			return Unassigned
		}
		return Empty
	})
}

// Check verifies the occupancy/solution correspondence and index ranges.
func (p *Puzzle) Check() error {
	d := p.Dims()
	for i, s := range p.Solutions {
		if s.Value.Dims() != d {
			return fmt.Errorf("%w: solution %d dims %v, want %v", ErrInvalidPuzzle, i, s.Value.Dims(), d)
		}
		var bad error
		p.Occupancy.Each(func(pos Pos, filled bool) {
			if bad != nil {
				return
			}
			v := s.Value.At(pos)
			switch {
			case filled && v == Empty:
				bad = fmt.Errorf("%w: solution %d leaves filled cell %v empty", ErrInvalidPuzzle, i, pos)
			case !filled && v != Empty:
				bad = fmt.Errorf("%w: solution %d assigns unfilled cell %v", ErrInvalidPuzzle, i, pos)
			case v.IsPiece() && !p.Family.Valid(v):
				bad = fmt.Errorf("%w: solution %d cell %v: %s", ErrPieceNotInFamily, i, pos, v)
			}
		})
		if bad != nil {
			return bad
		}
		for _, o := range s.Order {
			if !p.Family.Valid(o) {
				return fmt.Errorf("%w: solution %d order entry %s", ErrPieceNotInFamily, i, o)
			}
		}
	}
	if p.Active < -1 || p.Active >= len(p.Solutions) {
		return fmt.Errorf("%w: active solution %d out of range", ErrInvalidPuzzle, p.Active)
	}
	if p.Transparency < 0 || p.Transparency > d.Length {
		return fmt.Errorf("%w: transparency %d out of range 0..%d", ErrInvalidPuzzle, p.Transparency, d.Length)
	}
	return nil
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Family    string `json:"family"`
	Dims      Dims   `json:"dims"`
	CreatedAt int64  `json:"createdAt"`
}

// Hint points the author at the next piece to place.
type Hint struct {
	Piece   Piece  `json:"-"`
	Cells   []Pos  `json:"cells,omitempty"`
	Message string `json:"message,omitempty"`
}
