package solver

import (
	"fmt"

	"svw.info/polygen/internal/domain"
)

// placement is one piece in one orientation at one offset, as indices into
// problem.cells.
type placement struct {
	piece int
	cells []int
}

// problem is the exact-cover form of a puzzle: every occupied cell and
// every piece must be covered exactly once.
type problem struct {
	dims   domain.Dims
	pieces []domain.Piece
	cells  []domain.Pos
	index  map[domain.Pos]int
	rows   []placement
}

func newProblem(p *domain.Puzzle, constraint *domain.Grid[domain.Piece]) (*problem, error) {
	pr := &problem{
		dims:   p.Dims(),
		pieces: p.Family.Pieces(),
		index:  map[domain.Pos]int{},
	}
	p.Occupancy.Each(func(pos domain.Pos, filled bool) {
		if filled {
			pr.index[pos] = len(pr.cells)
			pr.cells = append(pr.cells, pos)
		}
	})
	if len(pr.cells) != p.Family.Volume() {
		return nil, fmt.Errorf("%w: %d cells, %s needs %d", domain.ErrVolumeMismatch, len(pr.cells), p.Family, p.Family.Volume())
	}
	if constraint != nil && constraint.Dims() != pr.dims {
		return nil, fmt.Errorf("%w: constraint dims %v, puzzle dims %v", domain.ErrInvalidPuzzle, constraint.Dims(), pr.dims)
	}

	// pinned[i] counts cells the constraint assigns to piece i
	pinned := make([]int, len(pr.pieces))
	if constraint != nil {
		for _, pos := range pr.cells {
			for i, pc := range pr.pieces {
				if constraint.At(pos) == pc {
					pinned[i]++
				}
			}
		}
	}

	for i, pc := range pr.pieces {
		for _, o := range domain.Orientations(p.Family.Shape(pc)) {
			for _, anchor := range pr.cells {
				row, ok := pr.place(i, o, anchor, constraint, pinned[i])
				if ok {
					pr.rows = append(pr.rows, row)
				}
			}
		}
	}
	return pr, nil
}

// place puts the first cell of orientation o on anchor.
func (pr *problem) place(piece int, o []domain.Pos, anchor domain.Pos, constraint *domain.Grid[domain.Piece], pinned int) (placement, bool) {
	shift := domain.Pos{H: anchor.H - o[0].H, L: anchor.L - o[0].L, W: anchor.W - o[0].W}
	row := placement{piece: piece, cells: make([]int, 0, len(o))}
	hits := 0
	for _, c := range o {
		pos := c.Add(shift)
		idx, ok := pr.index[pos]
		if !ok {
			return placement{}, false
		}
		if constraint != nil {
			switch v := constraint.At(pos); {
			case v == pr.pieces[piece]:
				hits++
			case v.IsPiece():
				return placement{}, false
			}
		}
		row.cells = append(row.cells, idx)
	}
	return row, hits == pinned
}

// decode turns chosen rows into a solution grid.
func (pr *problem) decode(chosen []int) domain.Grid[domain.Piece] {
	g := domain.NewGrid[domain.Piece](pr.dims)
	for _, r := range chosen {
		row := pr.rows[r]
		for _, c := range row.cells {
			g.Set(pr.cells[c], pr.pieces[row.piece])
		}
	}
	return g
}
