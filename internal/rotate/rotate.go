// Package rotate turns puzzle grids by quarter turns.
//
// A Horizontal turn swaps width and length and keeps layers intact; a
// Vertical turn swaps length and height. Each turn maps every cell of the
// new grid back to exactly one cell of the old grid, so occupancy and all
// solution grids stay in correspondence.
package rotate

import "svw.info/polygen/internal/domain"

// source maps a position in the rotated grid (with dims nd) back to the
// position it came from.
type source func(p domain.Pos, nd domain.Dims) domain.Pos

func right(p domain.Pos, nd domain.Dims) domain.Pos {
	return domain.Pos{H: p.H, L: p.W, W: nd.Length - 1 - p.L}
}

func left(p domain.Pos, nd domain.Dims) domain.Pos {
	return domain.Pos{H: p.H, L: nd.Width - 1 - p.W, W: p.L}
}

func up(p domain.Pos, nd domain.Dims) domain.Pos {
	return domain.Pos{H: nd.Length - 1 - p.L, L: p.H, W: p.W}
}

func down(p domain.Pos, nd domain.Dims) domain.Pos {
	return domain.Pos{H: p.L, L: nd.Height - 1 - p.H, W: p.W}
}

// mapping picks the reindexing for an axis/direction pair. A direction that
// does not belong to the axis falls back to the axis default (Right, Up).
func mapping(axis domain.Axis, dir domain.Direction) (source, func(domain.Dims) domain.Dims) {
	if axis == domain.Vertical {
		swap := func(d domain.Dims) domain.Dims {
			return domain.Dims{Width: d.Width, Length: d.Height, Height: d.Length}
		}
		if dir == domain.Down {
			return down, swap
		}
		return up, swap
	}
	swap := func(d domain.Dims) domain.Dims {
		return domain.Dims{Width: d.Length, Length: d.Width, Height: d.Height}
	}
	if dir == domain.Left {
		return left, swap
	}
	return right, swap
}

// Grid returns a rotated copy of g.
func Grid[T comparable](g domain.Grid[T], axis domain.Axis, dir domain.Direction) domain.Grid[T] {
	src, swap := mapping(axis, dir)
	nd := swap(g.Dims())
	out := domain.NewGrid[T](nd)
	out.Each(func(p domain.Pos, _ T) {
		out.Set(p, g.At(src(p, nd)))
	})
	return out
}

// Puzzle rotates the occupancy grid and every solution grid of p. All new
// grids are built before any field of p is replaced.
func Puzzle(p *domain.Puzzle, axis domain.Axis, dir domain.Direction) {
	occ := Grid(p.Occupancy, axis, dir)
	values := make([]domain.Grid[domain.Piece], len(p.Solutions))
	for i, s := range p.Solutions {
		values[i] = Grid(s.Value, axis, dir)
	}

	p.Occupancy = occ
	for i := range p.Solutions {
		p.Solutions[i].Value = values[i]
	}
	if l := occ.Dims().Length; p.Transparency > l {
		p.Transparency = l
	}
}
