package domain

import (
	"slices"
)

// Normalize translates a cell set so its minimum corner is the origin and
// sorts it in [h][l][w] order.
func Normalize(cells []Pos) []Pos {
	if len(cells) == 0 {
		return nil
	}
	lo := cells[0]
	for _, c := range cells[1:] {
		lo.H = min(lo.H, c.H)
		lo.L = min(lo.L, c.L)
		lo.W = min(lo.W, c.W)
	}
	out := make([]Pos, len(cells))
	for i, c := range cells {
		out[i] = Pos{H: c.H - lo.H, L: c.L - lo.L, W: c.W - lo.W}
	}
	slices.SortFunc(out, comparePos)
	return out
}

func comparePos(a, b Pos) int {
	if a.H != b.H {
		return a.H - b.H
	}
	if a.L != b.L {
		return a.L - b.L
	}
	return a.W - b.W
}

// quarter turns about the height and width axes generate all 24 proper rotations
func turnH(p Pos) Pos { return Pos{H: p.H, L: p.W, W: -p.L} }
func turnW(p Pos) Pos { return Pos{H: p.L, L: -p.H, W: p.W} }

// Orientations returns the distinct normalized rotations of a cell set.
// Mirror images are not included.
func Orientations(cells []Pos) [][]Pos {
	start := Normalize(cells)
	if start == nil {
		return nil
	}
	seen := [][]Pos{start}
	queue := [][]Pos{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, turn := range []func(Pos) Pos{turnH, turnW} {
			next := make([]Pos, len(cur))
			for i, c := range cur {
				next[i] = turn(c)
			}
			next = Normalize(next)
			if containsShape(seen, next) {
				continue
			}
			seen = append(seen, next)
			queue = append(queue, next)
		}
	}
	return seen
}

// Congruent reports whether two cell sets match under some rotation and translation.
func Congruent(a, b []Pos) bool {
	if len(a) != len(b) {
		return false
	}
	return containsShape(Orientations(a), Normalize(b))
}

func containsShape(set [][]Pos, s []Pos) bool {
	for _, o := range set {
		if slices.Equal(o, s) {
			return true
		}
	}
	return false
}
