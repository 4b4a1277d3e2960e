package solver

import (
	"context"
	"time"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/ports"
)

// BacktrackingSolver is a straightforward recursive solver: it fills the
// first free cell with every unused piece placement that covers it.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

type backtrack struct {
	pr     *problem
	byCell [][]int // rows covering each cell
	filled []bool
	used   []bool
	chosen []int
	nodes  int
}

func newBacktrack(pr *problem) *backtrack {
	b := &backtrack{
		pr:     pr,
		byCell: make([][]int, len(pr.cells)),
		filled: make([]bool, len(pr.cells)),
		used:   make([]bool, len(pr.pieces)),
	}
	for ri, row := range pr.rows {
		for _, c := range row.cells {
			b.byCell[c] = append(b.byCell[c], ri)
		}
	}
	return b
}

func (b *backtrack) firstFree() (int, bool) {
	for i, f := range b.filled {
		if !f {
			return i, true
		}
	}
	return 0, false
}

func (b *backtrack) fits(ri int) bool {
	row := b.pr.rows[ri]
	if b.used[row.piece] {
		return false
	}
	for _, c := range row.cells {
		if b.filled[c] {
			return false
		}
	}
	return true
}

func (b *backtrack) mark(ri int, v bool) {
	row := b.pr.rows[ri]
	b.used[row.piece] = v
	for _, c := range row.cells {
		b.filled[c] = v
	}
}

func (b *backtrack) dfs(ctx context.Context, found func([]int) bool) bool {
	if ctx.Err() != nil {
		return true
	}
	cell, ok := b.firstFree()
	if !ok {
		return found(b.chosen)
	}
	for _, ri := range b.byCell[cell] {
		b.nodes++
		if !b.fits(ri) {
			continue
		}
		b.mark(ri, true)
		b.chosen = append(b.chosen, ri)
		stop := b.dfs(ctx, found)
		b.chosen = b.chosen[:len(b.chosen)-1]
		b.mark(ri, false)
		if stop {
			return true
		}
	}
	return false
}

func (s *BacktrackingSolver) Solve(ctx context.Context, p *domain.Puzzle, constraint *domain.Grid[domain.Piece], limit int) ([]domain.Grid[domain.Piece], ports.Stats, error) {
	start := time.Now()
	pr, err := newProblem(p, constraint)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	b := newBacktrack(pr)
	var out []domain.Grid[domain.Piece]
	b.dfs(ctx, func(rows []int) bool {
		out = append(out, pr.decode(rows))
		return limit > 0 && len(out) >= limit
	})
	return out, ports.Stats{Nodes: b.nodes, Duration: time.Since(start)}, ctx.Err()
}

// Count stops after limit solutions (unbounded when limit <= 0).
func (s *BacktrackingSolver) Count(ctx context.Context, p *domain.Puzzle, limit int) (int, ports.Stats, error) {
	start := time.Now()
	pr, err := newProblem(p, nil)
	if err != nil {
		return 0, ports.Stats{}, err
	}
	b := newBacktrack(pr)
	n := 0
	b.dfs(ctx, func([]int) bool {
		n++
		return limit > 0 && n >= limit
	})
	return n, ports.Stats{Nodes: b.nodes, Duration: time.Since(start)}, ctx.Err()
}
