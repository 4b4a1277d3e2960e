package solver

import (
	"context"
	"time"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/ports"
)

// DLXSolver implements Algorithm X / Dancing Links for polyform packing.
// Exact-cover mapping: one column per occupied cell followed by one column
// per piece; one row per placement of a piece.
type DLXSolver struct{}

func NewDLXSolver() *DLXSolver { return &DLXSolver{} }

// node/column structures (classic dancing links)
type node struct {
	left, right, up, down *node
	col                   *column
	rowIdx                int
}
type column struct {
	node
	size   int
	active bool // whether this constraint column is currently uncovered
}

type dlx struct {
	cols      []*column
	sol       []int
	nodes     int
	activeCnt int
}

func newDLX(pr *problem) *dlx {
	nCols := len(pr.cells) + len(pr.pieces)
	d := &dlx{cols: make([]*column, nCols), sol: make([]int, 0, len(pr.pieces))}
	for i := range d.cols {
		c := &column{active: true}
		c.up = &c.node
		c.down = &c.node
		d.cols[i] = c
	}
	d.activeCnt = nCols

	for ri, row := range pr.rows {
		ids := append(append([]int(nil), row.cells...), len(pr.cells)+row.piece)
		var first, prev *node
		for _, colID := range ids {
			col := d.cols[colID]
			n := &node{col: col, rowIdx: ri}
			// vertical insert (at bottom)
			n.down = &col.node
			n.up = col.node.up
			col.node.up.down = n
			col.node.up = n
			col.size++
			// horizontal ring
			if first == nil {
				first = n
				n.left = n
				n.right = n
			} else {
				n.left = prev
				n.right = prev.right
				prev.right.left = n
				prev.right = n
			}
			prev = n
		}
	}
	return d
}

// core operations
func (d *dlx) cover(col *column) {
	col.active = false
	d.activeCnt--
	for i := col.down; i != &col.node; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (d *dlx) uncover(col *column) {
	for i := col.up; i != &col.node; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	col.active = true
	d.activeCnt++
}

// choose the active column with the smallest size
func (d *dlx) chooseColumn() *column {
	var best *column
	for _, c := range d.cols {
		if c.active && (best == nil || c.size < best.size) {
			best = c
			if best.size == 0 {
				break
			}
		}
	}
	return best
}

// search calls found for every complete cover and stops when found
// returns true or ctx is done.
func (d *dlx) search(ctx context.Context, found func([]int) bool) bool {
	if ctx.Err() != nil {
		return true
	}
	if d.activeCnt == 0 {
		return found(d.sol)
	}
	c := d.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	d.cover(c)
	stop := false
	for r := c.down; r != &c.node && !stop; r = r.down {
		d.nodes++
		d.sol = append(d.sol, r.rowIdx)
		for j := r.right; j != r; j = j.right {
			d.cover(j.col)
		}
		stop = d.search(ctx, found)
		// backtrack: uncover in reverse order
		for j := r.left; j != r; j = j.left {
			d.uncover(j.col)
		}
		d.sol = d.sol[:len(d.sol)-1]
	}
	d.uncover(c)
	return stop
}

func (s *DLXSolver) Solve(ctx context.Context, p *domain.Puzzle, constraint *domain.Grid[domain.Piece], limit int) ([]domain.Grid[domain.Piece], ports.Stats, error) {
	start := time.Now()
	pr, err := newProblem(p, constraint)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	d := newDLX(pr)
	var out []domain.Grid[domain.Piece]
	d.search(ctx, func(rows []int) bool {
		out = append(out, pr.decode(rows))
		return limit > 0 && len(out) >= limit
	})
	return out, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}, ctx.Err()
}

// Count stops after limit solutions (unbounded when limit <= 0).
func (s *DLXSolver) Count(ctx context.Context, p *domain.Puzzle, limit int) (int, ports.Stats, error) {
	start := time.Now()
	pr, err := newProblem(p, nil)
	if err != nil {
		return 0, ports.Stats{}, err
	}
	d := newDLX(pr)
	n := 0
	d.search(ctx, func([]int) bool {
		n++
		return limit > 0 && n >= limit
	})
	return n, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}, ctx.Err()
}
