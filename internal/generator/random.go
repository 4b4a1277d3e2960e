package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/ports"
)

const (
	attemptsPerPiece = 300
	maxRestarts      = 50
)

var neighbors = []domain.Pos{
	{H: 1}, {H: -1}, {L: 1}, {L: -1}, {W: 1}, {W: -1},
}

// maxExtent bounds the assembled shape along every axis.
func maxExtent(f domain.Family) int {
	if f == domain.Pentomino {
		return 6
	}
	return 4
}

type assembly struct {
	cells map[domain.Pos]domain.Piece
	order []domain.Piece
	lo    domain.Pos
	hi    domain.Pos
}

// Generate builds a puzzle whose first solution is the assembly itself.
func (g *RandomGenerator) Generate(ctx context.Context, seed int64, family domain.Family) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	var a *assembly
	for try := 0; try < maxRestarts && a == nil; try++ {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{}, err
		}
		a = assemble(rng, family)
	}
	if a == nil {
		return nil, ports.Stats{Duration: time.Since(start)}, fmt.Errorf("generate %s: no assembly after %d attempts", family, maxRestarts)
	}

	d := domain.Dims{Width: a.hi.W - a.lo.W + 1, Length: a.hi.L - a.lo.L + 1, Height: a.hi.H - a.lo.H + 1}
	p := domain.NewPuzzle(family, d)
	sol := domain.Solution{
		Value:       domain.NewGrid[domain.Piece](d),
		Order:       a.order,
		Description: "generated",
	}
	for c, pc := range a.cells {
		pos := domain.Pos{H: c.H - a.lo.H, L: c.L - a.lo.L, W: c.W - a.lo.W}
		p.Occupancy.Set(pos, true)
		sol.Value.Set(pos, pc)
	}
	p.Solutions = []domain.Solution{sol}
	p.ID = uuid.NewString()
	p.Name = fmt.Sprintf("%s-%d", family, seed)
	p.CreatedAt = time.Now().UnixNano()

	st := ports.Stats{}
	n := 1
	if g.Solver != nil {
		cctx, cancel := context.WithTimeout(ctx, g.Budget)
		counted, cst, err := g.Solver.Count(cctx, p, g.CountLimit)
		cancel()
		st.Nodes = cst.Nodes
		switch {
		case err == nil:
			n = counted
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			// partial count is a lower bound
			n = max(counted, 1)
		default:
			return nil, ports.Stats{Duration: time.Since(start)}, err
		}
	}
	p.SolveNumber = n
	p.SolveState = domain.StateSolvable
	if n == 1 {
		p.SolveState = domain.StateUnique
	}
	p.Difficulty = grade(n, g.CountLimit)
	st.Duration = time.Since(start)
	return p, st, nil
}

func grade(n, limit int) domain.Difficulty {
	switch {
	case limit > 0 && n >= limit:
		return domain.Easy
	case n == 1:
		return domain.Expert
	case n <= 10:
		return domain.Hard
	case n <= 100:
		return domain.Medium
	default:
		return domain.Easy
	}
}

// assemble places the pieces in random order, each touching the cluster.
// It returns nil when a piece cannot be attached within the extent.
func assemble(rng *rand.Rand, family domain.Family) *assembly {
	pieces := family.Pieces()
	rng.Shuffle(len(pieces), func(i, j int) { pieces[i], pieces[j] = pieces[j], pieces[i] })

	a := &assembly{cells: map[domain.Pos]domain.Piece{}}
	for i, pc := range pieces {
		orients := domain.Orientations(family.Shape(pc))
		placed := false
		for try := 0; try < attemptsPerPiece && !placed; try++ {
			o := orients[rng.Intn(len(orients))]
			var shift domain.Pos
			if i > 0 {
				frontier := a.frontier()
				target := frontier[rng.Intn(len(frontier))]
				k := o[rng.Intn(len(o))]
				shift = domain.Pos{H: target.H - k.H, L: target.L - k.L, W: target.W - k.W}
			}
			placed = a.tryPlace(pc, o, shift, maxExtent(family))
		}
		if !placed {
			return nil
		}
	}
	return a
}

func (a *assembly) tryPlace(pc domain.Piece, o []domain.Pos, shift domain.Pos, extent int) bool {
	lo, hi := a.lo, a.hi
	first := len(a.cells) == 0
	for i, c := range o {
		pos := c.Add(shift)
		if _, taken := a.cells[pos]; taken {
			return false
		}
		if first && i == 0 {
			lo, hi = pos, pos
		}
		lo = domain.Pos{H: min(lo.H, pos.H), L: min(lo.L, pos.L), W: min(lo.W, pos.W)}
		hi = domain.Pos{H: max(hi.H, pos.H), L: max(hi.L, pos.L), W: max(hi.W, pos.W)}
	}
	if hi.H-lo.H >= extent || hi.L-lo.L >= extent || hi.W-lo.W >= extent {
		return false
	}
	for _, c := range o {
		a.cells[c.Add(shift)] = pc
	}
	a.lo, a.hi = lo, hi
	a.order = append(a.order, pc)
	return true
}

// frontier lists empty cells next to the cluster in a stable order.
func (a *assembly) frontier() []domain.Pos {
	seen := map[domain.Pos]bool{}
	var out []domain.Pos
	for c := range a.cells {
		for _, n := range neighbors {
			pos := c.Add(n)
			if _, taken := a.cells[pos]; taken || seen[pos] {
				continue
			}
			seen[pos] = true
			out = append(out, pos)
		}
	}
	slices.SortFunc(out, func(x, y domain.Pos) int {
		if x.H != y.H {
			return x.H - y.H
		}
		if x.L != y.L {
			return x.L - y.L
		}
		return x.W - y.W
	})
	return out
}
