package rotate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/polygen/internal/domain"
)

// numbered fills a grid with distinct values so any misplaced cell shows up.
func numbered(d domain.Dims) domain.Grid[int] {
	g := domain.NewGrid[int](d)
	n := 0
	g.Each(func(p domain.Pos, _ int) {
		n++
		g.Set(p, n)
	})
	return g
}

var turns = []struct {
	name string
	axis domain.Axis
	dir  domain.Direction
	back domain.Direction
}{
	{"right", domain.Horizontal, domain.Right, domain.Left},
	{"left", domain.Horizontal, domain.Left, domain.Right},
	{"up", domain.Vertical, domain.Up, domain.Down},
	{"down", domain.Vertical, domain.Down, domain.Up},
}

func TestFourTurnsAreIdentity(t *testing.T) {
	g := numbered(domain.Dims{Width: 4, Length: 3, Height: 2})
	for _, tc := range turns {
		t.Run(tc.name, func(t *testing.T) {
			got := g
			for i := 0; i < 4; i++ {
				got = Grid(got, tc.axis, tc.dir)
			}
			if diff := cmp.Diff(g.Layers(), got.Layers()); diff != "" {
				t.Fatalf("four %s turns changed the grid (-want +got):\n%s", tc.name, diff)
			}
		})
	}
}

func TestTurnThenInverseIsIdentity(t *testing.T) {
	g := numbered(domain.Dims{Width: 5, Length: 2, Height: 3})
	for _, tc := range turns {
		t.Run(tc.name, func(t *testing.T) {
			got := Grid(Grid(g, tc.axis, tc.dir), tc.axis, tc.back)
			if diff := cmp.Diff(g.Layers(), got.Layers()); diff != "" {
				t.Fatalf("%s then inverse (-want +got):\n%s", tc.name, diff)
			}
		})
	}
}

func TestDimensionSwaps(t *testing.T) {
	d := domain.Dims{Width: 4, Length: 3, Height: 2}
	assert.Equal(t, domain.Dims{Width: 3, Length: 4, Height: 2}, Grid(numbered(d), domain.Horizontal, domain.Right).Dims())
	assert.Equal(t, domain.Dims{Width: 3, Length: 4, Height: 2}, Grid(numbered(d), domain.Horizontal, domain.Left).Dims())
	assert.Equal(t, domain.Dims{Width: 4, Length: 2, Height: 3}, Grid(numbered(d), domain.Vertical, domain.Up).Dims())
	assert.Equal(t, domain.Dims{Width: 4, Length: 2, Height: 3}, Grid(numbered(d), domain.Vertical, domain.Down).Dims())
}

func TestRightTurnOnCube(t *testing.T) {
	old := numbered(domain.Dims{Width: 3, Length: 3, Height: 3})
	got := Grid(old, domain.Horizontal, domain.Right)
	for h := 0; h < 3; h++ {
		for l := 0; l < 3; l++ {
			for w := 0; w < 3; w++ {
				want := old.At(domain.Pos{H: h, L: w, W: 2 - l})
				if v := got.At(domain.Pos{H: h, L: l, W: w}); v != want {
					t.Fatalf("new[%d][%d][%d]=%d, want old[%d][%d][%d]=%d", h, l, w, v, h, w, 2-l, want)
				}
			}
		}
	}
}

func TestMismatchedDirectionUsesAxisDefault(t *testing.T) {
	g := numbered(domain.Dims{Width: 2, Length: 3, Height: 4})
	assert.True(t, Grid(g, domain.Horizontal, domain.Up).Equal(Grid(g, domain.Horizontal, domain.Right)))
	assert.True(t, Grid(g, domain.Vertical, domain.Left).Equal(Grid(g, domain.Vertical, domain.Up)))
}

func lShapedPuzzle(t *testing.T) *domain.Puzzle {
	t.Helper()
	p := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 3, Length: 2, Height: 2})
	filled := []domain.Pos{{H: 0, L: 0, W: 0}, {H: 0, L: 0, W: 1}, {H: 0, L: 0, W: 2}, {H: 0, L: 1, W: 0}, {H: 1, L: 0, W: 0}, {H: 1, L: 0, W: 1}, {H: 1, L: 1, W: 1}}
	for _, c := range filled {
		p.Occupancy.Set(c, true)
	}
	sol := domain.Solution{Value: domain.DraftFrom(p.Occupancy), Order: []domain.Piece{'L', 'V'}}
	for _, c := range filled[:4] {
		sol.Value.Set(c, 'L')
	}
	for _, c := range filled[4:] {
		sol.Value.Set(c, 'V')
	}
	p.Solutions = append(p.Solutions, sol, domain.Solution{Value: domain.DraftFrom(p.Occupancy)})
	p.Transparency = 2
	require.NoError(t, p.Check())
	return p
}

func TestPuzzleKeepsSolutionsInStep(t *testing.T) {
	for _, tc := range turns {
		t.Run(tc.name, func(t *testing.T) {
			p := lShapedPuzzle(t)
			orig := p.Clone()
			Puzzle(p, tc.axis, tc.dir)
			require.NoError(t, p.Check())
			for i, s := range p.Solutions {
				assert.Equal(t, p.Dims(), s.Value.Dims(), "solution %d", i)
			}
			assert.Equal(t, orig.Solutions[0].Order, p.Solutions[0].Order)

			Puzzle(p, tc.axis, tc.back)
			assert.True(t, orig.Occupancy.Equal(p.Occupancy))
			for i := range orig.Solutions {
				assert.True(t, orig.Solutions[i].Value.Equal(p.Solutions[i].Value), "solution %d", i)
			}
		})
	}
}

func TestPuzzleClampsTransparency(t *testing.T) {
	p := lShapedPuzzle(t)
	p.Transparency = 2
	Puzzle(p, domain.Vertical, domain.Up) // length 2 -> 2
	assert.Equal(t, 2, p.Transparency)
	Puzzle(p, domain.Horizontal, domain.Right) // length becomes width 3
	assert.Equal(t, 2, p.Transparency)

	q := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 1, Length: 3, Height: 1})
	q.Transparency = 3
	Puzzle(q, domain.Horizontal, domain.Right)
	assert.Equal(t, 1, q.Transparency)
}
