// Package render lays out the visible cells of a puzzle for display.
package render

import (
	"slices"
	"strconv"
	"strings"

	"svw.info/polygen/internal/authoring"
	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/playback"
)

// Tile is one visible cell at screen coordinates. Tiles are two columns
// wide and one row tall.
type Tile struct {
	Pos         domain.Pos   `json:"pos"`
	X           int          `json:"x"`
	Y           int          `json:"y"`
	Piece       domain.Piece `json:"-"`
	Translucent bool         `json:"translucent,omitempty"`
}

// Project returns the visible cells in painting order, far to near. While
// ed is drafting every occupied cell is shown with its draft label;
// otherwise the player decides visibility and labels. ed may be nil.
func Project(p *domain.Puzzle, pl *playback.Player, ed *authoring.Editor) []Tile {
	visible := pl.Visible
	label := pl.Piece
	if ed != nil && ed.Drafting() {
		draft := ed.Draft()
		visible = p.Occupancy.At
		label = draft.Value.At
	}

	d := p.Dims()
	var tiles []Tile
	p.Occupancy.Each(func(pos domain.Pos, _ bool) {
		if !visible(pos) {
			return
		}
		x, y := place(p.Angle, d, pos)
		tiles = append(tiles, Tile{
			Pos:         pos,
			X:           x,
			Y:           y,
			Piece:       label(pos),
			Translucent: pos.L < p.Transparency,
		})
	})
	slices.SortStableFunc(tiles, func(a, b Tile) int {
		if a.Pos.L != b.Pos.L {
			return b.Pos.L - a.Pos.L
		}
		if a.Pos.H != b.Pos.H {
			return a.Pos.H - b.Pos.H
		}
		return b.Pos.W - a.Pos.W
	})
	return tiles
}

func place(a domain.Angle, d domain.Dims, p domain.Pos) (x, y int) {
	switch a {
	case domain.AngleLeftRight:
		return 2 * p.W, 2 * (d.Height - 1 - p.H)
	case domain.AngleUp:
		return 2 * p.W, 2 * p.L
	default:
		return 2*p.W + p.L, p.L + 2*(d.Height-1-p.H)
	}
}

// Bounds is the canvas size needed to draw tiles.
func Bounds(tiles []Tile) (w, h int) {
	for _, t := range tiles {
		w = max(w, t.X+2)
		h = max(h, t.Y+1)
	}
	return w, h
}

// Glyph is the rune drawn for a tile; translucent tiles use lower case.
func Glyph(t Tile) rune {
	switch {
	case t.Piece.IsPiece() && t.Translucent:
		return rune(t.Piece) + ('a' - 'A')
	case t.Piece.IsPiece():
		return rune(t.Piece)
	case t.Translucent:
		return '+'
	default:
		return '#'
	}
}

// Canvas paints tiles into text lines.
func Canvas(tiles []Tile) []string {
	w, h := Bounds(tiles)
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}
	for _, t := range tiles {
		grid[t.Y][t.X] = Glyph(t)
		grid[t.Y][t.X+1] = ' '
	}
	out := make([]string, h)
	for i, row := range grid {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

// Layers prints a grid layer by layer, top layer first.
func Layers(g domain.Grid[domain.Piece]) string {
	d := g.Dims()
	var b strings.Builder
	for h := d.Height - 1; h >= 0; h-- {
		b.WriteString("layer ")
		b.WriteString(strconv.Itoa(h))
		b.WriteByte('\n')
		for l := 0; l < d.Length; l++ {
			for w := 0; w < d.Width; w++ {
				if w > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(g.At(domain.Pos{H: h, L: l, W: w}).String())
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
