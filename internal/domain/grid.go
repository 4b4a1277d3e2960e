package domain

import "fmt"

// Dims are puzzle dimensions in cells.
type Dims struct {
	Width  int `json:"width"`
	Length int `json:"length"`
	Height int `json:"height"`
}

func (d Dims) Volume() int { return d.Width * d.Length * d.Height }

func (d Dims) Contains(p Pos) bool {
	return p.H >= 0 && p.H < d.Height &&
		p.L >= 0 && p.L < d.Length &&
		p.W >= 0 && p.W < d.Width
}

// Pos addresses a cell as [height][length][width].
type Pos struct {
	H int `json:"h"`
	L int `json:"l"`
	W int `json:"w"`
}

func (p Pos) Add(o Pos) Pos { return Pos{H: p.H + o.H, L: p.L + o.L, W: p.W + o.W} }

// Grid is a dense 3-D array with fixed dimensions.
type Grid[T comparable] struct {
	dims  Dims
	cells []T
}

func NewGrid[T comparable](d Dims) Grid[T] {
	if d.Width < 0 || d.Length < 0 || d.Height < 0 {
		d = Dims{}
	}
	return Grid[T]{dims: d, cells: make([]T, d.Volume())}
}

// GridFromLayers builds a grid from nested [h][l][w] slices. Every layer and
// row must have the same length.
func GridFromLayers[T comparable](layers [][][]T) (Grid[T], error) {
	d := Dims{Height: len(layers)}
	if d.Height > 0 {
		d.Length = len(layers[0])
		if d.Length > 0 {
			d.Width = len(layers[0][0])
		}
	}
	g := NewGrid[T](d)
	for h, layer := range layers {
		if len(layer) != d.Length {
			return Grid[T]{}, fmt.Errorf("layer %d has %d rows, want %d", h, len(layer), d.Length)
		}
		for l, row := range layer {
			if len(row) != d.Width {
				return Grid[T]{}, fmt.Errorf("layer %d row %d has %d cells, want %d", h, l, len(row), d.Width)
			}
			for w, v := range row {
				g.Set(Pos{H: h, L: l, W: w}, v)
			}
		}
	}
	return g, nil
}

func (g Grid[T]) Dims() Dims { return g.dims }

func (g Grid[T]) index(p Pos) int {
	return (p.H*g.dims.Length+p.L)*g.dims.Width + p.W
}

// At returns the zero value for positions outside the grid.
func (g Grid[T]) At(p Pos) T {
	var zero T
	if !g.dims.Contains(p) {
		return zero
	}
	return g.cells[g.index(p)]
}

// Set ignores positions outside the grid.
func (g *Grid[T]) Set(p Pos, v T) {
	if !g.dims.Contains(p) {
		return
	}
	g.cells[g.index(p)] = v
}

func (g Grid[T]) Clone() Grid[T] {
	return Grid[T]{dims: g.dims, cells: append([]T(nil), g.cells...)}
}

// Each visits cells in [h][l][w] order.
func (g Grid[T]) Each(fn func(Pos, T)) {
	i := 0
	for h := 0; h < g.dims.Height; h++ {
		for l := 0; l < g.dims.Length; l++ {
			for w := 0; w < g.dims.Width; w++ {
				fn(Pos{H: h, L: l, W: w}, g.cells[i])
				i++
			}
		}
	}
}

func (g Grid[T]) Equal(o Grid[T]) bool {
	if g.dims != o.dims || len(g.cells) != len(o.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Layers returns a nested [h][l][w] copy of the grid.
func (g Grid[T]) Layers() [][][]T {
	out := make([][][]T, g.dims.Height)
	for h := range out {
		out[h] = make([][]T, g.dims.Length)
		for l := range out[h] {
			row := make([]T, g.dims.Width)
			for w := range row {
				row[w] = g.At(Pos{H: h, L: l, W: w})
			}
			out[h][l] = row
		}
	}
	return out
}

// Map builds a grid of the same shape by converting every cell.
func Map[T, U comparable](g Grid[T], fn func(Pos, T) U) Grid[U] {
	out := NewGrid[U](g.dims)
	g.Each(func(p Pos, v T) { out.Set(p, fn(p, v)) })
	return out
}
