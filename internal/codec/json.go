// Package codec reads and writes the Polygen JSON exchange format:
//
//	{"name","desc","type","angle","width","length","height",
//	 "value": [h][l][w] of 0/1, "solution_point",
//	 "solution": [{"value": [h][l][w] of 0, 1 or a piece letter, "sort", "desc"}],
//	 "difficulty","solve_state","solve_number","transparent"}
//
// Decoding validates the whole document before returning a puzzle, so a
// rejected import never leaves a half-applied state behind.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"svw.info/polygen/internal/domain"
)

type wirePuzzle struct {
	Name          string         `json:"name"`
	Desc          string         `json:"desc"`
	Type          *string        `json:"type"`
	Angle         string         `json:"angle"`
	Width         *int           `json:"width"`
	Length        *int           `json:"length"`
	Height        *int           `json:"height"`
	Value         [][][]int      `json:"value"`
	SolutionPoint *int           `json:"solution_point"`
	Solution      []wireSolution `json:"solution"`
	Difficulty    int            `json:"difficulty"`
	SolveState    int            `json:"solve_state"`
	SolveNumber   int            `json:"solve_number"`
	Transparent   int            `json:"transparent"`
}

type wireSolution struct {
	Value [][][]wireCell `json:"value"`
	Sort  []string       `json:"sort"`
	Desc  string         `json:"desc"`
}

// wireCell is 0 for empty, 1 for unassigned, or a one-letter piece string.
type wireCell domain.Piece

func (c wireCell) MarshalJSON() ([]byte, error) {
	switch p := domain.Piece(c); {
	case p == domain.Empty:
		return []byte("0"), nil
	case p == domain.Unassigned:
		return []byte("1"), nil
	default:
		return json.Marshal(p.String())
	}
}

func (c *wireCell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "0":
		*c = wireCell(domain.Empty)
		return nil
	case "1":
		*c = wireCell(domain.Unassigned)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("solution cell %s: want 0, 1 or a piece letter", b)
	}
	p, err := domain.ParsePiece(s)
	if err != nil {
		return err
	}
	*c = wireCell(p)
	return nil
}

// Decode reads and validates one puzzle.
func Decode(r io.Reader) (*domain.Puzzle, error) {
	var w wirePuzzle
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPuzzle, err)
	}
	return fromWire(&w)
}

func Unmarshal(data []byte) (*domain.Puzzle, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes p in the exchange format.
func Encode(w io.Writer, p *domain.Puzzle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toWire(p))
}

func Marshal(p *domain.Puzzle) ([]byte, error) {
	return json.Marshal(toWire(p))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidPuzzle, fmt.Sprintf(format, args...))
}

func fromWire(w *wirePuzzle) (*domain.Puzzle, error) {
	var missing []string
	if w.Type == nil {
		missing = append(missing, "type")
	}
	if w.Width == nil {
		missing = append(missing, "width")
	}
	if w.Length == nil {
		missing = append(missing, "length")
	}
	if w.Height == nil {
		missing = append(missing, "height")
	}
	if w.Value == nil {
		missing = append(missing, "value")
	}
	if len(missing) > 0 {
		return nil, invalid("missing fields: %s", strings.Join(missing, ", "))
	}

	family, err := domain.ParseFamily(*w.Type)
	if err != nil {
		return nil, err
	}
	angle, err := domain.ParseAngle(w.Angle)
	if err != nil {
		return nil, err
	}
	d := domain.Dims{Width: *w.Width, Length: *w.Length, Height: *w.Height}
	if d.Width <= 0 || d.Length <= 0 || d.Height <= 0 {
		return nil, invalid("dimensions must be positive, got %dx%dx%d", d.Width, d.Length, d.Height)
	}

	for h, layer := range w.Value {
		for l, row := range layer {
			for x, v := range row {
				if v != 0 && v != 1 {
					return nil, invalid("value[%d][%d][%d] = %d, want 0 or 1", h, l, x, v)
				}
			}
		}
	}
	ints, err := domain.GridFromLayers(w.Value)
	if err != nil {
		return nil, invalid("value: %v", err)
	}
	if ints.Dims() != d {
		return nil, invalid("value grid is %v, header says %v", ints.Dims(), d)
	}

	p := domain.NewPuzzle(family, d)
	p.Name = w.Name
	p.Description = w.Desc
	p.Angle = angle
	p.Occupancy = domain.Map(ints, func(_ domain.Pos, v int) bool { return v == 1 })
	p.Difficulty = domain.Difficulty(w.Difficulty)
	p.SolveState = domain.SolveState(w.SolveState)
	p.SolveNumber = w.SolveNumber

	for i, ws := range w.Solution {
		cells, err := domain.GridFromLayers(ws.Value)
		if err != nil {
			return nil, invalid("solution %d: %v", i, err)
		}
		sol := domain.Solution{
			Value:       domain.Map(cells, func(_ domain.Pos, c wireCell) domain.Piece { return domain.Piece(c) }),
			Description: ws.Desc,
		}
		for _, s := range ws.Sort {
			pc, err := domain.ParsePiece(s)
			if err != nil {
				return nil, fmt.Errorf("solution %d sort: %w", i, err)
			}
			sol.Order = append(sol.Order, pc)
		}
		sol.Order = completeOrder(family, sol)
		p.Solutions = append(p.Solutions, sol)
	}

	// out-of-range view state is clamped, not rejected
	p.Active = -1
	if w.SolutionPoint != nil {
		p.Active = max(-1, min(*w.SolutionPoint, len(p.Solutions)-1))
	}
	p.Transparency = max(0, min(w.Transparent, d.Length))

	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

// completeOrder appends, in family order, the pieces a solution places
// but its order leaves out, so every placed piece can be revealed.
func completeOrder(f domain.Family, s domain.Solution) []domain.Piece {
	order := s.Order
	for _, pc := range f.Pieces() {
		if slices.Contains(order, pc) {
			continue
		}
		used := false
		s.Value.Each(func(_ domain.Pos, v domain.Piece) { used = used || v == pc })
		if used {
			order = append(order, pc)
		}
	}
	return order
}

func toWire(p *domain.Puzzle) *wirePuzzle {
	d := p.Dims()
	typ := p.Family.String()
	active := p.Active
	w := &wirePuzzle{
		Name:          p.Name,
		Desc:          p.Description,
		Type:          &typ,
		Angle:         p.Angle.String(),
		Width:         &d.Width,
		Length:        &d.Length,
		Height:        &d.Height,
		Value:         domain.Map(p.Occupancy, func(_ domain.Pos, v bool) int { return boolInt(v) }).Layers(),
		SolutionPoint: &active,
		Solution:      make([]wireSolution, 0, len(p.Solutions)),
		Difficulty:    int(p.Difficulty),
		SolveState:    int(p.SolveState),
		SolveNumber:   p.SolveNumber,
		Transparent:   p.Transparency,
	}
	for _, s := range p.Solutions {
		ws := wireSolution{
			Value: domain.Map(s.Value, func(_ domain.Pos, pc domain.Piece) wireCell { return wireCell(pc) }).Layers(),
			Sort:  make([]string, 0, len(s.Order)),
			Desc:  s.Description,
		}
		for _, pc := range s.Order {
			ws.Sort = append(ws.Sort, pc.String())
		}
		w.Solution = append(w.Solution, ws)
	}
	return w
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
