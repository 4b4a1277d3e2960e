package validator

import (
	"context"
	"fmt"
	"slices"

	"svw.info/polygen/internal/domain"
)

type ShapeValidator struct{}

func New() *ShapeValidator { return &ShapeValidator{} }

// Validate checks a solution against its puzzle and returns the positions
// that break it: filled cells left empty or unassigned, unfilled cells that
// carry a label, labels outside the family, and pieces whose cells do not
// form the family shape (a piece used twice fails this too). Cells of
// pieces missing from the reveal order are reported as well.
func (v *ShapeValidator) Validate(ctx context.Context, p *domain.Puzzle, s *domain.Solution) (bool, []domain.Pos, error) {
	if s.Value.Dims() != p.Dims() {
		return false, nil, fmt.Errorf("%w: solution dims %v, puzzle dims %v", domain.ErrInvalidPuzzle, s.Value.Dims(), p.Dims())
	}
	conf := make([]domain.Pos, 0, 8)
	byPiece := map[domain.Piece][]domain.Pos{}
	p.Occupancy.Each(func(pos domain.Pos, filled bool) {
		pc := s.Value.At(pos)
		switch {
		case filled && !pc.IsPiece():
			conf = append(conf, pos)
		case !filled && pc != domain.Empty:
			conf = append(conf, pos)
		case pc.IsPiece() && !p.Family.Valid(pc):
			conf = append(conf, pos)
		case pc.IsPiece():
			byPiece[pc] = append(byPiece[pc], pos)
		}
	})
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}

	for _, pc := range p.Family.Pieces() {
		got, ok := byPiece[pc]
		if !ok {
			continue
		}
		if !domain.Congruent(p.Family.Shape(pc), got) || !slices.Contains(s.Order, pc) {
			conf = append(conf, got...)
		}
	}
	return len(conf) == 0, conf, nil
}
