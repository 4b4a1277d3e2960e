package hint

import (
	"context"
	"errors"
	"fmt"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/ports"
)

// NextPiece completes a draft with the solver and points at the first
// piece, in family order, that the draft has not fully placed yet.
type NextPiece struct {
	Solver ports.Solver
}

func NewNextPiece(s ports.Solver) *NextPiece { return &NextPiece{Solver: s} }

// Hint returns false when the draft is already complete or when no
// completion agrees with the cells assigned so far.
func (h *NextPiece) Hint(ctx context.Context, p *domain.Puzzle, draft *domain.Solution) (domain.Hint, bool, error) {
	if h.Solver == nil {
		return domain.Hint{}, false, errors.New("hint: no solver configured")
	}
	sols, _, err := h.Solver.Solve(ctx, p, &draft.Value, 1)
	if err != nil {
		return domain.Hint{}, false, err
	}
	if len(sols) == 0 {
		return domain.Hint{Message: "no completion agrees with the assigned cells"}, false, nil
	}
	full := sols[0]

	for _, pc := range p.Family.Pieces() {
		var cells []domain.Pos
		missing := false
		full.Each(func(pos domain.Pos, v domain.Piece) {
			if v != pc {
				return
			}
			cells = append(cells, pos)
			if draft.Value.At(pos) != pc {
				missing = true
			}
		})
		if missing {
			return domain.Hint{
				Piece:   pc,
				Cells:   cells,
				Message: fmt.Sprintf("Next: piece %s fits in %d cells", pc, len(cells)),
			}, true, nil
		}
	}
	return domain.Hint{}, false, nil
}
