package ports

import (
	"context"
	"io"
	"time"

	"svw.info/polygen/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver places every piece of the puzzle's family exactly once on its
// occupied cells. A non-nil constraint pins cells labelled with a piece to
// that piece. A limit of zero or less enumerates every solution.
type Solver interface {
	Solve(ctx context.Context, p *domain.Puzzle, constraint *domain.Grid[domain.Piece], limit int) ([]domain.Grid[domain.Piece], Stats, error)
	Count(ctx context.Context, p *domain.Puzzle, limit int) (int, Stats, error)
}

// Generator creates new puzzles for a piece family.
type Generator interface {
	Generate(ctx context.Context, seed int64, family domain.Family) (*domain.Puzzle, Stats, error)
}

// Validator checks a solution against its puzzle.
type Validator interface {
	Validate(ctx context.Context, p *domain.Puzzle, s *domain.Solution) (ok bool, conflicts []domain.Pos, err error)
}

// Hinter suggests the next piece for a solution draft.
type Hinter interface {
	Hint(ctx context.Context, p *domain.Puzzle, draft *domain.Solution) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
	Delete(ctx context.Context, id string) error
}

// Exporter writes a puzzle in a document format.
type Exporter interface {
	Export(w io.Writer, p *domain.Puzzle) error
}
