package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/playback"
	"svw.info/polygen/internal/ports"
	"svw.info/polygen/internal/render"
	"svw.info/polygen/internal/rotate"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
	Exporter  ports.Exporter

	// Now stamps saved puzzles; nil means time.Now.
	Now func() time.Time
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage, ex ports.Exporter) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Hinter: h, Storage: st, Exporter: ex}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Rotate returns a turned copy of p.
func (u *Service) Rotate(p *domain.Puzzle, axis domain.Axis, dir domain.Direction) *domain.Puzzle {
	out := p.Clone()
	rotate.Puzzle(out, axis, dir)
	return out
}

// Render projects p with its active solution revealed up to reveal pieces.
// A reveal of zero or less shows every piece.
func (u *Service) Render(p *domain.Puzzle, reveal int) []render.Tile {
	pl := playback.New(p)
	if reveal > 0 {
		pl.Seek(reveal)
	}
	return render.Project(p, pl, nil)
}

func (u *Service) Solve(ctx context.Context, p *domain.Puzzle, limit int) ([]domain.Grid[domain.Piece], ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, p, nil, limit)
}

// SolveInto solves p, appends every solution not already recorded and
// updates the solve state. It returns the number of solutions added.
func (u *Service) SolveInto(ctx context.Context, p *domain.Puzzle, limit int) (int, ports.Stats, error) {
	found, st, err := u.Solve(ctx, p, limit)
	if err != nil {
		return 0, st, err
	}
	added := 0
	for _, g := range found {
		if known(p, g) {
			continue
		}
		p.Solutions = append(p.Solutions, domain.Solution{Value: g, Order: firstUse(p.Family, g)})
		added++
	}
	switch {
	case len(found) == 0:
		p.SolveState = domain.StateUnsolvable
	case len(found) == 1 && limit != 1:
		p.SolveState = domain.StateUnique
	default:
		p.SolveState = domain.StateSolvable
	}
	p.SolveNumber = max(p.SolveNumber, len(found))
	return added, st, nil
}

func known(p *domain.Puzzle, g domain.Grid[domain.Piece]) bool {
	for _, s := range p.Solutions {
		if s.Value.Equal(g) {
			return true
		}
	}
	return false
}

// firstUse orders pieces by the lowest layer, then row, they appear in.
func firstUse(f domain.Family, g domain.Grid[domain.Piece]) []domain.Piece {
	seen := map[domain.Piece]bool{}
	var order []domain.Piece
	g.Each(func(_ domain.Pos, v domain.Piece) {
		if f.Valid(v) && !seen[v] {
			seen[v] = true
			order = append(order, v)
		}
	})
	return order
}

func (u *Service) Count(ctx context.Context, p *domain.Puzzle, limit int) (int, ports.Stats, error) {
	if u.Solver == nil {
		return 0, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Count(ctx, p, limit)
}

func (u *Service) Generate(ctx context.Context, seed int64, f domain.Family) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, f)
}

func (u *Service) Validate(ctx context.Context, p *domain.Puzzle, s *domain.Solution) (bool, []domain.Pos, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, p, s)
}

func (u *Service) Hint(ctx context.Context, p *domain.Puzzle, draft *domain.Solution) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, p, draft)
}

func (u *Service) Export(w io.Writer, p *domain.Puzzle) error {
	if u.Exporter == nil {
		return errNotConfigured
	}
	return u.Exporter.Export(w, p)
}

// Persistence

// Save assigns an ID and creation time when missing and stores p.
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) (string, error) {
	if u.Storage == nil {
		return "", errNotConfigured
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		now := time.Now
		if u.Now != nil {
			now = u.Now
		}
		p.CreatedAt = now().UnixNano()
	}
	return p.ID, u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}

func (u *Service) Delete(ctx context.Context, id string) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Delete(ctx, id)
}
