// Package playback steps through the piece reveal order of a puzzle's
// selected solution.
package playback

import "svw.info/polygen/internal/domain"

// Player holds the reveal position for the puzzle's active solution. The
// selection itself lives in Puzzle.Active so it survives export.
type Player struct {
	p      *domain.Puzzle
	reveal int
}

// New binds a player to p with the active solution fully revealed.
func New(p *domain.Puzzle) *Player {
	pl := &Player{p: p}
	pl.Select(p.Active)
	return pl
}

// Select makes index the active solution, clamped to [-1, len-1], and
// reveals all of its pieces. It returns the index actually selected.
func (pl *Player) Select(index int) int {
	n := len(pl.p.Solutions)
	switch {
	case index < -1:
		index = -1
	case index >= n:
		index = n - 1
	}
	pl.p.Active = index
	pl.reveal = pl.total()
	return index
}

func (pl *Player) Active() int { return pl.p.Active }

// Reveal is the number of pieces currently shown.
func (pl *Player) Reveal() int { return pl.reveal }

func (pl *Player) total() int {
	if s := pl.solution(); s != nil {
		return len(s.Order)
	}
	return 0
}

func (pl *Player) solution() *domain.Solution {
	i := pl.p.Active
	if i < 0 || i >= len(pl.p.Solutions) {
		return nil
	}
	return &pl.p.Solutions[i]
}

func (pl *Player) Start() { pl.set(1) }

func (pl *Player) End() { pl.set(pl.total()) }

func (pl *Player) Forward() { pl.set(pl.reveal + 1) }

func (pl *Player) Backward() { pl.set(pl.reveal - 1) }

// Seek reveals the first n pieces, clamped like the other steps.
func (pl *Player) Seek(n int) { pl.set(n) }

// set clamps n to [1, len(order)]. An empty order pins reveal at 0.
func (pl *Player) set(n int) {
	total := pl.total()
	if total == 0 {
		pl.reveal = 0
		return
	}
	pl.reveal = max(1, min(n, total))
}

// Shown returns the pieces revealed at the current step, in order.
func (pl *Player) Shown() []domain.Piece {
	s := pl.solution()
	if s == nil {
		return nil
	}
	return append([]domain.Piece(nil), s.Order[:min(pl.reveal, len(s.Order))]...)
}

// Visible reports whether the cell at pos is drawn at the current step: it
// must be occupied, and when a solution is selected its piece must be among
// the first Reveal entries of the order.
func (pl *Player) Visible(pos domain.Pos) bool {
	if !pl.p.Occupancy.At(pos) {
		return false
	}
	s := pl.solution()
	if s == nil {
		return true
	}
	piece := s.Value.At(pos)
	for _, o := range s.Order[:min(pl.reveal, len(s.Order))] {
		if o == piece {
			return true
		}
	}
	return false
}

// Piece returns the label of pos in the active solution, or Unassigned
// when no solution is selected.
func (pl *Player) Piece(pos domain.Pos) domain.Piece {
	if !pl.p.Occupancy.At(pos) {
		return domain.Empty
	}
	if s := pl.solution(); s != nil {
		return s.Value.At(pos)
	}
	return domain.Unassigned
}

// Sync re-clamps the reveal count after the puzzle changed underneath the
// player, for example after a solution was deleted.
func (pl *Player) Sync() {
	if pl.p.Active >= len(pl.p.Solutions) {
		pl.p.Active = -1
	}
	pl.set(pl.reveal)
}
