// Package authoring builds new solutions for a puzzle by assigning pieces
// to its occupied cells.
package authoring

import (
	"fmt"
	"slices"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/playback"
)

// Editor drafts one solution at a time. The draft is appended to
// Puzzle.Solutions while it is edited, so rotations apply to it as well.
type Editor struct {
	p     *domain.Puzzle
	pl    *playback.Player
	draft int
	brush domain.Piece
	order []domain.Piece
}

func New(p *domain.Puzzle, pl *playback.Player) *Editor {
	return &Editor{p: p, pl: pl, draft: -1}
}

func (e *Editor) Drafting() bool { return e.draft >= 0 }

// Draft returns the solution being edited, or nil.
func (e *Editor) Draft() *domain.Solution {
	if !e.Drafting() {
		return nil
	}
	return &e.p.Solutions[e.draft]
}

// BeginAdd appends a draft with every occupied cell unassigned and
// deselects playback.
func (e *Editor) BeginAdd() error {
	if e.Drafting() {
		return domain.ErrDrafting
	}
	e.pl.Select(-1)
	e.p.Solutions = append(e.p.Solutions, domain.Solution{Value: domain.DraftFrom(e.p.Occupancy)})
	e.draft = len(e.p.Solutions) - 1
	e.brush = domain.Empty
	e.order = nil
	return nil
}

// AssignCell labels pos in the draft. Unoccupied positions are ignored;
// domain.Unassigned clears a cell.
func (e *Editor) AssignCell(pos domain.Pos, piece domain.Piece) error {
	d := e.Draft()
	if d == nil {
		return domain.ErrNotDrafting
	}
	if piece != domain.Unassigned && !e.p.Family.Valid(piece) {
		return fmt.Errorf("%w: %s", domain.ErrPieceNotInFamily, piece)
	}
	if !e.p.Occupancy.At(pos) {
		return nil
	}
	d.Value.Set(pos, piece)
	return nil
}

// SelectPiece sets the brush used by Paint.
func (e *Editor) SelectPiece(piece domain.Piece) error {
	if !e.Drafting() {
		return domain.ErrNotDrafting
	}
	if piece != domain.Unassigned && !e.p.Family.Valid(piece) {
		return fmt.Errorf("%w: %s", domain.ErrPieceNotInFamily, piece)
	}
	e.brush = piece
	return nil
}

func (e *Editor) Brush() domain.Piece { return e.brush }

// Paint assigns the selected brush to pos.
func (e *Editor) Paint(pos domain.Pos) error {
	if !e.Drafting() {
		return domain.ErrNotDrafting
	}
	if e.brush == domain.Empty {
		return fmt.Errorf("%w: no piece selected", domain.ErrPieceNotInFamily)
	}
	return e.AssignCell(pos, e.brush)
}

// SetOrder records the manual sort of pieces used at commit time.
func (e *Editor) SetOrder(pieces []domain.Piece) error {
	if !e.Drafting() {
		return domain.ErrNotDrafting
	}
	seen := make(map[domain.Piece]bool, len(pieces))
	for _, pc := range pieces {
		if !e.p.Family.Valid(pc) {
			return fmt.Errorf("%w: %s", domain.ErrPieceNotInFamily, pc)
		}
		if seen[pc] {
			return fmt.Errorf("piece %s listed twice", pc)
		}
		seen[pc] = true
	}
	e.order = append([]domain.Piece(nil), pieces...)
	return nil
}

// Order returns the current sort: the manual one if set, otherwise the
// pieces of the draft in the order they first appear.
func (e *Editor) Order() []domain.Piece {
	if e.order != nil {
		return append([]domain.Piece(nil), e.order...)
	}
	d := e.Draft()
	if d == nil {
		return nil
	}
	var out []domain.Piece
	d.Value.Each(func(_ domain.Pos, pc domain.Piece) {
		if pc.IsPiece() && !slices.Contains(out, pc) {
			out = append(out, pc)
		}
	})
	return out
}

// Commit finalizes the draft. The piece order comes from the sort state,
// restricted to pieces actually used, with unsorted used pieces appended
// in family order. The committed solution becomes the active one.
func (e *Editor) Commit(description string) (int, error) {
	d := e.Draft()
	if d == nil {
		return -1, domain.ErrNotDrafting
	}
	used := map[domain.Piece]bool{}
	incomplete := false
	d.Value.Each(func(_ domain.Pos, pc domain.Piece) {
		switch {
		case pc == domain.Unassigned:
			incomplete = true
		case pc.IsPiece():
			used[pc] = true
		}
	})
	if incomplete {
		return -1, domain.ErrIncomplete
	}

	var order []domain.Piece
	for _, pc := range e.Order() {
		if used[pc] {
			order = append(order, pc)
		}
	}
	for _, pc := range e.p.Family.Pieces() {
		if used[pc] && !slices.Contains(order, pc) {
			order = append(order, pc)
		}
	}
	d.Order = order
	d.Description = description

	idx := e.draft
	e.draft = -1
	e.order = nil
	e.brush = domain.Empty
	e.pl.Select(idx)
	return idx, nil
}

// Cancel discards the draft.
func (e *Editor) Cancel() error {
	if !e.Drafting() {
		return domain.ErrNotDrafting
	}
	e.p.Solutions = slices.Delete(e.p.Solutions, e.draft, e.draft+1)
	e.draft = -1
	e.order = nil
	e.brush = domain.Empty
	e.pl.Sync()
	return nil
}

// Delete removes solutions[index]. Deleting the active solution deselects
// it; deleting an earlier one keeps the same solution selected.
func (e *Editor) Delete(index int) error {
	if e.Drafting() {
		return domain.ErrDrafting
	}
	if index < 0 || index >= len(e.p.Solutions) {
		return fmt.Errorf("solution %d out of range", index)
	}
	e.p.Solutions = slices.Delete(e.p.Solutions, index, index+1)
	switch {
	case e.p.Active == index:
		e.pl.Select(-1)
	case e.p.Active > index:
		e.p.Active--
	}
	e.pl.Sync()
	return nil
}
