// Package session keeps one puzzle together with its playback and
// authoring state and tells subscribers when any of it changes.
//
// A Session is driven from a single goroutine; it is not safe for
// concurrent use.
package session

import (
	"svw.info/polygen/internal/authoring"
	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/playback"
	"svw.info/polygen/internal/render"
	"svw.info/polygen/internal/rotate"
)

// Event says what kind of change a subscriber is told about.
type Event int

const (
	Rotated Event = iota
	Selected
	Stepped
	Edited
	ViewChanged
)

type Session struct {
	Puzzle *domain.Puzzle
	Player *playback.Player
	Editor *authoring.Editor

	subs []func(Event)
}

func New(p *domain.Puzzle) *Session {
	pl := playback.New(p)
	return &Session{Puzzle: p, Player: pl, Editor: authoring.New(p, pl)}
}

// Subscribe registers fn to run after every successful mutation.
func (s *Session) Subscribe(fn func(Event)) { s.subs = append(s.subs, fn) }

func (s *Session) notify(e Event) {
	for _, fn := range s.subs {
		fn(e)
	}
}

// Tiles projects the current state for display.
func (s *Session) Tiles() []render.Tile { return render.Project(s.Puzzle, s.Player, s.Editor) }

func (s *Session) Rotate(axis domain.Axis, dir domain.Direction) {
	rotate.Puzzle(s.Puzzle, axis, dir)
	s.notify(Rotated)
}

func (s *Session) Select(index int) int {
	i := s.Player.Select(index)
	s.notify(Selected)
	return i
}

// SelectNext moves the selection by delta, wrapping through "none".
func (s *Session) SelectNext(delta int) int {
	n := len(s.Puzzle.Solutions) + 1
	i := ((s.Puzzle.Active+1+delta)%n+n)%n - 1
	return s.Select(i)
}

func (s *Session) StepStart() { s.Player.Start(); s.notify(Stepped) }

func (s *Session) StepEnd() { s.Player.End(); s.notify(Stepped) }

func (s *Session) StepForward() { s.Player.Forward(); s.notify(Stepped) }

func (s *Session) StepBackward() { s.Player.Backward(); s.notify(Stepped) }

// SetTransparency clamps n to 0..length.
func (s *Session) SetTransparency(n int) {
	s.Puzzle.Transparency = max(0, min(n, s.Puzzle.Dims().Length))
	s.notify(ViewChanged)
}

func (s *Session) CycleAngle() {
	s.Puzzle.Angle = s.Puzzle.Angle.Next()
	s.notify(ViewChanged)
}

// edit runs an editor operation and notifies only when it succeeds.
func (s *Session) edit(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	s.notify(Edited)
	return nil
}

func (s *Session) BeginAdd() error { return s.edit(s.Editor.BeginAdd) }

func (s *Session) AssignCell(pos domain.Pos, piece domain.Piece) error {
	return s.edit(func() error { return s.Editor.AssignCell(pos, piece) })
}

// SelectPiece sets the brush that Paint uses.
func (s *Session) SelectPiece(piece domain.Piece) error {
	return s.edit(func() error { return s.Editor.SelectPiece(piece) })
}

func (s *Session) SetOrder(pieces []domain.Piece) error {
	return s.edit(func() error { return s.Editor.SetOrder(pieces) })
}

func (s *Session) Paint(pos domain.Pos) error {
	return s.edit(func() error { return s.Editor.Paint(pos) })
}

func (s *Session) Commit(description string) (int, error) {
	idx := -1
	err := s.edit(func() error {
		var err error
		idx, err = s.Editor.Commit(description)
		return err
	})
	return idx, err
}

func (s *Session) Cancel() error { return s.edit(s.Editor.Cancel) }

func (s *Session) Delete(index int) error {
	return s.edit(func() error { return s.Editor.Delete(index) })
}
