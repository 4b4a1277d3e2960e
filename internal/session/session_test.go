package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/polygen/internal/domain"
)

func bar() *domain.Puzzle {
	p := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 3, Length: 2, Height: 1})
	for _, pos := range []domain.Pos{{W: 0}, {W: 1}, {L: 1, W: 0}} {
		p.Occupancy.Set(pos, true)
	}
	return p
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	s := New(bar())
	var got []Event
	s.Subscribe(func(e Event) { got = append(got, e) })

	require.NoError(t, s.BeginAdd())
	require.NoError(t, s.AssignCell(domain.Pos{W: 0}, 'V'))
	require.NoError(t, s.AssignCell(domain.Pos{W: 1}, 'V'))
	require.NoError(t, s.AssignCell(domain.Pos{L: 1}, 'V'))
	_, err := s.Commit("v")
	require.NoError(t, err)
	s.Rotate(domain.Horizontal, domain.Right)
	s.StepStart()
	s.CycleAngle()

	assert.Equal(t, []Event{Edited, Edited, Edited, Edited, Edited, Rotated, Stepped, ViewChanged}, got)
}

func TestFailedEditDoesNotNotify(t *testing.T) {
	s := New(bar())
	calls := 0
	s.Subscribe(func(Event) { calls++ })
	require.ErrorIs(t, s.AssignCell(domain.Pos{}, 'V'), domain.ErrNotDrafting)
	require.ErrorIs(t, s.Cancel(), domain.ErrNotDrafting)
	assert.Zero(t, calls)
}

func TestPaintWithBrush(t *testing.T) {
	s := New(bar())
	var got []Event
	s.Subscribe(func(e Event) { got = append(got, e) })

	require.ErrorIs(t, s.SelectPiece('V'), domain.ErrNotDrafting)
	require.NoError(t, s.BeginAdd())
	require.ErrorIs(t, s.Paint(domain.Pos{}), domain.ErrPieceNotInFamily, "no brush yet")
	require.ErrorIs(t, s.SelectPiece('F'), domain.ErrPieceNotInFamily)
	require.Error(t, s.SetOrder([]domain.Piece{'V', 'V'}), "listed twice")
	require.NoError(t, s.SelectPiece('V'))
	require.NoError(t, s.SetOrder([]domain.Piece{'L', 'V'}))
	for _, pos := range []domain.Pos{{W: 0}, {W: 1}, {L: 1, W: 0}} {
		require.NoError(t, s.Paint(pos))
	}
	idx, err := s.Commit("painted")
	require.NoError(t, err)

	assert.Equal(t, []domain.Piece{'V'}, s.Puzzle.Solutions[idx].Order, "unused pieces drop out of the sort")
	assert.Len(t, got, 7)
	for _, e := range got {
		assert.Equal(t, Edited, e)
	}
}

func TestRotateKeepsDraftAligned(t *testing.T) {
	s := New(bar())
	require.NoError(t, s.BeginAdd())
	require.NoError(t, s.AssignCell(domain.Pos{W: 0}, 'V'))
	s.Rotate(domain.Horizontal, domain.Right)
	require.NoError(t, s.Puzzle.Check())
	assert.Len(t, s.Tiles(), 3)
}

func TestSelectNextWraps(t *testing.T) {
	p := bar()
	v := domain.DraftFrom(p.Occupancy)
	p.Solutions = []domain.Solution{{Value: v}, {Value: v.Clone()}}
	s := New(p)
	assert.Equal(t, 0, s.SelectNext(1))
	assert.Equal(t, 1, s.SelectNext(1))
	assert.Equal(t, -1, s.SelectNext(1))
	assert.Equal(t, 1, s.SelectNext(-1))
}

func TestSetTransparencyClamps(t *testing.T) {
	s := New(bar())
	s.SetTransparency(10)
	assert.Equal(t, 2, s.Puzzle.Transparency)
	s.SetTransparency(-1)
	assert.Equal(t, 0, s.Puzzle.Transparency)
}
