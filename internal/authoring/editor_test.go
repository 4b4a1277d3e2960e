package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/playback"
)

// corner is a V tromino next to a 4-cell piece on one layer. The editor
// does not check shapes, so the second piece is simply labelled L.
//
//	V V L
//	V L L
//	. . L
func corner() *domain.Puzzle {
	p := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 3, Length: 3, Height: 1})
	for _, c := range cells() {
		p.Occupancy.Set(c, true)
	}
	return p
}

func cells() []domain.Pos {
	return []domain.Pos{
		{L: 0, W: 0}, {L: 0, W: 1}, {L: 1, W: 0},
		{L: 0, W: 2}, {L: 1, W: 1}, {L: 1, W: 2}, {L: 2, W: 2},
	}
}

func newEditor(p *domain.Puzzle) (*Editor, *playback.Player) {
	pl := playback.New(p)
	return New(p, pl), pl
}

func TestBeginAddCreatesUnassignedDraft(t *testing.T) {
	p := corner()
	e, pl := newEditor(p)
	require.NoError(t, e.BeginAdd())
	require.True(t, e.Drafting())
	require.Len(t, p.Solutions, 1)
	assert.Equal(t, -1, pl.Active())

	p.Occupancy.Each(func(pos domain.Pos, filled bool) {
		want := domain.Empty
		if filled {
			want = domain.Unassigned
		}
		assert.Equal(t, want, e.Draft().Value.At(pos), "%v", pos)
	})
	require.ErrorIs(t, e.BeginAdd(), domain.ErrDrafting)
}

func TestAssignRequiresDraft(t *testing.T) {
	e, _ := newEditor(corner())
	require.ErrorIs(t, e.AssignCell(domain.Pos{}, 'V'), domain.ErrNotDrafting)
	require.ErrorIs(t, e.Paint(domain.Pos{}), domain.ErrNotDrafting)
	_, err := e.Commit("x")
	require.ErrorIs(t, err, domain.ErrNotDrafting)
}

func TestAssignIgnoresUnoccupiedAndRejectsForeignPieces(t *testing.T) {
	p := corner()
	e, _ := newEditor(p)
	require.NoError(t, e.BeginAdd())
	require.NoError(t, e.AssignCell(domain.Pos{L: 2, W: 0}, 'V'))
	assert.Equal(t, domain.Empty, e.Draft().Value.At(domain.Pos{L: 2, W: 0}))
	require.ErrorIs(t, e.AssignCell(domain.Pos{}, 'F'), domain.ErrPieceNotInFamily)
}

func TestCommitWithManualOrder(t *testing.T) {
	p := corner()
	e, pl := newEditor(p)
	require.NoError(t, e.BeginAdd())

	require.NoError(t, e.SelectPiece('V'))
	for _, c := range cells()[:3] {
		require.NoError(t, e.Paint(c))
	}
	require.NoError(t, e.SelectPiece('L'))
	for _, c := range cells()[3:] {
		require.NoError(t, e.Paint(c))
	}
	assert.Equal(t, []domain.Piece{'V', 'L'}, e.Order())

	require.NoError(t, e.SetOrder([]domain.Piece{'T', 'L'}))
	idx, err := e.Commit("corner")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.False(t, e.Drafting())

	sol := p.Solutions[0]
	assert.Equal(t, []domain.Piece{'L', 'V'}, sol.Order, "unused T dropped, missing V appended")
	assert.Equal(t, "corner", sol.Description)
	assert.Equal(t, 0, pl.Active())
	assert.Equal(t, 2, pl.Reveal())
	require.NoError(t, p.Check())
}

func TestCommitRejectsUnassignedCells(t *testing.T) {
	p := corner()
	e, _ := newEditor(p)
	require.NoError(t, e.BeginAdd())
	require.NoError(t, e.AssignCell(cells()[0], 'V'))
	_, err := e.Commit("partial")
	require.ErrorIs(t, err, domain.ErrIncomplete)
	assert.True(t, e.Drafting(), "draft survives a failed commit")
}

func TestSetOrderValidates(t *testing.T) {
	e, _ := newEditor(corner())
	require.NoError(t, e.BeginAdd())
	require.Error(t, e.SetOrder([]domain.Piece{'V', 'V'}))
	require.ErrorIs(t, e.SetOrder([]domain.Piece{'X'}), domain.ErrPieceNotInFamily)
}

func TestCancelRemovesDraft(t *testing.T) {
	p := corner()
	e, _ := newEditor(p)
	require.NoError(t, e.BeginAdd())
	require.NoError(t, e.Cancel())
	assert.Empty(t, p.Solutions)
	assert.False(t, e.Drafting())
	require.ErrorIs(t, e.Cancel(), domain.ErrNotDrafting)
}

func commitFull(t *testing.T, e *Editor, desc string) int {
	t.Helper()
	require.NoError(t, e.BeginAdd())
	for i, c := range cells() {
		pc := domain.Piece('V')
		if i >= 3 {
			pc = 'L'
		}
		require.NoError(t, e.AssignCell(c, pc))
	}
	idx, err := e.Commit(desc)
	require.NoError(t, err)
	return idx
}

func TestDeleteActiveDeselects(t *testing.T) {
	p := corner()
	e, pl := newEditor(p)
	commitFull(t, e, "a")
	commitFull(t, e, "b")
	assert.Equal(t, 1, pl.Active())

	require.NoError(t, e.Delete(1))
	assert.Equal(t, -1, pl.Active())
	for _, c := range cells() {
		assert.True(t, pl.Visible(c), "%v", c)
	}
}

func TestDeleteEarlierKeepsSelection(t *testing.T) {
	p := corner()
	e, pl := newEditor(p)
	commitFull(t, e, "a")
	commitFull(t, e, "b")
	require.NoError(t, e.Delete(0))
	assert.Equal(t, 0, pl.Active())
	assert.Equal(t, "b", p.Solutions[pl.Active()].Description)
}

func TestDeleteGuards(t *testing.T) {
	p := corner()
	e, _ := newEditor(p)
	require.Error(t, e.Delete(0))
	require.NoError(t, e.BeginAdd())
	require.ErrorIs(t, e.Delete(0), domain.ErrDrafting)
}
