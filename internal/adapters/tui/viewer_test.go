package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/session"
)

// corner is V in the top-left corner and L around the right edge of a
// single 3x3 layer.
func corner() *domain.Puzzle {
	p := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 3, Length: 3, Height: 1})
	sol := domain.NewGrid[domain.Piece](p.Dims())
	for pos, pc := range map[domain.Pos]domain.Piece{
		{L: 0, W: 0}: 'V', {L: 0, W: 1}: 'V', {L: 1, W: 0}: 'V',
		{L: 0, W: 2}: 'L', {L: 1, W: 2}: 'L', {L: 2, W: 2}: 'L', {L: 2, W: 1}: 'L',
	} {
		p.Occupancy.Set(pos, true)
		sol.Set(pos, pc)
	}
	p.Name = "corner"
	p.Solutions = []domain.Solution{{Value: sol, Order: []domain.Piece{'V', 'L'}}}
	p.Active = 0
	return p
}

func newViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return New(screen, session.New(corner()), zap.NewNop()), screen
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func special(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

// press feeds runes as key presses; '←' '→' '↑' '↓' stand for the arrows.
func press(v *Viewer, keys string) {
	arrows := map[rune]tcell.Key{'←': tcell.KeyLeft, '→': tcell.KeyRight, '↑': tcell.KeyUp, '↓': tcell.KeyDown}
	for _, r := range keys {
		if k, ok := arrows[r]; ok {
			v.HandleKey(special(k))
			continue
		}
		v.HandleKey(key(r))
	}
}

func row(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawShowsPiecesAndStatus(t *testing.T) {
	v, screen := newViewer(t)
	v.Draw()

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, 'V', r)
	assert.Contains(t, row(screen, 22), "corner soma 3x3x1")
	assert.Contains(t, row(screen, 22), "solution 1/1")
	assert.Equal(t, help, row(screen, 23))
}

func TestStepKeysHidePieces(t *testing.T) {
	v, screen := newViewer(t)
	assert.False(t, v.HandleKey(key('<')))
	v.Draw()

	// only V is revealed; L's far corner at (l2, w2) is not drawn
	r, _, _, _ := screen.GetContent(2*2+2, 2)
	assert.Equal(t, ' ', r)
	assert.Equal(t, 1, v.s.Player.Reveal())

	v.HandleKey(key(']'))
	assert.Equal(t, 2, v.s.Player.Reveal())
	v.HandleKey(key('['))
	v.HandleKey(key('>'))
	assert.Equal(t, 2, v.s.Player.Reveal())
}

func TestSelectionKeys(t *testing.T) {
	v, screen := newViewer(t)
	v.HandleKey(key('0'))
	assert.Equal(t, -1, v.s.Puzzle.Active)
	v.HandleKey(key('n'))
	assert.Equal(t, 0, v.s.Puzzle.Active)
	v.HandleKey(key('p'))
	assert.Equal(t, -1, v.s.Puzzle.Active)

	v.Draw()
	assert.Contains(t, row(screen, 22), "solution none")
	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, '#', r, "cells without a selected solution are unlabelled")
}

func TestRotateAndViewKeys(t *testing.T) {
	v, _ := newViewer(t)
	v.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.Equal(t, domain.Dims{Width: 3, Length: 1, Height: 3}, v.s.Puzzle.Dims())
	v.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	assert.Equal(t, domain.Dims{Width: 3, Length: 3, Height: 1}, v.s.Puzzle.Dims())

	v.HandleKey(key('t'))
	v.HandleKey(key('t'))
	assert.Equal(t, 2, v.s.Puzzle.Transparency)
	v.HandleKey(key('T'))
	assert.Equal(t, 1, v.s.Puzzle.Transparency)

	v.HandleKey(key('a'))
	assert.Equal(t, domain.AngleLeftRight, v.s.Puzzle.Angle)
}

func TestQuitKeys(t *testing.T) {
	v, _ := newViewer(t)
	assert.True(t, v.HandleKey(key('q')))
	assert.True(t, v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, v.HandleKey(key('x')))
}

func TestEventsMarkDirty(t *testing.T) {
	v, _ := newViewer(t)
	v.Draw()
	assert.False(t, v.dirty)
	v.HandleKey(key('a'))
	assert.True(t, v.dirty)
}

func TestDraftCommitDeleteCycle(t *testing.T) {
	v, screen := newViewer(t)
	calls := 0
	v.s.Subscribe(func(session.Event) { calls++ })

	press(v, "A")
	require.True(t, v.s.Editor.Drafting())
	assert.Equal(t, -1, v.s.Puzzle.Active)
	assert.Equal(t, domain.Pos{}, v.cursor)

	press(v, "V → ← ↓ ")
	press(v, "L↑→→ ↓ ↓ ← ")
	assert.Equal(t, domain.Pos{L: 2, W: 1}, v.cursor)

	v.Draw()
	assert.Contains(t, row(screen, 22), "draft 2  brush L  cell h0 l2 w1")
	assert.Equal(t, draftHelp, row(screen, 23))
	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, 'V', r)

	assert.False(t, v.HandleKey(special(tcell.KeyEnter)))
	assert.False(t, v.s.Editor.Drafting())
	require.Len(t, v.s.Puzzle.Solutions, 2)
	assert.Equal(t, 1, v.s.Puzzle.Active)
	assert.Equal(t, v.s.Puzzle.Solutions[0].Value, v.s.Puzzle.Solutions[1].Value)
	assert.Equal(t, []domain.Piece{'V', 'L'}, v.s.Puzzle.Solutions[1].Order)

	press(v, "x")
	assert.Len(t, v.s.Puzzle.Solutions, 1)
	assert.Equal(t, -1, v.s.Puzzle.Active)
	assert.Greater(t, calls, 10)
}

func TestDraftCursorStaysInside(t *testing.T) {
	v, _ := newViewer(t)
	press(v, "A←←↑↑,,")
	assert.Equal(t, domain.Pos{}, v.cursor)
	press(v, "→→→→↓↓↓↓..")
	assert.Equal(t, domain.Pos{L: 2, W: 2}, v.cursor)
	assert.Equal(t, domain.Dims{Width: 3, Length: 3, Height: 1}, v.s.Puzzle.Dims(), "arrows do not turn while drafting")
}

func TestDraftErrorsAndCancel(t *testing.T) {
	v, screen := newViewer(t)
	press(v, "A ")
	v.Draw()
	assert.Contains(t, row(screen, 21), "no piece selected")

	press(v, "F")
	assert.Equal(t, domain.Empty, v.s.Editor.Brush(), "F is not a soma piece")

	press(v, "V ")
	assert.Equal(t, domain.Piece('V'), v.s.Editor.Draft().Value.At(domain.Pos{}))
	v.HandleKey(special(tcell.KeyBackspace2))
	assert.Equal(t, domain.Unassigned, v.s.Editor.Draft().Value.At(domain.Pos{}))

	v.HandleKey(special(tcell.KeyEnter))
	assert.True(t, v.s.Editor.Drafting(), "an incomplete draft stays open")
	v.Draw()
	assert.NotEmpty(t, row(screen, 21))

	assert.False(t, v.HandleKey(special(tcell.KeyEscape)), "escape cancels the draft instead of quitting")
	assert.False(t, v.s.Editor.Drafting())
	assert.Len(t, v.s.Puzzle.Solutions, 1)
	v.Draw()
	assert.Empty(t, row(screen, 21))
	assert.Equal(t, help, row(screen, 23))
}
