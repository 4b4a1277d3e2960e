// Package tui is a terminal viewer for one puzzle.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/render"
	"svw.info/polygen/internal/session"
)

const (
	help      = "arrows turn  []<> step  n/p sol  0 none  t/T depth  a view  A add  x del  q quit"
	draftHelp = "arrows move  ,. layer  A-Z brush  spc paint  bksp clear  ret commit  esc cancel"
)

var palette = []tcell.Color{
	tcell.ColorRed, tcell.ColorGreen, tcell.ColorYellow, tcell.ColorBlue,
	tcell.ColorFuchsia, tcell.ColorAqua, tcell.ColorOrange, tcell.ColorLime,
	tcell.ColorPurple, tcell.ColorTeal, tcell.ColorOlive, tcell.ColorSilver,
}

// Viewer draws a session onto a tcell screen and maps keys onto session
// operations. It redraws after every session event. While a draft is open
// the arrows move a cell cursor instead of turning the puzzle.
type Viewer struct {
	screen tcell.Screen
	s      *session.Session
	logger *zap.Logger
	dirty  bool
	cursor domain.Pos
	err    string
}

func New(screen tcell.Screen, s *session.Session, logger *zap.Logger) *Viewer {
	v := &Viewer{screen: screen, s: s, logger: logger, dirty: true}
	s.Subscribe(func(e session.Event) {
		v.dirty = true
		v.logger.Debug("session event", zap.Int("event", int(e)))
	})
	return v
}

// Run initializes the screen and processes input until quit.
func (v *Viewer) Run() error {
	if err := v.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer v.screen.Fini()
	v.screen.SetStyle(tcell.StyleDefault)
	v.screen.HideCursor()

	for {
		if v.dirty {
			v.Draw()
		}
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			v.screen.Sync()
			v.dirty = true
		case nil:
			return nil
		}
	}
}

// HandleKey applies one key press and reports whether the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	if v.err != "" {
		v.err = ""
		v.dirty = true
	}
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if v.s.Editor.Drafting() && v.handleDraftKey(ev) {
		return false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyLeft:
		v.s.Rotate(domain.Horizontal, domain.Left)
	case tcell.KeyRight:
		v.s.Rotate(domain.Horizontal, domain.Right)
	case tcell.KeyUp:
		v.s.Rotate(domain.Vertical, domain.Up)
	case tcell.KeyDown:
		v.s.Rotate(domain.Vertical, domain.Down)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '[':
			v.s.StepBackward()
		case ']':
			v.s.StepForward()
		case '<':
			v.s.StepStart()
		case '>':
			v.s.StepEnd()
		case 'n':
			v.s.SelectNext(1)
		case 'p':
			v.s.SelectNext(-1)
		case '0':
			v.s.Select(-1)
		case 't':
			v.s.SetTransparency(v.s.Puzzle.Transparency + 1)
		case 'T':
			v.s.SetTransparency(v.s.Puzzle.Transparency - 1)
		case 'a':
			v.s.CycleAngle()
		case 'A':
			v.fail(v.beginDraft())
		case 'x':
			if v.s.Puzzle.Active >= 0 {
				v.fail(v.s.Delete(v.s.Puzzle.Active))
			}
		}
	}
	return false
}

func (v *Viewer) beginDraft() error {
	if err := v.s.BeginAdd(); err != nil {
		return err
	}
	v.cursor = domain.Pos{}
	found := false
	v.s.Puzzle.Occupancy.Each(func(pos domain.Pos, on bool) {
		if on && !found {
			v.cursor, found = pos, true
		}
	})
	return nil
}

// handleDraftKey reports whether ev was consumed by the draft editor.
// Keys it leaves alone fall through to the viewing keys.
func (v *Viewer) handleDraftKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		v.move(0, 0, -1)
	case tcell.KeyRight:
		v.move(0, 0, 1)
	case tcell.KeyUp:
		v.move(0, -1, 0)
	case tcell.KeyDown:
		v.move(0, 1, 0)
	case tcell.KeyPgUp:
		v.move(1, 0, 0)
	case tcell.KeyPgDn:
		v.move(-1, 0, 0)
	case tcell.KeyEnter:
		_, err := v.s.Commit("")
		v.fail(err)
	case tcell.KeyEscape:
		v.fail(v.s.Cancel())
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		v.fail(v.s.AssignCell(v.cursor, domain.Unassigned))
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == ' ':
			v.fail(v.s.Paint(v.cursor))
		case r == '.':
			v.move(1, 0, 0)
		case r == ',':
			v.move(-1, 0, 0)
		case r >= 'A' && r <= 'Z':
			v.fail(v.s.SelectPiece(domain.Piece(r)))
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (v *Viewer) move(dh, dl, dw int) {
	d := v.s.Puzzle.Dims()
	v.cursor = domain.Pos{
		H: clamp(v.cursor.H+dh, d.Height),
		L: clamp(v.cursor.L+dl, d.Length),
		W: clamp(v.cursor.W+dw, d.Width),
	}
	v.dirty = true
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}

// fail keeps err for the message line until the next key.
func (v *Viewer) fail(err error) {
	if err == nil {
		return
	}
	v.logger.Debug("edit rejected", zap.Error(err))
	v.err = err.Error()
	v.dirty = true
}

func styleFor(t render.Tile) tcell.Style {
	st := tcell.StyleDefault
	if t.Piece.IsPiece() {
		st = st.Foreground(palette[int(t.Piece-'A')%len(palette)])
	}
	if t.Translucent {
		st = st.Dim(true)
	} else {
		st = st.Bold(true)
	}
	return st
}

// Draw paints the projection, then a status line and the key help.
func (v *Viewer) Draw() {
	v.screen.Clear()
	drafting := v.s.Editor.Drafting()
	for _, t := range v.s.Tiles() {
		st := styleFor(t)
		if drafting && t.Pos == v.cursor {
			st = st.Reverse(true)
		}
		v.screen.SetContent(t.X, t.Y, render.Glyph(t), nil, st)
	}
	_, h := v.screen.Size()
	v.text(0, h-3, v.err)
	v.text(0, h-2, v.status())
	if drafting {
		v.text(0, h-1, draftHelp)
	} else {
		v.text(0, h-1, help)
	}
	v.screen.Show()
	v.dirty = false
}

func (v *Viewer) status() string {
	p := v.s.Puzzle
	d := p.Dims()
	if v.s.Editor.Drafting() {
		c := v.cursor
		return fmt.Sprintf("%s %s %dx%dx%d  draft %d  brush %s  cell h%d l%d w%d  %s",
			p.Name, p.Family, d.Width, d.Length, d.Height, len(p.Solutions), v.s.Editor.Brush(), c.H, c.L, c.W, p.Angle)
	}
	sol := "none"
	if p.Active >= 0 {
		sol = fmt.Sprintf("%d/%d", p.Active+1, len(p.Solutions))
	}
	return fmt.Sprintf("%s %s %dx%dx%d  solution %s  pieces %d  layers hidden %d  %s",
		p.Name, p.Family, d.Width, d.Length, d.Height, sol, v.s.Player.Reveal(), p.Transparency, p.Angle)
}

func (v *Viewer) text(x, y int, s string) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
