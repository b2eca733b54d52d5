package breakout

import (
	"fmt"

	"github.com/vovakirdan/gridbreak/internal/core"
)

// Panel layout below the map.
const (
	PanelRows = 5
	MsgStart  = 20
)

// ScreenSize returns the size of the full frame: the map, its bottom
// border and the status/message panels.
func (e *Engine) ScreenSize() (w, h int) {
	return e.cfg.Board.Width, e.cfg.Board.Height + 1 + PanelRows
}

// Render draws the map, a '-' border under it, the status panel and the
// most recent messages into dst.
func (e *Engine) Render(dst *core.Screen) {
	w, h := e.cfg.Board.Width, e.cfg.Board.Height
	dst.Clear()

	for y := range h {
		for x := range w {
			t := e.grid.Get(x, y)
			dst.SetCell(x, y, core.Cell{Rune: t.Glyph(), Color: t.Color()})
		}
	}
	dst.DrawHLine(0, h, w, '-')

	top := h + 1
	st := e.Status()
	dst.DrawText(0, top, fmt.Sprintf("Invaders: %d", st.Invaders))
	dst.DrawText(0, top+1, fmt.Sprintf("Lives: %d", st.Lives))
	dst.DrawText(0, top+2, "Move: "+st.Move)
	dst.DrawText(0, top+3, fmt.Sprintf("Score: %d", st.Score))

	if MsgStart >= w {
		return
	}
	maxLen := w - MsgStart - 1
	msgs := e.messages
	if len(msgs) > PanelRows {
		msgs = msgs[len(msgs)-PanelRows:]
	}
	for i, m := range msgs {
		r := []rune(m)
		r = r[:core.Clamp(len(r), 0, maxLen)]
		dst.DrawTextColor(MsgStart, top+i, string(r), core.ColorWhite)
	}
}
