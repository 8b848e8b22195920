package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/vancomm/sanji/internal/sanji"
)

const hint = "漢字を入れ替えて三字熟語を完成させよう！"

var (
	boardStyle    = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.NewHexColor(0x444444))
	idleStyle     = tcell.StyleDefault.Background(tcell.NewHexColor(0xeeeeee)).Foreground(tcell.ColorBlack)
	selectedStyle = tcell.StyleDefault.Background(tcell.NewHexColor(0xaaee00)).Foreground(tcell.ColorBlack)
	lockedStyle   = tcell.StyleDefault.Background(tcell.NewHexColor(0x888888)).Foreground(tcell.ColorBlack)
)

func chipStyle(status sanji.Status) tcell.Style {
	switch status {
	case sanji.Selected:
		return selectedStyle
	case sanji.Locked:
		return lockedStyle
	default:
		return idleStyle
	}
}

// Renderer draws a session onto a screen.
type Renderer struct {
	screen   tcell.Screen
	viewport Viewport
}

func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

func (r *Renderer) Resize() {
	r.viewport = NewViewport(r.screen.Size())
}

func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// drawText writes s from the board cell (col, row), advancing two cells for
// wide characters.
func (r *Renderer) drawText(col, row int, s string, style tcell.Style) {
	for _, c := range s {
		x, y := r.viewport.ToScreen(col, row)
		r.screen.SetContent(x, y, c, nil, style)
		col += runewidth.RuneWidth(c)
	}
}

// kanjiCell is where the character of a chip goes: the centre of the chip,
// shifted left by one cell for glyphs two cells wide.
func kanjiCell(c sanji.Chip) (col, row int) {
	col, row = LayoutCell(c.X+sanji.ChipSize/2, c.Y+sanji.ChipSize/2)
	if runewidth.RuneWidth(c.Character) == 2 {
		col--
	}
	return col, row
}

// Draw paints the whole frame. Chips are painted in index order, so where
// chips overlap the highest index shows, the last one [HitTest] reports.
// cursor is the chip the keyboard points at, or -1.
func (r *Renderer) Draw(s *sanji.Session, cursor int, banner string) {
	r.screen.Clear()

	for row := range BoardRows {
		for col := range BoardCols {
			x, y := r.viewport.ToScreen(col, row)
			r.screen.SetContent(x, y, ' ', nil, boardStyle)
		}
	}

	r.drawText(3, 1, fmt.Sprintf("LEVEL %d/%d", s.Level()+1, sanji.LevelCount), boardStyle.Bold(true))
	if s.Level() == 0 {
		r.drawText(6, BoardRows-2, hint, boardStyle)
	}

	for i, c := range s.Chips() {
		style := chipStyle(c.Status)
		for row := c.Y / CellHeight; row <= (c.Y+sanji.ChipSize)/CellHeight && row < BoardRows; row++ {
			for col := c.X / CellWidth; col <= (c.X+sanji.ChipSize)/CellWidth && col < BoardCols; col++ {
				if x, y := CellCenter(col, row); contains(c, x, y) {
					sx, sy := r.viewport.ToScreen(col, row)
					r.screen.SetContent(sx, sy, ' ', nil, style)
				}
			}
		}
		kanjiStyle := style
		if i == cursor {
			kanjiStyle = kanjiStyle.Reverse(true)
		}
		col, row := kanjiCell(c)
		r.drawText(col, row, string(c.Character), kanjiStyle)
	}

	if banner != "" {
		r.drawText((BoardCols-runewidth.StringWidth(banner))/2, BoardRows/2, banner, boardStyle.Reverse(true))
	}

	r.screen.Show()
}
