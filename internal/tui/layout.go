// Package tui plays the puzzle in a terminal. The board keeps its pixel
// layout; every terminal cell stands for a CellWidth x CellHeight patch of it.
package tui

import "github.com/vancomm/sanji/internal/sanji"

const (
	CellWidth  = 10
	CellHeight = 20

	BoardCols = sanji.BoardWidth / CellWidth
	BoardRows = sanji.BoardHeight / CellHeight
)

// CellCenter maps a board cell to the layout point it samples.
func CellCenter(col, row int) (x, y int) {
	return col*CellWidth + CellWidth/2, row*CellHeight + CellHeight/2
}

// LayoutCell maps a layout point to the board cell containing it.
func LayoutCell(x, y int) (col, row int) {
	return x / CellWidth, y / CellHeight
}

// contains uses strict bounds, so points on a chip's edge miss it.
func contains(c sanji.Chip, x, y int) bool {
	return c.X < x && x < c.X+sanji.ChipSize &&
		c.Y < y && y < c.Y+sanji.ChipSize
}

// HitTest returns every chip under the point, in index order. Chips overlap
// from level 5 on, so a press may hit more than one.
func HitTest(chips []sanji.Chip, x, y int) []int {
	var hits []int
	for i, c := range chips {
		if contains(c, x, y) {
			hits = append(hits, i)
		}
	}
	return hits
}

// Viewport places the board on a screen of the given size, centred when it
// fits and pinned to the top left corner otherwise.
type Viewport struct {
	OffsetX int
	OffsetY int
}

func NewViewport(width, height int) Viewport {
	return Viewport{
		OffsetX: max(0, (width-BoardCols)/2),
		OffsetY: max(0, (height-BoardRows)/2),
	}
}

// ToBoard converts a screen cell to a board cell.
func (v Viewport) ToBoard(x, y int) (col, row int, ok bool) {
	col, row = x-v.OffsetX, y-v.OffsetY
	if col < 0 || col >= BoardCols || row < 0 || row >= BoardRows {
		return 0, 0, false
	}
	return col, row, true
}

func (v Viewport) ToScreen(col, row int) (x, y int) {
	return col + v.OffsetX, row + v.OffsetY
}
