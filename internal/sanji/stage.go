package sanji

import "math"

// Layout space is a 500x700 board, in pixels.
const (
	BoardWidth    = 500
	BoardHeight   = 700
	ChipSize      = 60
	ColumnPadding = 10
	BlockOffset   = 4 * ChipSize

	// LevelCount is the number of designed stages. The core accepts any
	// level; levels past the table reuse its last grid shape.
	LevelCount = 5
)

type stage struct {
	columns, rowBlocks int
}

var stages = []stage{
	{columns: 4, rowBlocks: 1},
	{columns: 6, rowBlocks: 1},
	{columns: 4, rowBlocks: 2},
	{columns: 5, rowBlocks: 2},
	{columns: 6, rowBlocks: 2},
}

// Dimensions returns the grid shape of a level: how many word columns fit in
// a row block and how many row blocks there are.
func Dimensions(level int) (columns, rowBlocks int) {
	s := stages[max(0, min(level, len(stages)-1))]
	return s.columns, s.rowBlocks
}

// maxCountedLevel is the last level whose counts fit in an int.
const maxCountedLevel = (math.MaxInt/3 - 4) / 2

// WordCount is the number of words sampled for a level. It keeps scaling past
// the last row of the stage table and saturates at math.MaxInt.
func WordCount(level int) int {
	if level > maxCountedLevel {
		return math.MaxInt
	}
	return 4 + 2*level
}

// ChipCount saturates at math.MaxInt like WordCount.
func ChipCount(level int) int {
	if level > maxCountedLevel {
		return math.MaxInt
	}
	return 3 * WordCount(level)
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Positions lays chips out in generation order: word column i is a vertical
// triple at x of column i%columns, moved down by BlockOffset once i reaches
// columns.
func Positions(level int) []Position {
	columns, rowBlocks := Dimensions(level)

	left := BoardWidth/2 - (ChipSize*columns/2 + ColumnPadding*columns/2 - ColumnPadding/2)
	top := BoardHeight/2 - ChipSize*3/2 - 2*ChipSize*(rowBlocks-1)

	positions := make([]Position, 0, ChipCount(level))
	for i := range WordCount(level) {
		x := left + (i%columns)*(ChipSize+ColumnPadding)
		y := top
		if i >= columns {
			y += BlockOffset
		}
		for j := range 3 {
			positions = append(positions, Position{X: x, Y: y + j*ChipSize})
		}
	}
	return positions
}
