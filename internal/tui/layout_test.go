package tui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/sanji/internal/sanji"
)

func chipsAt(level int) []sanji.Chip {
	positions := sanji.Positions(level)
	chips := make([]sanji.Chip, len(positions))
	for i, p := range positions {
		chips[i] = sanji.Chip{Position: p, Character: '字'}
	}
	return chips
}

func TestCellMapping(t *testing.T) {
	tests := []struct {
		col, row int
		x, y     int
	}{
		{0, 0, 5, 10},
		{12, 13, 125, 270},
		{BoardCols - 1, BoardRows - 1, 495, 690},
	}
	for _, test := range tests {
		x, y := CellCenter(test.col, test.row)
		assert.Equal(t, test.x, x)
		assert.Equal(t, test.y, y)

		col, row := LayoutCell(x, y)
		assert.Equal(t, test.col, col)
		assert.Equal(t, test.row, row)
	}
}

func TestHitTest(t *testing.T) {
	chips := chipsAt(0)
	tests := []struct {
		name string
		x, y int
		want []int
	}{
		{"inside first chip", 116, 261, []int{0}},
		{"centre of chip 4", 185 + 30, 320 + 30, []int{4}},
		{"left edge misses", 115, 290, nil},
		{"right edge misses", 175, 290, nil},
		{"top edge misses", 145, 260, nil},
		{"bottom edge of a triple", 145, 440, nil},
		{"between chips of a triple", 145, 320, nil},
		{"column gap", 180, 290, nil},
		{"off the board", -5, -5, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, HitTest(chips, test.x, test.y))
		})
	}
}

func TestHitTestOverlap(t *testing.T) {
	// the 13th word of level 5 wraps onto the 7th
	chips := chipsAt(5)
	assert.Equal(t, []int{18, 36}, HitTest(chips, 50, 390))
}

func TestEveryChipOwnsACell(t *testing.T) {
	for level := range sanji.LevelCount + 1 {
		chips := chipsAt(level)
		reachable := make(map[int]bool)
		for row := range BoardRows {
			for col := range BoardCols {
				x, y := CellCenter(col, row)
				for _, i := range HitTest(chips, x, y) {
					reachable[i] = true
				}
			}
		}
		assert.Len(t, reachable, len(chips), fmt.Sprintf("level %d", level))
	}
}

func TestViewport(t *testing.T) {
	v := NewViewport(80, 40)
	assert.Equal(t, Viewport{OffsetX: 15, OffsetY: 2}, v)

	col, row, ok := v.ToBoard(15, 2)
	assert.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	_, _, ok = v.ToBoard(14, 2)
	assert.False(t, ok)
	_, _, ok = v.ToBoard(15+BoardCols, 2)
	assert.False(t, ok)

	assert.Equal(t, Viewport{}, NewViewport(20, 10))
}
