package terminal

import (
	"math"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/sim"
)

// cellWidth is the number of columns per tile; terminal cells are roughly twice as tall as wide.
const cellWidth = 2

// Board is the character grid of the tiles around the spawn point.
type Board struct {
	Width, Height int // in tiles
	Rows          [][]rune
}

// glyph returns the actor character pointing toward h.
func glyph(h components.Heading) rune {
	switch h {
	case components.Right:
		return '>'
	case components.Up:
		return '^'
	case components.Left:
		return '<'
	case components.Down:
		return 'v'
	}
	return '@'
}

// tileOffset returns the actor's distance from spawn in whole tiles.
func tileOffset(snap sim.Snapshot, tileSize float32) (dx, dz int) {
	dx = int(math.Round(float64(snap.Offset.X / tileSize)))
	dz = int(math.Round(float64(snap.Offset.Z / tileSize)))
	return dx, dz
}

// tileOf returns the tile the actor occupies, relative to the board's top-left corner.
// Up (-Z) is the top of the board.
func tileOf(snap sim.Snapshot, width, height int, tileSize float32) (col, row int) {
	dx, dz := tileOffset(snap, tileSize)
	return width/2 + dx, height/2 + dz
}

// RenderBoard draws the grid and the actor. An actor outside the grid is not drawn.
func RenderBoard(snap sim.Snapshot, width, height int, tileSize float32) Board {
	b := Board{Width: width, Height: height, Rows: make([][]rune, height)}
	for r := range b.Rows {
		row := make([]rune, width*cellWidth)
		for c := 0; c < width; c++ {
			row[c*cellWidth] = '.'
			if (r+c)%2 == 1 {
				row[c*cellWidth] = ':'
			}
			row[c*cellWidth+1] = ' '
		}
		b.Rows[r] = row
	}

	col, row := tileOf(snap, width, height, tileSize)
	if col >= 0 && col < width && row >= 0 && row < height {
		b.Rows[row][col*cellWidth] = glyph(snap.Facing)
	}
	return b
}
