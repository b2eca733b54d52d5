package breakout

import "github.com/vovakirdan/gridbreak/internal/core"

// Grid is the board: a fixed-size array of tiles indexed by (x, y).
// It is owned by an Engine and never shared.
type Grid struct {
	width  int
	height int
	cells  []Tile // row-major
}

// NewGrid creates a grid filled with TileEmpty.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Tile, width*height),
	}
	g.Fill(TileEmpty)
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the tile at (x, y). Off-grid reads return TileEmpty.
func (g *Grid) Get(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileEmpty
	}
	return g.cells[y*g.width+x]
}

// Set writes a tile. Off-grid writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = t
}

// Fill sets every cell to t.
func (g *Grid) Fill(t Tile) {
	for i := range g.cells {
		g.cells[i] = t
	}
}

// Paint writes t to every cell of a footprint.
func (g *Grid) Paint(footprint []core.Point, t Tile) {
	for _, p := range footprint {
		g.Set(p.X, p.Y, t)
	}
}

// Move erases the old footprint and paints the new one in a single step,
// so an entity never leaves a stale tile behind.
func (g *Grid) Move(from, to []core.Point, t Tile) {
	g.Paint(from, TileEmpty)
	g.Paint(to, t)
}

// Codes returns a column-major copy of the tile codes: codes[x][y].
func (g *Grid) Codes() [][]int {
	codes := make([][]int, g.width)
	for x := range g.width {
		col := make([]int, g.height)
		for y := range g.height {
			col[y] = int(g.cells[y*g.width+x])
		}
		codes[x] = col
	}
	return codes
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}
