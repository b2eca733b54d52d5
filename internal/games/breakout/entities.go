package breakout

import "github.com/vovakirdan/gridbreak/internal/core"

// PaddleHalfWidth is the number of cells on each side of the paddle center.
const PaddleHalfWidth = 2

// Paddle is a horizontal span of 2*PaddleHalfWidth+1 cells.
type Paddle struct {
	Center int
	Row    int
}

// Left returns the leftmost column of the span.
func (p Paddle) Left() int { return p.Center - PaddleHalfWidth }

// Right returns the rightmost column of the span.
func (p Paddle) Right() int { return p.Center + PaddleHalfWidth }

// Contains reports whether column x lies inside the span, edges included.
func (p Paddle) Contains(x int) bool {
	return x >= p.Left() && x <= p.Right()
}

// Footprint returns the cells the paddle occupies.
func (p Paddle) Footprint() []core.Point {
	cells := make([]core.Point, 0, 2*PaddleHalfWidth+1)
	for x := p.Left(); x <= p.Right(); x++ {
		cells = append(cells, core.Pt(x, p.Row))
	}
	return cells
}

// Ball is a single-cell ball with a per-move velocity of one cell per axis.
type Ball struct {
	Pos core.Point
	DX  int
	DY  int
}

// Footprint returns the single cell the ball occupies.
func (b Ball) Footprint() []core.Point {
	return []core.Point{b.Pos}
}
