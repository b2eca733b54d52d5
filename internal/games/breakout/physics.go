package breakout

import "github.com/vovakirdan/gridbreak/internal/core"

// moveBall advances the ball one cell diagonally, resolving wall, paddle
// and brick bounces.
func (e *Engine) moveBall() {
	w, h := e.cfg.Board.Width, e.cfg.Board.Height
	b := e.ball

	// Vertical: top interior row moving up, or just above the paddle moving
	// down with the column inside the span.
	if (b.Pos.Y == 1 && b.DY == -1) ||
		(b.Pos.Y == h-2 && b.DY == 1 && e.paddle.Contains(b.Pos.X)) {
		e.ball.DY = -e.ball.DY
	}

	// Horizontal: side interior columns moving outward.
	if (b.Pos.X == 1 && b.DX == -1) || (b.Pos.X == w-2 && b.DX == 1) {
		e.ball.DX = -e.ball.DX
	}

	next := b.Pos.Add(e.ball.DX, e.ball.DY)

	// Inspect the destination before the ball covers it.
	if hit := e.grid.Get(next.X, next.Y); hit.IsBrick() {
		e.hitBrick(hit, next)
		e.ball.DY = -e.ball.DY
	}

	e.moveBallTo(next)
}

// hitBrick scores a brick and clears its whole three-cell group on the
// struck row. The counter drops by one per hit.
func (e *Engine) hitBrick(t Tile, at core.Point) {
	e.bricksLeft--
	e.score += e.brickPoints(t) + e.level*e.cfg.Scoring.LevelBonus

	group := (at.X - 1) / brickWidth
	for i := 1; i <= brickWidth; i++ {
		e.grid.Set(group*brickWidth+i, at.Y, TileEmpty)
	}

	e.log.Debug("brick hit", "tile", t, "x", at.X, "y", at.Y, "bricks_left", e.bricksLeft, "score", e.score)
}

// brickPoints returns the base value of a brick color.
func (e *Engine) brickPoints(t Tile) int {
	p := e.cfg.Scoring.Points
	switch t {
	case TileRed:
		return p.Red
	case TileOrange:
		return p.Orange
	case TileYellow:
		return p.Yellow
	case TileGreen:
		return p.Green
	case TileBlue:
		return p.Blue
	default:
		return 0
	}
}
