package breakout

// Observation is the read-only view a bot receives each turn.
// MapArray is column-major: MapArray[x][y] is the tile code at (x, y).
type Observation struct {
	PlayerX    int
	BallX      int
	BallY      int
	Lives      int
	BricksLeft int
	MapArray   [][]int
}

// Observe builds a fresh observation. Nothing in it aliases engine state.
func (e *Engine) Observe() Observation {
	return Observation{
		PlayerX:    e.paddle.Center,
		BallX:      e.ball.Pos.X,
		BallY:      e.ball.Pos.Y,
		Lives:      e.lives,
		BricksLeft: e.bricksLeft,
		MapArray:   e.grid.Codes(),
	}
}

// Vars returns the observation as the named variables a script reads.
func (o Observation) Vars() map[string]any {
	return map[string]any{
		"player_x":    o.PlayerX,
		"ball_x":      o.BallX,
		"ball_y":      o.BallY,
		"lives":       o.Lives,
		"bricks_left": o.BricksLeft,
		"map_array":   o.MapArray,
	}
}
