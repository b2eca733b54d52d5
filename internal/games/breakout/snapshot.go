package breakout

// Snapshot is a primitive-typed copy of the engine state, used for
// determinism checks and replay verification.
type Snapshot struct {
	Turns      int
	Score      int
	Lives      int
	Level      int
	BricksLeft int
	Running    bool

	PaddleX   int
	BallX     int
	BallY     int
	BallDX    int
	BallDY    int
	BallDelay int

	// RNGPosition is the number of random draws, or -1 when the source
	// does not report it.
	RNGPosition int64

	// Tiles is the grid flattened row-major.
	Tiles []int
}

// positioner is implemented by random sources that count their draws.
type positioner interface {
	Position() int64
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	rngPos := int64(-1)
	if p, ok := e.rnd.(positioner); ok {
		rngPos = p.Position()
	}

	tiles := make([]int, len(e.grid.cells))
	for i, t := range e.grid.cells {
		tiles[i] = int(t)
	}

	return Snapshot{
		Turns:       e.turns,
		Score:       e.score,
		Lives:       e.lives,
		Level:       e.level,
		BricksLeft:  e.bricksLeft,
		Running:     e.running,
		PaddleX:     e.paddle.Center,
		BallX:       e.ball.Pos.X,
		BallY:       e.ball.Pos.Y,
		BallDX:      e.ball.DX,
		BallDY:      e.ball.DY,
		BallDelay:   e.delay,
		RNGPosition: rngPos,
		Tiles:       tiles,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(17)
	for _, v := range []int{
		snap.Turns, snap.Score, snap.Lives, snap.Level, snap.BricksLeft,
		snap.PaddleX, snap.BallX, snap.BallY, snap.BallDX, snap.BallDY, snap.BallDelay,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	if snap.Running {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.RNGPosition) //#nosec G115 -- hash computation

	for _, v := range snap.Tiles {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
