// Package breakout implements the gridbreak simulation: a tick-driven
// Breakout engine on a fixed tile grid that advances exactly one turn per
// command and exposes a read-only observation to the agent driving it.
package breakout

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/core"
)

// Title is the first line of every message log.
const Title = "Breakout"

// Messages appended to the message log.
const (
	MsgLifeLost   = "You lost a life!"
	MsgOutOfMoves = "You are out of moves."
	MsgNoLives    = "You lost all your lives"
	MsgQuit       = "You quit the game."
)

// Brick rows occupy [firstBrickRow, firstBrickRow+len(brickRows)).
const (
	firstBrickRow = 5
	brickWidth    = 3
)

// ErrNilRandom is returned by New when no random source is supplied.
var ErrNilRandom = errors.New("breakout: nil random source")

// Random is the injected source used to pick respawn columns.
type Random interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine debug events to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine owns the grid and every piece of session state.
// It is not safe for concurrent use.
type Engine struct {
	cfg config.Config
	rnd Random
	log *log.Logger

	grid   *Grid
	paddle Paddle
	ball   Ball
	delay  int

	score      int
	lives      int
	level      int
	turns      int
	bricksLeft int
	running    bool
	lifeLost   bool
	quit       bool

	messages []string
}

// New builds an engine and draws the first level. It fails when the
// configuration is invalid, most importantly when the board width does not
// fit whole three-cell bricks.
func New(cfg config.Config, rnd Random, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}
	if rnd == nil {
		return nil, ErrNilRandom
	}

	e := &Engine{
		cfg:      cfg,
		rnd:      rnd,
		log:      log.New(io.Discard),
		grid:     NewGrid(cfg.Board.Width, cfg.Board.Height),
		ball:     Ball{DX: 1, DY: -1},
		delay:    cfg.Ball.InitialDelay,
		lives:    cfg.Session.Lives,
		running:  true,
		messages: []string{Title},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.buildLevel()
	return e, nil
}

// paddleRow is floor(height*0.99): the bottom row for any board under 100 rows.
func (e *Engine) paddleRow() int {
	return e.cfg.Board.Height * 99 / 100
}

// buildLevel resets the board in place: entities back to the center,
// walls, and a fresh brick field.
func (e *Engine) buildLevel() {
	w, h := e.cfg.Board.Width, e.cfg.Board.Height
	center := w / 2

	e.log.Debug("building level", "level", e.level, "turn", e.turns)

	e.grid.Fill(TileEmpty)

	e.ball.Pos = core.Pt(center, h-2)
	e.grid.Paint(e.ball.Footprint(), TileBall)

	e.paddle = Paddle{Center: center, Row: e.paddleRow()}
	e.grid.Paint(e.paddle.Footprint(), TilePaddle)

	for x := range w {
		e.grid.Set(x, 0, TileWall)
	}
	for y := range h {
		e.grid.Set(0, y, TileWall)
		e.grid.Set(w-1, y, TileWall)
	}

	for x := 1; x < w-1; x++ {
		for i, color := range brickRows {
			e.grid.Set(x, firstBrickRow+i, color)
			e.bricksLeft++
		}
	}
}

// Step plays one turn: the command is applied, terminal conditions are
// checked, and the observation for the next decision is returned.
// Once the game has ended Step changes nothing.
func (e *Engine) Step(cmd Command) Observation {
	if e.running {
		e.advance(cmd)
		e.bookkeeping()
	}
	return e.Observe()
}

// advance runs the turn state machine.
func (e *Engine) advance(cmd Command) {
	e.turns++

	switch cmd {
	case CommandQuit:
		e.erasePaddle()
		e.running = false
		e.quit = true
		return
	case CommandLeft:
		if e.paddle.Left()-1 >= 1 {
			e.movePaddle(e.paddle.Center - 1)
		}
	case CommandRight:
		if e.paddle.Right()+1 <= e.cfg.Board.Width-2 {
			e.movePaddle(e.paddle.Center + 1)
		}
	}

	if e.turns%e.delay == 0 {
		e.moveBall()
	}

	if e.bricksLeft == 0 {
		e.level++
		if e.delay > 1 {
			e.delay--
		}
		e.log.Debug("level cleared", "level", e.level, "delay", e.delay, "turn", e.turns)
		e.buildLevel()
		return
	}

	if e.ball.Pos.Y == e.cfg.Board.Height-1 {
		e.loseLife()
	}

	e.grid.Paint(e.paddle.Footprint(), TilePaddle)
}

// movePaddle repositions the paddle span to a new center.
func (e *Engine) movePaddle(center int) {
	e.erasePaddle()
	e.paddle.Center = center
	e.grid.Paint(e.paddle.Footprint(), TilePaddle)
}

// erasePaddle clears the paddle span. A respawn at the right edge lets
// the span cover the wall; those cells become wall again once vacated.
func (e *Engine) erasePaddle() {
	w := e.cfg.Board.Width
	for _, pt := range e.paddle.Footprint() {
		t := TileEmpty
		if pt.X == 0 || pt.X == w-1 {
			t = TileWall
		}
		e.grid.Set(pt.X, pt.Y, t)
	}
}

// moveBallTo repositions the ball, keeping its velocity.
func (e *Engine) moveBallTo(pos core.Point) {
	next := e.ball
	next.Pos = pos
	e.grid.Move(e.ball.Footprint(), next.Footprint(), TileBall)
	e.ball = next
}

// loseLife takes a life and respawns paddle and ball on one random column
// in [3, width-3]. At width-3 the paddle span covers the right wall until
// it moves left.
func (e *Engine) loseLife() {
	w, h := e.cfg.Board.Width, e.cfg.Board.Height

	e.lives--
	e.lifeLost = true

	center := 3 + e.rnd.Intn(w-5)
	e.log.Debug("life lost", "lives", e.lives, "respawn", center, "turn", e.turns)

	e.moveBallTo(core.Pt(center, h-2))
	e.movePaddle(center)
}

// bookkeeping ends the game on its terminal conditions and records messages.
func (e *Engine) bookkeeping() {
	if e.lifeLost {
		e.lifeLost = false
		e.addMessage(MsgLifeLost)
	}
	if e.quit {
		e.quit = false
		e.addMessage(MsgQuit)
	}
	if e.turns >= e.cfg.Session.MaxTurns {
		e.running = false
		e.addMessage(MsgOutOfMoves)
	}
	if e.lives <= 0 {
		e.running = false
		e.addMessage(MsgNoLives)
	}
}

func (e *Engine) addMessage(msg string) {
	e.messages = append(e.messages, msg)
	e.log.Debug(msg, "turn", e.turns, "score", e.score)
}

// IsRunning reports whether the game accepts further turns.
func (e *Engine) IsRunning() bool { return e.running }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// Level returns the zero-based level number.
func (e *Engine) Level() int { return e.level }

// Turns returns the number of turns played.
func (e *Engine) Turns() int { return e.turns }

// BricksLeft returns the brick counter that ends the level at zero.
func (e *Engine) BricksLeft() int { return e.bricksLeft }

// BallDelay returns the number of turns between ball moves.
func (e *Engine) BallDelay() int { return e.delay }

// Paddle returns the paddle span.
func (e *Engine) Paddle() Paddle { return e.paddle }

// Ball returns the ball position and velocity.
func (e *Engine) Ball() Ball { return e.ball }

// Tile returns the tile at (x, y).
func (e *Engine) Tile(x, y int) Tile { return e.grid.Get(x, y) }

// Width returns the board width.
func (e *Engine) Width() int { return e.cfg.Board.Width }

// Height returns the board height.
func (e *Engine) Height() int { return e.cfg.Board.Height }

// Messages returns a copy of the message log, oldest first.
func (e *Engine) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

// Status holds the fields shown in the status panel.
type Status struct {
	Invaders int
	Lives    int
	Move     string
	Score    int
}

// Status returns the status panel fields. Invaders is always zero.
func (e *Engine) Status() Status {
	return Status{
		Invaders: 0,
		Lives:    e.lives,
		Move:     fmt.Sprintf("%d of %d", e.turns, e.cfg.Session.MaxTurns),
		Score:    e.score,
	}
}
