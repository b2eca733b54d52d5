package bot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
)

// Option configures a Lua bot.
type Option func(*Lua)

// WithLogger receives the script's print output at debug level.
func WithLogger(l *log.Logger) Option {
	return func(b *Lua) {
		if l != nil {
			b.log = l
		}
	}
}

// Lua runs a bot script in a sandboxed interpreter. The script body runs
// once per turn; its globals persist between turns.
type Lua struct {
	name    string
	L       *lua.LState
	chunk   *lua.LFunction
	timeout time.Duration
	log     *log.Logger
}

// LoadLua reads a script file and compiles it. The bot is named after the
// file without its extension.
func LoadLua(path string, cfg config.Config, opts ...Option) (*Lua, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bot: read %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewLua(name, string(src), cfg, opts...)
}

// NewLua compiles source in a fresh sandbox and publishes the constants
// table for cfg's board.
func NewLua(name, source string, cfg config.Config, opts ...Option) (*Lua, error) {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	b := &Lua{
		name:    name,
		L:       L,
		timeout: cfg.Bot.TurnTimeout,
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}

	openSafeLibs(L)
	sandbox(L)

	// print goes to the log, never to the terminal the game is drawn on.
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		b.log.Debug(strings.Join(parts, " "), "bot", b.name)
		return 0
	}))

	for _, c := range breakout.Constants(cfg.Board) {
		L.SetGlobal(c.Name, lua.LNumber(c.Value))
	}

	chunk, err := L.LoadString(source)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("bot: compile %s: %w", name, err)
	}
	b.chunk = chunk

	return b, nil
}

// Name implements registry.Bot.
func (b *Lua) Name() string { return b.name }

// Decide publishes the observation, runs the script under the per-turn
// timeout and maps the global `move` to a command.
func (b *Lua) Decide(ctx context.Context, obs breakout.Observation) (breakout.Command, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	b.L.SetContext(ctx)
	defer b.L.RemoveContext()

	b.publish(obs)
	b.L.SetGlobal("move", lua.LNil)

	b.L.Push(b.chunk)
	if err := b.L.PCall(0, 0, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return breakout.CommandStay, fmt.Errorf("bot: %s: %w", b.name, ctxErr)
		}
		return breakout.CommandStay, fmt.Errorf("bot: %s: %w", b.name, err)
	}

	mv, ok := b.L.GetGlobal("move").(lua.LNumber)
	if !ok {
		return breakout.CommandStay, ErrNoMove
	}
	return breakout.CommandFromKey(int(mv)), nil
}

// Close releases the interpreter.
func (b *Lua) Close() error {
	b.L.Close()
	return nil
}

// publish sets the observation variables as globals. map_array is
// indexed from 0 in both dimensions.
func (b *Lua) publish(obs breakout.Observation) {
	L := b.L
	L.SetGlobal("player_x", lua.LNumber(obs.PlayerX))
	L.SetGlobal("ball_x", lua.LNumber(obs.BallX))
	L.SetGlobal("ball_y", lua.LNumber(obs.BallY))
	L.SetGlobal("lives", lua.LNumber(obs.Lives))
	L.SetGlobal("bricks_left", lua.LNumber(obs.BricksLeft))

	cols := L.CreateTable(0, len(obs.MapArray))
	for x, col := range obs.MapArray {
		rows := L.CreateTable(0, len(col))
		for y, code := range col {
			rows.RawSetInt(y, lua.LNumber(code))
		}
		cols.RawSetInt(x, rows)
	}
	L.SetGlobal("map_array", cols)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed so scripts stay deterministic.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
