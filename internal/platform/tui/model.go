package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/core"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
	"github.com/vovakirdan/gridbreak/internal/registry"
	"github.com/vovakirdan/gridbreak/internal/storage"
)

// HumanPlayer is the name runs played from the keyboard are stored under.
const HumanPlayer = "human"

// Options configures a game model.
type Options struct {
	Config config.Config

	// Seed for the engine RNG. Zero picks a time-based seed.
	Seed int64

	// Bot plays the game when set; otherwise the keyboard does.
	Bot registry.Bot

	// Store receives the finished run. Optional.
	Store *storage.Store

	Logger *log.Logger
}

// Model is the Bubble Tea model for one game of Breakout, played by a
// human or watched while a bot plays. One turn is advanced per tick.
type Model struct {
	opts   Options
	engine *breakout.Engine
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	input  core.InputFrame

	seed      int64
	runID     string
	botErrors int

	width  int
	height int

	paused     bool
	quitting   bool
	backToMenu bool
	runSaved   bool
}

// NewModel creates a model and starts its first game.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := Model{
		opts:  opts,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: core.NewInputFrame(),
	}
	if err := m.start(opts.Seed); err != nil {
		return Model{}, err
	}
	return m, nil
}

// start builds a fresh engine. A zero seed is replaced by the clock.
func (m *Model) start(seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine, err := breakout.New(m.opts.Config, breakout.NewRNG(seed), breakout.WithLogger(m.opts.Logger))
	if err != nil {
		return err
	}
	w, h := engine.ScreenSize()
	m.engine = engine
	m.screen = core.NewScreen(w, h)
	m.seed = seed
	m.runID = uuid.NewString()
	m.botErrors = 0
	m.paused = false
	m.runSaved = false
	m.input.Clear()
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.TUI.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys are collected and
// applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Exit):
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		if err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back) && (m.paused || !m.engine.IsRunning()):
		m.backToMenu = true
		return m, tea.Quit
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionPause:
		if m.engine.IsRunning() {
			m.paused = !m.paused
		}
	case core.ActionRestart:
		if !m.engine.IsRunning() {
			if err := m.start(0); err != nil {
				m.opts.Logger.Error("restart failed", "err", err)
			}
		}
	case core.ActionQuit:
		m.input.Set(action)
	case core.ActionLeft, core.ActionRight, core.ActionFire, core.ActionStay:
		if m.opts.Bot == nil {
			m.input.Set(action)
		}
	}

	return m, nil
}

// handleTick advances the game by one turn.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Config.TUI.TickRate)
	if m.paused || !m.engine.IsRunning() {
		return m, next
	}

	m.engine.Step(m.nextCommand())
	m.input.Clear()

	if !m.engine.IsRunning() {
		m.saveRun()
	}
	return m, next
}

// nextCommand picks the command for this turn. Ending the game from the
// keyboard overrides the bot.
func (m *Model) nextCommand() breakout.Command {
	if m.opts.Bot == nil || m.input.Has(core.ActionQuit) {
		return breakout.CommandFromInput(m.input)
	}

	cmd, err := m.opts.Bot.Decide(context.Background(), m.engine.Observe())
	if err != nil {
		m.botErrors++
		m.opts.Logger.Warn("bot error, staying", "bot", m.opts.Bot.Name(), "turn", m.engine.Turns()+1, "err", err)
		return breakout.CommandStay
	}
	return cmd
}

// saveRun stores the finished run once.
func (m *Model) saveRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.opts.Store == nil {
		return
	}

	_, err := m.opts.Store.SaveRun(storage.RunEntry{
		RunID: m.runID,
		Bot:   m.PlayerName(),
		Seed:  m.seed,
		Score: m.engine.Score(),
		Turns: m.engine.Turns(),
		Level: m.engine.Level(),
		Lives: m.engine.Lives(),
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "run", m.runID, "err", err)
	}
}

// saveScreenshot writes the current frame as plain text to
// ~/.gridbreak/screenshots.
func (m *Model) saveScreenshot() error {
	m.engine.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".gridbreak", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("breakout_%s.txt", time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.engine.ScreenSize()
	if m.width > 0 && (m.width < w || m.height < h+2) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", w, h+2, m.width, m.height)
	}

	m.engine.Render(m.screen)

	var b strings.Builder
	b.WriteString(titleStyle.Render(breakout.Title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · level %d · seed %d", m.PlayerName(), m.engine.Level(), m.seed)))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	switch {
	case !m.engine.IsRunning():
		b.WriteString(bannerStyle.Render("GAME OVER"))
		b.WriteString(dimStyle.Render("  r: restart  b: menu  q: quit"))
	case m.paused:
		b.WriteString(bannerStyle.Render("PAUSED"))
		b.WriteString(dimStyle.Render("  p: resume  b: menu  q: quit"))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// PlayerName is the name the run is shown and stored under.
func (m Model) PlayerName() string {
	if m.opts.Bot != nil {
		return m.opts.Bot.Name()
	}
	return HumanPlayer
}

// Engine returns the running game.
func (m Model) Engine() *breakout.Engine {
	return m.engine
}

// Seed returns the seed of the current game.
func (m Model) Seed() int64 {
	return m.seed
}

// Paused reports whether play is paused.
func (m Model) Paused() bool {
	return m.paused
}

// BotErrors counts turns the bot failed to decide and stayed instead.
func (m Model) BotErrors() int {
	return m.botErrors
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the terminal. It reports whether the player
// asked to go back to the menu.
func Run(opts Options) (backToMenu bool, err error) {
	model, err := NewModel(opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
