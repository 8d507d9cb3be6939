package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilearcade/internal/console"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/registry"
	"github.com/vovakirdan/tilearcade/internal/video"
)

// Options configures a play session.
type Options struct {
	FrameRate     int
	HoldFrames    int
	QueueCapacity int
	Audio         hw.AudioSink
	Logger        *log.Logger
}

// observed publishes a game's state after every frame so the UI goroutine
// never reads the game while the frame loop is mutating it.
type observed struct {
	registry.Game
	state atomic.Pointer[core.GameState]
}

func observe(g registry.Game) *observed {
	o := &observed{Game: g}
	st := g.State()
	o.state.Store(&st)
	return o
}

func (o *observed) Frame(fc *console.FrameContext) error {
	err := o.Game.Frame(fc)
	st := o.Game.State()
	o.state.Store(&st)
	return err
}

func (o *observed) State() core.GameState {
	return *o.state.Load()
}

// consoleDoneMsg reports that the console stopped.
type consoleDoneMsg struct{ err error }

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for a running console. The console runs on
// its own goroutines; the model only feeds it keys and repaints the display.
type Model struct {
	game    *observed
	ppu     *video.PPU
	console *console.Console
	input   *HeldInput
	screen  *core.Screen
	keys    KeyMap
	help    help.Model

	frameRate int
	ctx       context.Context
	cancel    context.CancelFunc
	log       *log.Logger

	err      error
	stopped  bool
	quitting bool
}

// NewModel powers on a console with game loaded.
func NewModel(game registry.Game, opts Options) Model {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ppu := video.New()
	input := NewHeldInput(opts.HoldFrames)
	con := console.New(console.Options{
		Display:       ppu,
		Input:         input,
		Audio:         opts.Audio,
		Transmitter:   ppu,
		QueueCapacity: opts.QueueCapacity,
		Logger:        opts.Logger,
	})
	obs := observe(game)
	con.Init(obs)

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		game:      obs,
		ppu:       ppu,
		console:   con,
		input:     input,
		screen:    core.NewScreen(video.Columns, video.Rows),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		frameRate: opts.FrameRate,
		ctx:       ctx,
		cancel:    cancel,
		log:       opts.Logger,
	}
}

// Init starts the console and the repaint loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runConsole(), repaintCmd(m.frameRate))
}

// runConsole drives the console with a ticker standing in for the refresh
// interrupt until the model quits or a frame fails.
func (m Model) runConsole() tea.Cmd {
	return func() tea.Msg {
		ticker := frameTicker(m.frameRate)
		defer ticker.Stop()
		return consoleDoneMsg{err: m.console.Run(m.ctx, m.game, ticker.C)}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case consoleDoneMsg:
		m.stopped = true
		m.err = msg.err
		if msg.err != nil {
			m.log.Error("console stopped", "game", m.game.ID(), "err", msg.err)
		}
		return m, nil

	case RepaintMsg:
		if m.stopped {
			return m, nil
		}
		return m, repaintCmd(m.frameRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	if b, ok := m.keys.Button(msg); ok {
		m.input.Press(b)
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() error {
	m.ppu.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".tilearcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.ppu.Render(m.screen)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.game.Title()))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) statusLine() string {
	st := m.game.State()
	stats := m.console.Stats()
	line := statusStyle.Render(fmt.Sprintf("score %d  left %d  frame %d  overruns %d",
		st.Score, st.Remaining, stats.Frames, stats.Overruns))
	switch {
	case m.err != nil:
		line += "  " + alertStyle.Render("HALTED")
	case st.GameOver:
		line += "  " + alertStyle.Render("GAME OVER")
	}
	return line
}

// Err returns the error the console stopped with, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, opts Options) error {
	model := NewModel(game, opts)
	defer model.cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
