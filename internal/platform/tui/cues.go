package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/hw"
)

// CueKeyMap defines keybindings for the cue browser.
type CueKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Play key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k CueKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k CueKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Play, k.Quit}}
}

// DefaultCueKeyMap returns the default cue browser bindings.
func DefaultCueKeyMap() CueKeyMap {
	return CueKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CueModel lists the sound cues and plays the highlighted one.
type CueModel struct {
	cues     []audio.Cue
	sink     hw.AudioSink
	table    table.Model
	help     help.Model
	keys     CueKeyMap
	played   audio.Cue
	quitting bool
}

// NewCueModel creates a cue browser that plays through sink.
func NewCueModel(sink hw.AudioSink, height int) CueModel {
	cues := audio.Cues()
	rows := make([]table.Row, len(cues))
	for i, c := range cues {
		env := audio.Envelope(c)
		freq := 0.0
		if len(env) > 0 {
			freq = env[0].Frequency()
		}
		rows[i] = table.Row{
			c.String(),
			fmt.Sprintf("%d", len(env)),
			audio.Duration(c).String(),
			fmt.Sprintf("%.1f Hz", freq),
		}
	}

	if height < 8 {
		height = len(rows) + 2
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Cue", Width: 16},
			{Title: "Frames", Width: 8},
			{Title: "Length", Width: 12},
			{Title: "Pitch", Width: 12},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(height-6, len(rows)+1)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return CueModel{
		cues:  cues,
		sink:  sink,
		table: t,
		help:  help.New(),
		keys:  DefaultCueKeyMap(),
	}
}

// Init initializes the cue browser.
func (m CueModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the cue browser.
func (m CueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Play):
			if i := m.table.Cursor(); i >= 0 && i < len(m.cues) {
				m.played = m.cues[i]
				m.sink.Play(m.played)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the cue browser.
func (m CueModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SOUND CUES"))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if m.played != audio.None {
		b.WriteString(statusStyle.Render("played " + m.played.String()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunCues runs the cue browser.
func RunCues(sink hw.AudioSink, height int) error {
	_, err := tea.NewProgram(NewCueModel(sink, height), tea.WithAltScreen()).Run()
	return err
}
