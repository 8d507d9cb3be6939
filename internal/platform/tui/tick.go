// Package tui provides the Bubble Tea integration for the console.
// It handles the terminal UI loop, held-key input and screen refresh.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxRepaintRate caps terminal redraws; the console itself runs at the full
// frame rate on its own ticker.
const maxRepaintRate = 30

// RepaintMsg asks the model to redraw the display.
type RepaintMsg time.Time

func repaintInterval(frameRate int) time.Duration {
	if frameRate <= 0 || frameRate > maxRepaintRate {
		frameRate = maxRepaintRate
	}
	return time.Second / time.Duration(frameRate)
}

// repaintCmd schedules the next RepaintMsg.
func repaintCmd(frameRate int) tea.Cmd {
	return tea.Tick(repaintInterval(frameRate), func(t time.Time) tea.Msg {
		return RepaintMsg(t)
	})
}

// frameTicker stands in for the display's refresh interrupt.
func frameTicker(frameRate int) *time.Ticker {
	if frameRate <= 0 {
		frameRate = 60
	}
	return time.NewTicker(time.Second / time.Duration(frameRate))
}
