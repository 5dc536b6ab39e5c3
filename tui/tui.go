// Package tui provides the terminal episode selection screen.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/podfetch/podfetch/history"
	"github.com/podfetch/podfetch/log"
	"github.com/podfetch/podfetch/podcast"
)

// ErrCancelled is returned when the user leaves the screen without confirming.
var ErrCancelled = errors.New("selection cancelled")

// Select shows the discovered episodes grouped by series, all of them selected,
// and returns one flag per descriptor once the user confirms.
func Select(descriptors []*podcast.Descriptor) ([]bool, error) {
	downloaded, err := history.Get()
	if err != nil {
		log.Warnf("history unavailable: %s", err)
		downloaded = nil
	}

	bubble := newBubble(descriptors, downloaded)
	if _, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run(); err != nil {
		return nil, err
	}

	if !bubble.confirmed {
		return nil, ErrCancelled
	}
	return bubble.selection(), nil
}
