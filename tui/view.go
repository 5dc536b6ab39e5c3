// Package tui provides the terminal episode selection screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// maxConfirmRows bounds how many titles the confirmation screen lists.
const maxConfirmRows = 10

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case episodesState:
		output = b.viewEpisodes()
	case confirmState:
		output = b.viewConfirm()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewEpisodes() string {
	b.episodesC.Title = fmt.Sprintf("New episodes %d/%d", len(b.selected), len(b.descriptors))
	return listExtraPaddingStyle.Render(b.episodesC.View())
}

func (b *statefulBubble) viewConfirm() string {
	flags := b.selection()
	lines := []string{
		style.Title("Download"),
		"",
	}

	if len(b.selected) == 0 {
		lines = append(lines, icon.Get(icon.Warn)+" Nothing selected, no episode will be downloaded.")
	} else {
		lines = append(lines, fmt.Sprintf("%s %s selected:", icon.Get(icon.Download), util.Quantify(len(b.selected), "episode", "episodes")), "")
	}

	var shown int
	for i, d := range b.descriptors {
		if !flags[i] {
			continue
		}
		if shown == maxConfirmRows {
			lines = append(lines, style.Faint(fmt.Sprintf("… and %d more", len(b.selected)-shown)))
			break
		}
		row := fmt.Sprintf("%s %s", style.Fg(color.Purple)(d.Series), d.Title)
		lines = append(lines, style.Truncate(b.width)(row))
		shown++
	}

	lines = append(lines, "", wrap.String(style.Faint("Press enter to start, esc to go back to the list."), b.width))
	return b.renderLines(true, lines)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
