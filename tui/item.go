// Package tui provides the terminal episode selection screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/icon"
	"github.com/podfetch/podfetch/key"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/style"
	"github.com/podfetch/podfetch/util"
	"github.com/spf13/viper"
)

// seriesHeader groups the episodes of one series in the list.
type seriesHeader struct {
	name  string
	count int
}

// episode is a selectable row; index points into the descriptors given to Select.
type episode struct {
	index      int
	descriptor *podcast.Descriptor
	downloaded bool
}

// listItem implements the list.Item interface for both headers and episodes.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case *episode:
		return lipgloss.NewStyle().Bold(true).Foreground(color.Accent).Render(icon.Get(icon.Mark))
	default:
		return ""
	}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *seriesHeader:
		title = lipgloss.NewStyle().Bold(true).Foreground(color.Peach).Render(e.name) +
			" " + style.Faint(util.Quantify(e.count, "episode", "episodes"))
	case *episode:
		title = fmt.Sprintf("%s %s", e.descriptor.Title, style.Faint(e.descriptor.Published.Format(podcast.DateLayout)))
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the secondary text for the list item.
func (t *listItem) Description() string {
	e, ok := t.internal.(*episode)
	if !ok {
		return ""
	}

	var parts []string
	if e.downloaded {
		parts = append(parts, lipgloss.NewStyle().Foreground(color.Mint).Render("downloaded"))
	}
	if e.descriptor.Description != "" {
		parts = append(parts, oneLine(e.descriptor.Description))
	}
	if viper.GetBool(key.TUIShowURLs) {
		parts = append(parts, style.Faint(e.descriptor.SourceURL))
	}

	return strings.Join(parts, " • ")
}

// FilterValue returns the string used for list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *seriesHeader:
		return e.name
	case *episode:
		return e.descriptor.Series + " " + e.descriptor.Title
	default:
		return ""
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
