// Package tui provides the terminal episode selection screen.
package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/podfetch/podfetch/internal/ui"
	"github.com/podfetch/podfetch/open"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Ephemeral notifications (ui.Notification and ui.ClearNotificationMsg).
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case episodesState:
		return b.updateEpisodes(msg, cmd)
	case confirmState:
		return b.updateConfirm(msg, cmd)
	}

	return b, cmd
}

func (b *statefulBubble) updateEpisodes(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit), bubblesKey.Matches(msg, b.keymap.back):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.episodesC.Items()); n > 0 && b.episodesC.Index() == 0 {
				b.episodesC.Select(n - 1)
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.episodesC.Items()); n > 0 && b.episodesC.Index() == n-1 {
				b.episodesC.Select(0)
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.selectOne):
			b.toggleCurrent()
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.selectSeries):
			b.toggleSeries()
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.selectAll):
			b.markAll(true)
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.clearSelection):
			b.markAll(false)
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.openURL):
			item, ok := b.episodesC.SelectedItem().(*listItem)
			if !ok {
				break
			}
			e, ok := item.internal.(*episode)
			if !ok || e.descriptor.PageURL == "" {
				break
			}
			if err := open.Start(e.descriptor.PageURL); err != nil {
				return b, ui.Notify("could not open browser: " + err.Error())
			}
			return b, ui.Notify("opened " + e.descriptor.PageURL)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.newState(confirmState)
			return b, cmd
		}
	}

	var listCmd tea.Cmd
	b.episodesC, listCmd = b.episodesC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateConfirm(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.download):
			b.confirmed = true
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back), bubblesKey.Matches(msg, b.keymap.quit):
			b.previousState()
		}
	}
	return b, cmd
}

// toggleCurrent flips the row under the cursor. On a header it flips the whole series.
func (b *statefulBubble) toggleCurrent() {
	item, ok := b.episodesC.SelectedItem().(*listItem)
	if !ok {
		return
	}

	e, ok := item.internal.(*episode)
	if !ok {
		b.toggleSeries()
		return
	}

	item.toggleMark()
	b.mark(e, item.marked)
}

// toggleSeries marks every episode of the current row's series, or clears them if all are marked.
func (b *statefulBubble) toggleSeries() {
	item, ok := b.episodesC.SelectedItem().(*listItem)
	if !ok {
		return
	}

	var series string
	switch e := item.internal.(type) {
	case *seriesHeader:
		series = e.name
	case *episode:
		series = e.descriptor.Series
	}

	rows := b.rowsOf(series)
	allMarked := true
	for _, row := range rows {
		allMarked = allMarked && row.marked
	}

	for _, row := range rows {
		row.marked = !allMarked
		b.mark(row.internal.(*episode), row.marked)
	}
}

func (b *statefulBubble) markAll(marked bool) {
	for _, it := range b.episodesC.Items() {
		item := it.(*listItem)
		if e, ok := item.internal.(*episode); ok {
			item.marked = marked
			b.mark(e, marked)
		}
	}
}

func (b *statefulBubble) mark(e *episode, marked bool) {
	if marked {
		b.selected[e.index] = struct{}{}
	} else {
		delete(b.selected, e.index)
	}
}

func (b *statefulBubble) rowsOf(series string) []*listItem {
	var rows []*listItem
	for _, it := range b.episodesC.Items() {
		item := it.(*listItem)
		if e, ok := item.internal.(*episode); ok && e.descriptor.Series == series {
			rows = append(rows, item)
		}
	}
	return rows
}
