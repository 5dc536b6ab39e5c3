// Package tui provides the terminal episode selection screen.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/history"
	"github.com/podfetch/podfetch/internal/ui"
	"github.com/podfetch/podfetch/key"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/util"
	"github.com/spf13/viper"
)

// statefulBubble holds the selection screen state.
type statefulBubble struct {
	state state

	// trail holds the states to return to, most recent last.
	trail []state

	keymap *statefulKeymap

	episodesC list.Model
	helpC     help.Model

	descriptors []*podcast.Descriptor
	selected    map[int]struct{}
	confirmed   bool

	width, height int
	notifier      *ui.Model
}

// setState performs a synchronous transition of both the workflow and its keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, remembering the current state for previousState.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.trail = append(b.trail, b.state)
	b.setState(s)
}

// previousState returns to the most recently left state.
func (b *statefulBubble) previousState() {
	if n := len(b.trail); n > 0 {
		b.setState(b.trail[n-1])
		b.trail = b.trail[:n-1]
	}
}

// resize propagates terminal dimension changes to the child components.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	// pagination changes with the height, keep the cursor on the same row
	index := b.episodesC.Index()
	b.episodesC.SetSize(listWidth, listHeight)
	b.episodesC.Help.Width = listWidth
	b.episodesC.Select(index)

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// selection translates the marked rows into one flag per descriptor.
func (b *statefulBubble) selection() []bool {
	flags := make([]bool, len(b.descriptors))
	for i := range b.selected {
		flags[i] = true
	}
	return flags
}

// newBubble builds the selection screen with every episode marked.
func newBubble(descriptors []*podcast.Descriptor, downloaded map[string]*history.Record) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:      keymap,
		descriptors: descriptors,
		selected:    make(map[int]struct{}, len(descriptors)),
		notifier:    &ui.Model{},
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color.Accent).
		Foreground(color.Accent).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	listC := list.New(makeItems(descriptors, downloaded, bubble.selected), delegate, 0, 0)
	listC.KeyMap = keymap.forList()
	listC.AdditionalShortHelpKeys = keymap.ShortHelp
	listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	listC.Title = fmt.Sprintf("New episodes (%d)", len(descriptors))
	listC.Styles.Title = lipgloss.NewStyle().Foreground(color.Ink).Background(color.Peach).Padding(0, 1)
	listC.Styles.NoItems = paddingStyle
	listC.StatusMessageLifetime = time.Hour * 999
	listC.SetShowPagination(false)
	listC.SetShowStatusBar(false)
	listC.SetFilteringEnabled(false)
	listC.SetStatusBarItemName("episode", "episodes")

	bubble.episodesC = listC
	bubble.helpC = help.New()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	if len(descriptors) > 0 {
		// the first row is a series header
		bubble.episodesC.Select(1)
	}

	bubble.setState(episodesState)
	return &bubble
}

// makeItems lays the descriptors out under one header per series, all marked.
func makeItems(descriptors []*podcast.Descriptor, downloaded map[string]*history.Record, selected map[int]struct{}) []list.Item {
	items := make([]list.Item, 0, len(descriptors))

	var header *seriesHeader
	for i, d := range descriptors {
		if header == nil || header.name != d.Series {
			header = &seriesHeader{name: d.Series}
			items = append(items, &listItem{internal: header})
		}
		header.count++

		selected[i] = struct{}{}
		items = append(items, &listItem{
			internal: &episode{index: i, descriptor: d, downloaded: history.Contains(downloaded, d)},
			marked:   true,
		})
	}

	return items
}

// Init implements tea.Model.
func (b *statefulBubble) Init() tea.Cmd {
	return nil
}
