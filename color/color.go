// Package color names the colors podfetch renders with.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors follow the terminal's own theme.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	HiRed    = New("9")
	HiPurple = New("13")
)

// Fixed colors of the selection screen.
var (
	Accent = New("#cba6f7")
	Peach  = New("#fab387")
	Mint   = New("#a6e3a1")
	Orange = New("#ffb703")
	Ink    = New("#1e1e2e")
)
