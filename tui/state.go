// Package tui provides the terminal episode selection screen.
package tui

type state int

const (
	episodesState state = iota
	confirmState
)
