package icon

import (
	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/style"
)

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Progress
	Mark
	Link
	Podcast
	Download
	Warn
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    style.Fg(color.Green)(""),
		plain:   style.Fg(color.Green)("✓"),
		kaomoji: "(๑˃ᴗ˂)ﻭ",
		squares: style.Fg(color.Green)("▇"),
	},
	Fail: {
		emoji:   "❌",
		nerd:    style.Fg(color.Red)(""),
		plain:   style.Fg(color.Red)("✗"),
		kaomoji: "(╯°□°)╯︵ ┻━┻",
		squares: style.Fg(color.Red)("▇"),
	},
	Progress: {
		emoji:   "⏳",
		nerd:    style.Fg(color.Blue)(""),
		plain:   style.Fg(color.Blue)("…"),
		kaomoji: "(・・ )?",
		squares: style.Fg(color.Blue)("▇"),
	},
	Mark: {
		emoji:   "🔷",
		nerd:    style.Fg(color.Blue)(""),
		plain:   style.Fg(color.Blue)("*"),
		kaomoji: "(◠‿◠✿)",
		squares: style.Fg(color.Blue)("▇"),
	},
	Link: {
		emoji:   "🔗",
		nerd:    style.Fg(color.Blue)(""),
		plain:   style.Fg(color.Blue)("~"),
		kaomoji: "(・∀・)つ",
		squares: style.Fg(color.Blue)("▇"),
	},
	Podcast: {
		emoji:   "🎙",
		nerd:    style.Fg(color.Purple)(""),
		plain:   style.Fg(color.Purple)("#"),
		kaomoji: "♪(´▽｀)",
		squares: style.Fg(color.Purple)("▇"),
	},
	Download: {
		emoji:   "📥",
		nerd:    style.Fg(color.Cyan)(""),
		plain:   style.Fg(color.Cyan)("↓"),
		kaomoji: "(っ˘ڡ˘ς)",
		squares: style.Fg(color.Cyan)("▇"),
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    style.Fg(color.Yellow)(""),
		plain:   style.Fg(color.Yellow)("!"),
		kaomoji: "(；￣Д￣)",
		squares: style.Fg(color.Yellow)("▇"),
	},
}
