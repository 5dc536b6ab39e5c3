// Package icon renders the status symbols printed by the commands.
//
// The icons.variant setting picks one of several glyph sets; nerd needs a
// patched font, the others work in any terminal.
package icon

import (
	"github.com/podfetch/podfetch/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the values accepted by icons.variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef holds one symbol in every variant.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) variant(name string) string {
	switch name {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return d.plain
	}
}

// Get renders i in the configured variant. Unknown variants render as plain.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	variant := viper.GetString(key.IconsVariant)
	if !lo.Contains(AvailableVariants(), variant) {
		variant = plain
	}
	return def.variant(variant)
}
