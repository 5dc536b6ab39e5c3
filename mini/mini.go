// Package mini implements a lightweight prompt-based episode selection for plain terminals.
package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/podfetch/podfetch/podcast"
	"github.com/podfetch/podfetch/util"
	"github.com/samber/lo"
)

var truncateAt = 100

// ErrCancelled is returned when the user interrupts a prompt.
var ErrCancelled = errors.New("selection cancelled")

// Select asks which of the descriptors to download. Every episode is preselected.
func Select(descriptors []*podcast.Descriptor) ([]bool, error) {
	if len(descriptors) == 0 {
		return []bool{}, nil
	}

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	options := optionsOf(descriptors)
	prompt := &survey.MultiSelect{
		Message:  "Episodes to download",
		Options:  options,
		Default:  options,
		PageSize: 15,
		Help:     "space toggles, → selects all, ← clears, enter confirms",
	}

	var picked []int
	if err := survey.AskOne(prompt, &picked, survey.WithKeepFilter(true)); err != nil {
		return nil, interrupted(err)
	}

	confirm := &survey.Confirm{
		Message: fmt.Sprintf("Download %s?", util.Quantify(len(picked), "episode", "episodes")),
		Default: true,
	}

	var ok bool
	if err := survey.AskOne(confirm, &ok); err != nil {
		return nil, interrupted(err)
	}
	if !ok {
		return nil, ErrCancelled
	}

	return flags(len(descriptors), picked), nil
}

// optionsOf renders one unique option per descriptor.
func optionsOf(descriptors []*podcast.Descriptor) []string {
	return lo.Map(descriptors, func(d *podcast.Descriptor, i int) string {
		option := fmt.Sprintf("%d. %s • %s (%s)", i+1, d.Series, d.Title, d.Published.Format(podcast.DateLayout))
		if truncateAt > 10 && len(option) > truncateAt-6 {
			option = string([]rune(option)[:min(len([]rune(option)), truncateAt-7)]) + "…"
		}
		return option
	})
}

func flags(n int, picked []int) []bool {
	out := make([]bool, n)
	for _, i := range picked {
		if i >= 0 && i < n {
			out[i] = true
		}
	}
	return out
}

func interrupted(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
