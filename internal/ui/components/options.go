package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

// OptionLetters labels options in display order.
const OptionLetters = "ABCDEFGH"

// OptionLetter returns the display letter for option i.
func OptionLetter(i int) string {
	if i < 0 || i >= len(OptionLetters) {
		return "?"
	}
	return OptionLetters[i : i+1]
}

// OptionList renders a question's options. It holds no answer logic: the
// caller decides whether Correct may be shown through Reveal.
type OptionList struct {
	Options []string

	// Selected is the picked option, or -1.
	Selected int

	// Cursor is the highlighted option while nothing is picked.
	Cursor int

	// Reveal allows marking Correct and the wrong pick.
	Reveal  bool
	Correct int

	Width int
}

// View renders the option list.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		mark := ""
		style := theme.Unselected
		switch {
		case o.Reveal && i == o.Correct:
			style = theme.Correct
			mark = "  ✓"
		case o.Reveal && i == o.Selected:
			style = theme.Incorrect
			mark = "  ✗"
		case o.Reveal:
			style = theme.Faded
		case i == o.Selected:
			style = theme.Selected
			mark = "  ●"
		case o.Selected >= 0:
			style = theme.Faded
		case i == o.Cursor:
			style = theme.Selected
		}
		if i == o.Selected || (o.Selected < 0 && i == o.Cursor) {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s%s", prefix, OptionLetter(i), opt, mark)
		if o.Width > 0 {
			style = style.Width(o.Width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
