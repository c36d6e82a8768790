package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/trivia"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// ChoiceList renders the answer choices of one question. Cursor is the
// highlighted row; Chosen is the accepted answer, -1 until one is picked.
// Once Chosen is set the correct answer is revealed.
type ChoiceList struct {
	Choices []trivia.Answer
	Cursor  int
	Chosen  int
}

// NewChoiceList creates a list with the cursor on the first choice.
func NewChoiceList(choices []trivia.Answer) ChoiceList {
	return ChoiceList{Choices: choices, Chosen: -1}
}

// Revealed reports whether an answer has been accepted.
func (c ChoiceList) Revealed() bool {
	return c.Chosen >= 0
}

// Move shifts the cursor by delta, staying within bounds.
func (c ChoiceList) Move(delta int) ChoiceList {
	if c.Revealed() || len(c.Choices) == 0 {
		return c
	}
	c.Cursor = min(max(c.Cursor+delta, 0), len(c.Choices)-1)
	return c
}

// View renders numbered choices.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, choice := range c.Choices {
		prefix := "  "
		if i == c.Cursor && !c.Revealed() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, choice.Text)

		var style lipgloss.Style
		switch {
		case !c.Revealed() && i == c.Cursor:
			style = theme.Selected
		case !c.Revealed():
			style = theme.Unselected
		case choice.IsCorrect:
			style = theme.Correct
			line += "  ✓"
		case i == c.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		default:
			style = theme.Dimmed
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
