package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Choices renders lettered answer options (A-D) with a cursor. Once
// revealed, the correct option is green, a wrong pick is red and the
// rest are dimmed.
type Choices struct {
	Options  []string
	Cursor   int
	Chosen   int
	Correct  int
	Revealed bool
}

// NewChoices creates an unrevealed option list with the cursor on the first option.
func NewChoices(options []string, correct int) Choices {
	return Choices{
		Options: options,
		Correct: correct,
		Chosen:  -1,
	}
}

// Up moves the cursor up, stopping at the first option.
func (c *Choices) Up() {
	if c.Cursor > 0 {
		c.Cursor--
	}
}

// Down moves the cursor down, stopping at the last option.
func (c *Choices) Down() {
	if c.Cursor < len(c.Options)-1 {
		c.Cursor++
	}
}

// Reveal shows correctness for the chosen option.
func (c *Choices) Reveal(chosen int) {
	c.Chosen = chosen
	c.Revealed = true
}

// View renders the options, one per line.
func (c Choices) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case c.Revealed && i == c.Correct:
			line = theme.Correct.Render(line + "  ✓")
		case c.Revealed && i == c.Chosen:
			line = theme.Incorrect.Render(line + "  ✗")
		case c.Revealed:
			line = theme.Inactive.Render(line)
		case i == c.Cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
