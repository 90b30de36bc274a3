package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label       string
	Description string
	Action      func() tea.Cmd
	Disabled    bool
}

// Menu is a vertical navigation menu. Disabled items are skipped by
// the cursor and cannot be activated.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		var label, desc string
		switch {
		case item.Disabled:
			label = theme.Inactive.Render("    " + item.Label)
			desc = theme.Inactive.Render("      " + item.Description)
		case i == m.Selected:
			label = theme.Selected.Render("  ▸ " + item.Label)
			desc = theme.Hint.Render("      " + item.Description)
		default:
			label = theme.Unselected.Render("    " + item.Label)
			desc = theme.Hint.Render("      " + item.Description)
		}
		b.WriteString(label + "\n")
		if item.Description != "" {
			b.WriteString(desc + "\n")
		}
		if i < len(m.Items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
