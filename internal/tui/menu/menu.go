// ABOUTME: Main navigation menu shown after login
// ABOUTME: Emits a selection message; the root model owns the transition

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/storesync/console/internal/tui/styles"
)

// Choice is one navigable section of the console.
type Choice int

const (
	ChoiceItems Choice = iota
	ChoiceSuppliers
	ChoiceStock
	ChoiceAlerts
	ChoiceAnalytics
)

// SelectedMsg is sent when the user picks a section.
type SelectedMsg struct {
	Choice Choice
}

// LogoutMsg is sent when the user asks to log out.
type LogoutMsg struct{}

// QuitMsg is sent when the user asks to quit.
type QuitMsg struct{}

type entry struct {
	label  string
	choice Choice
}

// Menu is the section picker.
type Menu struct {
	entries []entry
	cursor  int
}

// New creates the menu with every section enabled.
func New() *Menu {
	return &Menu{
		entries: []entry{
			{label: "Items", choice: ChoiceItems},
			{label: "Suppliers", choice: ChoiceSuppliers},
			{label: "Stock Movements", choice: ChoiceStock},
			{label: "Alerts", choice: ChoiceAlerts},
			{label: "Analytics", choice: ChoiceAnalytics},
		},
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		choice := m.entries[m.cursor].choice
		return m, func() tea.Msg { return SelectedMsg{Choice: choice} }
	case "l":
		return m, func() tea.Msg { return LogoutMsg{} }
	case "q":
		return m, func() tea.Msg { return QuitMsg{} }
	}
	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("StoreSync Console"))
	sb.WriteString("\n")

	for i, e := range m.entries {
		if i == m.cursor {
			sb.WriteString(styles.KeyStyle.Render("> " + e.label))
		} else {
			sb.WriteString("  " + e.label)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("↑↓ Navigate  Enter Select  l Logout  q Quit"))
	return sb.String()
}
