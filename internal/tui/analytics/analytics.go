// ABOUTME: Read-only analytics dashboard screen
// ABOUTME: Renders the four aggregates as side-by-side panels

package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/tui/styles"
)

// BackMsg asks the parent to return to the menu.
type BackMsg struct{}

// loadedMsg carries the merged analytics result.
type loadedMsg struct {
	data *api.Analytics
	err  error
}

// Failure lets the root model intercept authorization failures.
func (m loadedMsg) Failure() error { return m.err }

// Model is the analytics screen.
type Model struct {
	api     *api.Client
	spinner spinner.Model

	data    *api.Analytics
	loading bool
	errMsg  string

	width  int
	height int
}

// New creates the analytics screen bound to the API client.
func New(client *api.Client) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Model{api: client, spinner: sp}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

func (m *Model) fetch() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	client := m.api
	return func() tea.Msg {
		data, err := client.FetchAnalytics(context.Background())
		return loadedMsg{data: data, err: err}
	}
}

// SetSize adjusts the layout to the available area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.fetch()
		case "b":
			return m, func() tea.Msg { return BackMsg{} }
		}

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = failureMessage(msg.err)
			return m, nil
		}
		m.data = msg.data
		m.errMsg = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func failureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Analytics Dashboard"))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading analytics...\n")
		return sb.String()
	}
	if m.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render("Error: " + m.errMsg))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r Retry  b Back"))
		return sb.String()
	}
	if m.data == nil {
		sb.WriteString(styles.Subtitle.Render("No data"))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r Refresh  b Back"))
		return sb.String()
	}

	total := styles.Panel.Render(
		styles.Subtitle.Render("Total Stock") + "\n" +
			styles.ValueStyle.Render(fmt.Sprintf("%d units", m.data.TotalStock)))

	fast := styles.Panel.Render(
		styles.Subtitle.Render("Fast-Moving Items") + "\n" + itemList(m.data.FastMoving))
	slow := styles.Panel.Render(
		styles.Subtitle.Render("Slow-Moving Items") + "\n" + itemList(m.data.SlowMoving))
	reliable := styles.Panel.Render(
		styles.Subtitle.Render("Reliable Suppliers") + "\n" + supplierList(m.data.ReliableSuppliers))

	sb.WriteString(total)
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, fast, slow, reliable))
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("r Refresh  b Back"))

	return sb.String()
}

func itemList(items []api.ItemAnalytics) string {
	if len(items) == 0 {
		return styles.Subtitle.Render("none")
	}
	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s  %d movements", it.Name, it.Movements))
	}
	return strings.Join(lines, "\n")
}

func supplierList(sups []api.SupplierAnalytics) string {
	if len(sups) == 0 {
		return styles.Subtitle.Render("none")
	}
	var lines []string
	for _, s := range sups {
		lines = append(lines, fmt.Sprintf("%s  %.1f reliability", s.Name, s.Reliability))
	}
	return strings.Join(lines, "\n")
}
