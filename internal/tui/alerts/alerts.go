// ABOUTME: Alerts screen with client-side search and acknowledge action
// ABOUTME: Acknowledgements are tracked per row so one slow write never blocks the rest

package alerts

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/tui/styles"
	"github.com/storesync/console/internal/tui/syncer"
)

// BackMsg asks the parent to return to the menu.
type BackMsg struct{}

// ackDoneMsg reports one completed acknowledge call.
type ackDoneMsg struct {
	id  string
	err error
}

// Failure lets the root model intercept authorization failures.
func (m ackDoneMsg) Failure() error { return m.err }

// Model is the alerts screen.
type Model struct {
	api  *api.Client
	sync *syncer.Syncer[api.Alert]

	table   table.Model
	search  textinput.Model
	typing  bool
	acking  map[string]bool
	ackErr  string
	visible []api.Alert

	width  int
	height int
}

// New creates the alerts screen bound to the API client.
func New(client *api.Client) *Model {
	m := &Model{
		api:    client,
		acking: make(map[string]bool),
	}
	m.sync = syncer.New(func(ctx context.Context, _ map[string]string) ([]api.Alert, error) {
		return client.ListAlerts(ctx)
	})

	m.search = textinput.New()
	m.search.Placeholder = "Search alerts..."
	m.search.CharLimit = 64
	m.search.Width = 32

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Item", Width: 22},
			{Title: "Message", Width: 40},
			{Title: "Status", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.sync.Fetch()
}

// SetSize adjusts the layout to the available area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if h := height - 8; h > 3 {
		m.table.SetHeight(h)
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case syncer.FetchedMsg[api.Alert]:
		if m.sync.Apply(msg) {
			m.rebuildRows()
		}
		return m, nil

	case ackDoneMsg:
		delete(m.acking, msg.id)
		if msg.err != nil {
			m.ackErr = failureMessage(msg.err)
			m.rebuildRows()
			return m, nil
		}
		m.ackErr = ""
		return m, m.sync.Fetch()
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		switch msg.String() {
		case "esc", "enter":
			m.typing = false
			m.search.Blur()
			m.table.Focus()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.rebuildRows()
		}
		return m, cmd
	}

	switch msg.String() {
	case "/":
		m.typing = true
		m.table.Blur()
		return m, m.search.Focus()
	case "m", "enter":
		return m, m.acknowledgeSelected()
	case "r":
		return m, m.sync.Fetch()
	case "b":
		return m, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// acknowledgeSelected marks the selected alert as read unless it is
// already read or the call is already in flight.
func (m *Model) acknowledgeSelected() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}
	alert := m.visible[idx]
	if alert.Status == api.AlertRead || m.acking[alert.ID] {
		return nil
	}

	m.acking[alert.ID] = true
	m.rebuildRows()
	client := m.api
	id := alert.ID
	return func() tea.Msg {
		return ackDoneMsg{id: id, err: client.MarkAlertRead(context.Background(), id)}
	}
}

func failureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// rebuildRows recomputes the visible slice from the snapshot and the
// search term. Filtering is local; it never triggers a fetch.
func (m *Model) rebuildRows() {
	term := strings.ToLower(strings.TrimSpace(m.search.Value()))

	m.visible = m.visible[:0]
	for _, alert := range m.sync.Rows() {
		if term != "" &&
			!strings.Contains(strings.ToLower(alert.Message), term) &&
			!strings.Contains(strings.ToLower(alert.Item.Name), term) {
			continue
		}
		m.visible = append(m.visible, alert)
	}

	rows := make([]table.Row, 0, len(m.visible))
	for _, alert := range m.visible {
		status := alert.Status
		if m.acking[alert.ID] {
			status = "marking..."
		}
		item := alert.Item.Name
		if item == "" {
			item = alert.Item.ID
		}
		rows = append(rows, table.Row{shortDate(alert.Date), item, alert.Message, status})
	}
	m.table.SetRows(rows)
}

func shortDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Stock Alerts"))
	sb.WriteString("\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n\n")

	if m.sync.Err() != "" {
		sb.WriteString(styles.StatusCritical.Render("Error: " + m.sync.Err()))
		sb.WriteString("\n")
	}
	if m.ackErr != "" {
		sb.WriteString(styles.StatusCritical.Render(m.ackErr))
		sb.WriteString("\n")
	}
	if m.sync.Loading() {
		sb.WriteString(styles.Subtitle.Render("Loading..."))
		sb.WriteString("\n")
	}

	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("m Mark read  / Search  r Refresh  b Back"))

	return sb.String()
}
