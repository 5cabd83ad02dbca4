// ABOUTME: Items screen with filtered list and add/edit/delete dialogs
// ABOUTME: Every successful mutation closes its dialog and re-fetches the list

package items

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/tui/styles"
	"github.com/storesync/console/internal/tui/syncer"
)

// BackMsg asks the parent to return to the menu.
type BackMsg struct{}

type dialogKind int

const (
	kindAdd dialogKind = iota
	kindEdit
	kindDelete
)

// focusTable means keystrokes act on the table and the action keys.
const focusTable = -1

type draft struct {
	name      string
	sku       string
	quantity  string
	location  string
	category  string
	threshold string
}

// Model is the items screen.
type Model struct {
	api  *api.Client
	sync *syncer.Syncer[api.Item]

	table      table.Model
	filters    []textinput.Model
	filterKeys []string
	focus      int

	dialog     syncer.Dialog
	kind       dialogKind
	form       *huh.Form
	draft      draft
	targetID   string
	confirmDel bool

	width  int
	height int
}

// New creates the items screen bound to the API client.
func New(client *api.Client) *Model {
	m := &Model{
		api:   client,
		focus: focusTable,
	}
	m.sync = syncer.New(func(ctx context.Context, filters map[string]string) ([]api.Item, error) {
		return client.ListItems(ctx, filters)
	})

	m.filterKeys = []string{api.FilterItemName, api.FilterItemSKU, api.FilterItemCategory}
	for _, ph := range []string{"Name...", "SKU...", "Category..."} {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 64
		in.Width = 18
		m.filters = append(m.filters, in)
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "SKU", Width: 14},
			{Title: "Qty", Width: 6},
			{Title: "Location", Width: 14},
			{Title: "Category", Width: 14},
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
		if m.dialog.Open() {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)

	case syncer.FetchedMsg[api.Item]:
		if m.sync.Apply(msg) {
			m.rebuildRows()
		}
		return m, nil

	case syncer.MutationDoneMsg:
		return m.applyMutation(msg)
	}

	if m.dialog.Open() && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	case "esc":
		m.setFocus(focusTable)
		return m, nil
	}

	if m.focus != focusTable {
		in, cmd := m.filters[m.focus].Update(msg)
		before := m.filters[m.focus].Value()
		m.filters[m.focus] = in
		if in.Value() != before {
			return m, tea.Batch(cmd, m.sync.SetFilter(m.filterKeys[m.focus], in.Value()))
		}
		return m, cmd
	}

	switch msg.String() {
	case "a":
		m.openAdd()
		return m, m.form.Init()
	case "e":
		if item, ok := m.selected(); ok {
			m.openEdit(item)
			return m, m.form.Init()
		}
		return m, nil
	case "d":
		if item, ok := m.selected(); ok {
			m.openDelete(item.ID)
			return m, m.form.Init()
		}
		return m, nil
	case "r":
		return m, m.sync.Fetch()
	case "c":
		for i := range m.filters {
			m.filters[i].SetValue("")
		}
		return m, m.sync.ClearFilters()
	case "b":
		return m, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog.State() == syncer.DialogSubmitting {
		return m, nil
	}
	if msg.String() == "esc" {
		m.dialog.Close()
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.submit()
	}
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	if m.kind == kindDelete {
		if !m.confirmDel {
			m.dialog.Close()
			m.form = nil
			return nil
		}
		m.dialog.Submit()
		id := m.targetID
		client := m.api
		return syncer.Mutate(func(ctx context.Context) error {
			return client.DeleteItem(ctx, id)
		})
	}

	d, err := m.parseDraft()
	if err != nil {
		m.dialog.Fail(err.Error())
		m.form = m.itemForm()
		return m.form.Init()
	}

	m.dialog.Submit()
	client := m.api
	if m.kind == kindEdit {
		id := m.targetID
		return syncer.Mutate(func(ctx context.Context) error {
			return client.UpdateItem(ctx, id, d)
		})
	}
	return syncer.Mutate(func(ctx context.Context) error {
		return client.CreateItem(ctx, d)
	})
}

func (m *Model) applyMutation(msg syncer.MutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		m.dialog.Close()
		m.form = nil
		return m, m.sync.Fetch()
	}

	fallback := "Failed to add item"
	switch m.kind {
	case kindEdit:
		fallback = "Failed to update item"
	case kindDelete:
		fallback = "Failed to delete item"
	}
	m.dialog.Fail(failureMessage(msg.Err, fallback))
	m.form = m.currentForm()
	return m, m.form.Init()
}

// failureMessage prefers the server-supplied message over a generic one.
func failureMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

func (m *Model) parseDraft() (api.ItemDraft, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(m.draft.quantity))
	if err != nil {
		return api.ItemDraft{}, fmt.Errorf("quantity must be a number")
	}
	threshold := 0
	if strings.TrimSpace(m.draft.threshold) != "" {
		threshold, err = strconv.Atoi(strings.TrimSpace(m.draft.threshold))
		if err != nil {
			return api.ItemDraft{}, fmt.Errorf("low stock threshold must be a number")
		}
	}
	return api.ItemDraft{
		Name:              m.draft.name,
		SKU:               m.draft.sku,
		Quantity:          qty,
		Location:          m.draft.location,
		Category:          m.draft.category,
		LowStockThreshold: threshold,
	}, nil
}

func (m *Model) openAdd() {
	m.kind = kindAdd
	m.draft = draft{}
	m.dialog.Begin()
	m.form = m.itemForm()
}

func (m *Model) openEdit(item api.Item) {
	m.kind = kindEdit
	m.targetID = item.ID
	m.draft = draft{
		name:      item.Name,
		sku:       item.SKU,
		quantity:  strconv.Itoa(item.Quantity),
		location:  item.Location,
		category:  item.Category,
		threshold: strconv.Itoa(item.LowStockThreshold),
	}
	m.dialog.Begin()
	m.form = m.itemForm()
}

func (m *Model) openDelete(id string) {
	m.kind = kindDelete
	m.targetID = id
	m.confirmDel = false
	m.dialog.Begin()
	m.form = m.deleteForm()
}

func (m *Model) currentForm() *huh.Form {
	if m.kind == kindDelete {
		return m.deleteForm()
	}
	return m.itemForm()
}

func (m *Model) itemForm() *huh.Form {
	title := "Add New Item"
	if m.kind == kindEdit {
		title = "Edit Item"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.draft.name).Validate(required("name")),
			huh.NewInput().Title("SKU").Value(&m.draft.sku).Validate(required("sku")),
			huh.NewInput().Title("Quantity").Value(&m.draft.quantity).Validate(numeric),
			huh.NewInput().Title("Location").Value(&m.draft.location),
			huh.NewInput().Title("Category").Value(&m.draft.category),
			huh.NewInput().Title("Low Stock Threshold").Value(&m.draft.threshold).Validate(numericOptional),
		).Title(title),
	).WithTheme(huh.ThemeBase())
}

func (m *Model) deleteForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Are you sure you want to delete this item?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.confirmDel),
		).Title("Delete Item"),
	).WithTheme(huh.ThemeBase())
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func numeric(v string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func numericOptional(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return numeric(v)
}

func (m *Model) cycleFocus(dir int) {
	next := m.focus + dir
	if next >= len(m.filters) {
		next = focusTable
	}
	if next < focusTable {
		next = len(m.filters) - 1
	}
	m.setFocus(next)
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	for i := range m.filters {
		if i == focus {
			m.filters[i].Focus()
		} else {
			m.filters[i].Blur()
		}
	}
	if focus == focusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) selected() (api.Item, bool) {
	rows := m.sync.Rows()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(rows) {
		return api.Item{}, false
	}
	return rows[idx], true
}

func (m *Model) rebuildRows() {
	rows := make([]table.Row, 0, len(m.sync.Rows()))
	for _, item := range m.sync.Rows() {
		rows = append(rows, table.Row{
			item.Name,
			item.SKU,
			strconv.Itoa(item.Quantity),
			item.Location,
			item.Category,
		})
	}
	m.table.SetRows(rows)
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Items Management"))
	sb.WriteString("\n")

	if m.dialog.Open() {
		if m.dialog.State() == syncer.DialogSubmitting {
			sb.WriteString("Saving...\n")
		} else if m.form != nil {
			sb.WriteString(m.form.View())
			sb.WriteString("\n")
		}
		if m.dialog.Err() != "" {
			sb.WriteString(styles.StatusCritical.Render(m.dialog.Err()))
			sb.WriteString("\n")
		}
		sb.WriteString(styles.Help.Render("esc Cancel"))
		return sb.String()
	}

	var inputs []string
	for i := range m.filters {
		inputs = append(inputs, m.filters[i].View())
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, inputs...))
	sb.WriteString("\n\n")

	if m.sync.Err() != "" {
		sb.WriteString(styles.StatusCritical.Render("Error: " + m.sync.Err()))
		sb.WriteString("\n")
	}
	if m.sync.Loading() {
		sb.WriteString(styles.Subtitle.Render("Loading..."))
		sb.WriteString("\n")
	}

	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("a Add  e Edit  d Delete  r Refresh  c Clear filters  tab Filters  b Back"))

	return sb.String()
}
