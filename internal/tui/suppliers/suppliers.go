// ABOUTME: Suppliers screen with filtered list and add/edit/delete dialogs
// ABOUTME: Contact details are a nested block on the supplier document

package suppliers

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

const focusTable = -1

type draft struct {
	name        string
	email       string
	phone       string
	address     string
	reliability string
	performance string
}

// Model is the suppliers screen.
type Model struct {
	api  *api.Client
	sync *syncer.Syncer[api.Supplier]

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

// New creates the suppliers screen bound to the API client.
func New(client *api.Client) *Model {
	m := &Model{
		api:   client,
		focus: focusTable,
	}
	m.sync = syncer.New(func(ctx context.Context, filters map[string]string) ([]api.Supplier, error) {
		return client.ListSuppliers(ctx, filters)
	})

	m.filterKeys = []string{api.FilterSupplierName, api.FilterSupplierEmail, api.FilterSupplierPhone}
	for _, ph := range []string{"Name...", "Email...", "Phone..."} {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 64
		in.Width = 18
		m.filters = append(m.filters, in)
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 24},
			{Title: "Phone", Width: 14},
			{Title: "Reliability", Width: 11},
			{Title: "Performance", Width: 11},
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

	case syncer.FetchedMsg[api.Supplier]:
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
		if sup, ok := m.selected(); ok {
			m.openEdit(sup)
			return m, m.form.Init()
		}
		return m, nil
	case "d":
		if sup, ok := m.selected(); ok {
			m.openDelete(sup.ID)
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
			return client.DeleteSupplier(ctx, id)
		})
	}

	d, err := m.parseDraft()
	if err != nil {
		m.dialog.Fail(err.Error())
		m.form = m.supplierForm()
		return m.form.Init()
	}

	m.dialog.Submit()
	client := m.api
	if m.kind == kindEdit {
		id := m.targetID
		return syncer.Mutate(func(ctx context.Context) error {
			return client.UpdateSupplier(ctx, id, d)
		})
	}
	return syncer.Mutate(func(ctx context.Context) error {
		return client.CreateSupplier(ctx, d)
	})
}

func (m *Model) applyMutation(msg syncer.MutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		m.dialog.Close()
		m.form = nil
		return m, m.sync.Fetch()
	}

	fallback := "Failed to add supplier"
	switch m.kind {
	case kindEdit:
		fallback = "Failed to update supplier"
	case kindDelete:
		fallback = "Failed to delete supplier"
	}
	m.dialog.Fail(failureMessage(msg.Err, fallback))
	m.form = m.currentForm()
	return m, m.form.Init()
}

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

func (m *Model) parseDraft() (api.SupplierDraft, error) {
	reliability, err := parseScore(m.draft.reliability, "reliability")
	if err != nil {
		return api.SupplierDraft{}, err
	}
	performance, err := parseScore(m.draft.performance, "performance")
	if err != nil {
		return api.SupplierDraft{}, err
	}
	return api.SupplierDraft{
		Name: m.draft.name,
		ContactInfo: api.ContactInfo{
			Email:   m.draft.email,
			Phone:   m.draft.phone,
			Address: m.draft.address,
		},
		Reliability: reliability,
		Performance: performance,
	}, nil
}

// parseScore accepts an empty field as zero.
func parseScore(v, field string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return f, nil
}

func (m *Model) openAdd() {
	m.kind = kindAdd
	m.draft = draft{}
	m.dialog.Begin()
	m.form = m.supplierForm()
}

func (m *Model) openEdit(sup api.Supplier) {
	m.kind = kindEdit
	m.targetID = sup.ID
	m.draft = draft{
		name:        sup.Name,
		email:       sup.ContactInfo.Email,
		phone:       sup.ContactInfo.Phone,
		address:     sup.ContactInfo.Address,
		reliability: formatScore(sup.Reliability),
		performance: formatScore(sup.Performance),
	}
	m.dialog.Begin()
	m.form = m.supplierForm()
}

func formatScore(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
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
	return m.supplierForm()
}

func (m *Model) supplierForm() *huh.Form {
	title := "Add New Supplier"
	if m.kind == kindEdit {
		title = "Edit Supplier"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.draft.name).Validate(required("name")),
			huh.NewInput().Title("Email").Value(&m.draft.email),
			huh.NewInput().Title("Phone").Value(&m.draft.phone),
			huh.NewInput().Title("Address").Value(&m.draft.address),
			huh.NewInput().Title("Reliability").Value(&m.draft.reliability).Validate(scoreOptional),
			huh.NewInput().Title("Performance").Value(&m.draft.performance).Validate(scoreOptional),
		).Title(title),
	).WithTheme(huh.ThemeBase())
}

func (m *Model) deleteForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Are you sure you want to delete this supplier?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.confirmDel),
		).Title("Delete Supplier"),
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

func scoreOptional(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
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

func (m *Model) selected() (api.Supplier, bool) {
	rows := m.sync.Rows()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(rows) {
		return api.Supplier{}, false
	}
	return rows[idx], true
}

func (m *Model) rebuildRows() {
	rows := make([]table.Row, 0, len(m.sync.Rows()))
	for _, sup := range m.sync.Rows() {
		rows = append(rows, table.Row{
			sup.Name,
			sup.ContactInfo.Email,
			sup.ContactInfo.Phone,
			fmt.Sprintf("%.1f", sup.Reliability),
			fmt.Sprintf("%.1f", sup.Performance),
		})
	}
	m.table.SetRows(rows)
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Suppliers Management"))
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
