// ABOUTME: Stock movement screen with history, filters, and record dialogs
// ABOUTME: Quantities are server-computed; every write triggers a re-fetch

package stock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/sync/errgroup"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/tui/styles"
	"github.com/storesync/console/internal/tui/syncer"
)

// BackMsg asks the parent to return to the menu.
type BackMsg struct{}

type dialogKind int

const (
	kindInbound dialogKind = iota
	kindOutbound
	kindFilterItem
)

// choicesMsg carries the item and supplier lists used by the record
// dialogs and the item filter.
type choicesMsg struct {
	items     []api.Item
	suppliers []api.Supplier
	err       error
}

// Failure lets the root model intercept authorization failures.
func (m choicesMsg) Failure() error { return m.err }

type draft struct {
	itemID     string
	quantity   string
	supplierID string
	note       string
}

// Model is the stock movements screen.
type Model struct {
	api  *api.Client
	sync *syncer.Syncer[api.StockMovement]

	table     table.Model
	items     []api.Item
	suppliers []api.Supplier

	dialog     syncer.Dialog
	kind       dialogKind
	form       *huh.Form
	draft      draft
	filterItem string

	width  int
	height int
}

// New creates the stock screen bound to the API client.
func New(client *api.Client) *Model {
	m := &Model{api: client}
	m.sync = syncer.New(func(ctx context.Context, filters map[string]string) ([]api.StockMovement, error) {
		return client.ListMovements(ctx, filters)
	})

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Item", Width: 20},
			{Title: "Type", Width: 9},
			{Title: "Qty", Width: 6},
			{Title: "Date", Width: 12},
			{Title: "User", Width: 14},
			{Title: "Supplier", Width: 16},
			{Title: "Note", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.sync.Fetch(), m.fetchChoices())
}

// fetchChoices loads items and suppliers in parallel for the dialogs.
func (m *Model) fetchChoices() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		var items []api.Item
		var suppliers []api.Supplier

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			items, err = client.ListItems(ctx, nil)
			return err
		})
		g.Go(func() error {
			var err error
			suppliers, err = client.ListSuppliers(ctx, nil)
			return err
		})
		err := g.Wait()
		return choicesMsg{items: items, suppliers: suppliers, err: err}
	}
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

	case syncer.FetchedMsg[api.StockMovement]:
		if m.sync.Apply(msg) {
			m.rebuildRows()
		}
		return m, nil

	case choicesMsg:
		if msg.err == nil {
			m.items = msg.items
			m.suppliers = msg.suppliers
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
	case "i":
		m.openRecord(kindInbound)
		return m, m.form.Init()
	case "o":
		m.openRecord(kindOutbound)
		return m, m.form.Init()
	case "t":
		return m, m.cycleTypeFilter()
	case "f":
		m.openItemFilter()
		return m, m.form.Init()
	case "r":
		return m, tea.Batch(m.sync.Fetch(), m.fetchChoices())
	case "c":
		return m, m.sync.ClearFilters()
	case "b":
		return m, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycleTypeFilter steps all -> inbound -> outbound -> all.
func (m *Model) cycleTypeFilter() tea.Cmd {
	next := ""
	switch m.sync.Filter(api.FilterMovementType) {
	case "":
		next = api.MovementInbound
	case api.MovementInbound:
		next = api.MovementOutbound
	}
	return m.sync.SetFilter(api.FilterMovementType, next)
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
	if m.kind == kindFilterItem {
		m.dialog.Close()
		m.form = nil
		return m.sync.SetFilter(api.FilterMovementItem, m.filterItem)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(m.draft.quantity))
	if err != nil || qty <= 0 {
		m.dialog.Fail("quantity must be a positive number")
		m.form = m.recordForm()
		return m.form.Init()
	}

	d := api.MovementDraft{
		Item:     m.draft.itemID,
		Quantity: qty,
		Supplier: m.draft.supplierID,
		Note:     m.draft.note,
	}

	m.dialog.Submit()
	client := m.api
	if m.kind == kindInbound {
		return syncer.Mutate(func(ctx context.Context) error {
			return client.RecordInbound(ctx, d)
		})
	}
	return syncer.Mutate(func(ctx context.Context) error {
		return client.RecordOutbound(ctx, d)
	})
}

func (m *Model) applyMutation(msg syncer.MutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		m.dialog.Close()
		m.form = nil
		return m, tea.Batch(m.sync.Fetch(), m.fetchChoices())
	}

	fallback := "Failed to record movement"
	m.dialog.Fail(failureMessage(msg.Err, fallback))
	m.form = m.recordForm()
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

func (m *Model) openRecord(kind dialogKind) {
	m.kind = kind
	m.draft = draft{}
	m.dialog.Begin()
	m.form = m.recordForm()
}

func (m *Model) recordForm() *huh.Form {
	title := "Record Inbound Stock"
	if m.kind == kindOutbound {
		title = "Record Outbound Stock"
	}

	itemOptions := make([]huh.Option[string], 0, len(m.items))
	for _, item := range m.items {
		label := fmt.Sprintf("%s (%s)", item.Name, item.SKU)
		itemOptions = append(itemOptions, huh.NewOption(label, item.ID))
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Item").
			Options(itemOptions...).
			Value(&m.draft.itemID),
		huh.NewInput().
			Title("Quantity").
			Value(&m.draft.quantity).
			Validate(positiveNumber),
	}

	if m.kind == kindInbound {
		supplierOptions := []huh.Option[string]{huh.NewOption("None", "")}
		for _, sup := range m.suppliers {
			supplierOptions = append(supplierOptions, huh.NewOption(sup.Name, sup.ID))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Supplier").
			Options(supplierOptions...).
			Value(&m.draft.supplierID))
	}

	fields = append(fields, huh.NewInput().Title("Note").Value(&m.draft.note))

	return huh.NewForm(huh.NewGroup(fields...).Title(title)).WithTheme(huh.ThemeBase())
}

func (m *Model) openItemFilter() {
	m.kind = kindFilterItem
	m.filterItem = m.sync.Filter(api.FilterMovementItem)
	m.dialog.Begin()

	options := []huh.Option[string]{huh.NewOption("All items", "")}
	for _, item := range m.items {
		label := fmt.Sprintf("%s (%s)", item.Name, item.SKU)
		options = append(options, huh.NewOption(label, item.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Filter by Item").
				Options(options...).
				Value(&m.filterItem),
		),
	).WithTheme(huh.ThemeBase())
}

func positiveNumber(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func (m *Model) rebuildRows() {
	rows := make([]table.Row, 0, len(m.sync.Rows()))
	for _, mv := range m.sync.Rows() {
		item := mv.Item.Name
		if item == "" {
			item = mv.Item.ID
		}
		rows = append(rows, table.Row{
			item,
			mv.Type,
			strconv.Itoa(mv.Quantity),
			shortDate(mv.Date),
			mv.User.Name,
			mv.Supplier.Name,
			mv.Note,
		})
	}
	m.table.SetRows(rows)
}

// shortDate trims an ISO timestamp down to its date part.
func shortDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Stock Movements"))
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

	typeFilter := m.sync.Filter(api.FilterMovementType)
	if typeFilter == "" {
		typeFilter = "all"
	}
	sb.WriteString(styles.FilterLabel.Render("Type: ") + styles.ValueStyle.Render(typeFilter))
	if id := m.sync.Filter(api.FilterMovementItem); id != "" {
		sb.WriteString("  " + styles.FilterLabel.Render("Item: ") + styles.ValueStyle.Render(m.itemLabel(id)))
	}
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
	sb.WriteString(styles.Help.Render("i Inbound  o Outbound  t Cycle type  f Filter item  r Refresh  c Clear filters  b Back"))

	return sb.String()
}

func (m *Model) itemLabel(id string) string {
	for _, item := range m.items {
		if item.ID == id {
			return item.Name
		}
	}
	return id
}
