// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes input to the active screen and guards every protected screen

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/session"
	"github.com/storesync/console/internal/tui/alerts"
	"github.com/storesync/console/internal/tui/analytics"
	"github.com/storesync/console/internal/tui/debuglog"
	"github.com/storesync/console/internal/tui/items"
	"github.com/storesync/console/internal/tui/login"
	"github.com/storesync/console/internal/tui/menu"
	"github.com/storesync/console/internal/tui/stock"
	"github.com/storesync/console/internal/tui/styles"
	"github.com/storesync/console/internal/tui/suppliers"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenMenu
	ScreenItems
	ScreenSuppliers
	ScreenStock
	ScreenAlerts
	ScreenAnalytics
)

// Layout constants
const (
	minTerminalWidth = 80
	frameOverhead    = 4 // header, blank line, blank line, footer
)

// sessionReadyMsg is sent once the stored credential has been consulted.
type sessionReadyMsg struct{}

// App is the root model for the TUI
type App struct {
	client  *api.Client
	session *session.Session
	screen  Screen
	width   int
	height  int

	// Child models. Protected screens are built fresh on entry so
	// each visit starts from a clean fetch.
	menu        *menu.Menu
	loginScreen *login.Model
	itemsScreen *items.Model
	supScreen   *suppliers.Model
	stockScreen *stock.Model
	alertScreen *alerts.Model
	analScreen  *analytics.Model
}

// New creates a new TUI application in the loading state.
func New(client *api.Client, sess *session.Session) *App {
	return &App{
		client:  client,
		session: sess,
		screen:  ScreenLoading,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	sess := a.session
	return func() tea.Msg {
		sess.Init()
		return sessionReadyMsg{}
	}
}

// failer is any result message carrying a possible failure. Declared
// locally so every screen's done-messages are intercepted uniformly.
type failer interface {
	Failure() error
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeChildren()
		return a.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.forward(msg)

	case sessionReadyMsg:
		return a.routeBySession()

	case login.SucceededMsg:
		return a.showMenu()

	case menu.SelectedMsg:
		return a.openSection(msg.Choice)

	case menu.LogoutMsg:
		a.session.Logout()
		debuglog.Log("logged out")
		return a.showLogin()

	case menu.QuitMsg:
		return a, tea.Quit

	case items.BackMsg, suppliers.BackMsg, stock.BackMsg, alerts.BackMsg, analytics.BackMsg:
		return a.showMenu()
	}

	// A rejected credential expires the session no matter which screen
	// the failing call came from.
	if f, ok := msg.(failer); ok {
		if err := f.Failure(); api.IsAuth(err) {
			debuglog.Error("session expired", err)
			a.session.Expire()
			return a.showLogin()
		}
	}

	return a.forward(msg)
}

// routeBySession picks the first screen once the token store has been
// consulted.
func (a *App) routeBySession() (tea.Model, tea.Cmd) {
	if a.session.State() == session.StateAuthenticated {
		return a.showMenu()
	}
	return a.showLogin()
}

func (a *App) showLogin() (tea.Model, tea.Cmd) {
	a.dropProtected()
	a.menu = nil
	a.loginScreen = login.New(a.session)
	a.screen = ScreenLogin
	return a, a.loginScreen.Init()
}

func (a *App) showMenu() (tea.Model, tea.Cmd) {
	a.dropProtected()
	a.loginScreen = nil
	if a.menu == nil {
		a.menu = menu.New()
	}
	a.screen = ScreenMenu
	return a, nil
}

// dropProtected discards every data screen so no stale snapshot can be
// rendered after the session changes.
func (a *App) dropProtected() {
	a.itemsScreen = nil
	a.supScreen = nil
	a.stockScreen = nil
	a.alertScreen = nil
	a.analScreen = nil
}

func (a *App) openSection(choice menu.Choice) (tea.Model, tea.Cmd) {
	// No protected screen opens without an authenticated session.
	if a.session.State() != session.StateAuthenticated {
		return a.showLogin()
	}

	switch choice {
	case menu.ChoiceItems:
		a.itemsScreen = items.New(a.client)
		a.itemsScreen.SetSize(a.width, a.contentHeight())
		a.screen = ScreenItems
		return a, a.itemsScreen.Init()
	case menu.ChoiceSuppliers:
		a.supScreen = suppliers.New(a.client)
		a.supScreen.SetSize(a.width, a.contentHeight())
		a.screen = ScreenSuppliers
		return a, a.supScreen.Init()
	case menu.ChoiceStock:
		a.stockScreen = stock.New(a.client)
		a.stockScreen.SetSize(a.width, a.contentHeight())
		a.screen = ScreenStock
		return a, a.stockScreen.Init()
	case menu.ChoiceAlerts:
		a.alertScreen = alerts.New(a.client)
		a.alertScreen.SetSize(a.width, a.contentHeight())
		a.screen = ScreenAlerts
		return a, a.alertScreen.Init()
	case menu.ChoiceAnalytics:
		a.analScreen = analytics.New(a.client)
		a.analScreen.SetSize(a.width, a.contentHeight())
		a.screen = ScreenAnalytics
		return a, a.analScreen.Init()
	}
	return a, nil
}

// forward routes a message to the active child model.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin:
		if a.loginScreen == nil {
			return a, nil
		}
		model, cmd := a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Model)
		return a, cmd
	case ScreenMenu:
		if a.menu == nil {
			return a, nil
		}
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd
	case ScreenItems:
		if a.itemsScreen == nil {
			return a, nil
		}
		model, cmd := a.itemsScreen.Update(msg)
		a.itemsScreen = model.(*items.Model)
		return a, cmd
	case ScreenSuppliers:
		if a.supScreen == nil {
			return a, nil
		}
		model, cmd := a.supScreen.Update(msg)
		a.supScreen = model.(*suppliers.Model)
		return a, cmd
	case ScreenStock:
		if a.stockScreen == nil {
			return a, nil
		}
		model, cmd := a.stockScreen.Update(msg)
		a.stockScreen = model.(*stock.Model)
		return a, cmd
	case ScreenAlerts:
		if a.alertScreen == nil {
			return a, nil
		}
		model, cmd := a.alertScreen.Update(msg)
		a.alertScreen = model.(*alerts.Model)
		return a, cmd
	case ScreenAnalytics:
		if a.analScreen == nil {
			return a, nil
		}
		model, cmd := a.analScreen.Update(msg)
		a.analScreen = model.(*analytics.Model)
		return a, cmd
	}
	return a, nil
}

func (a *App) resizeChildren() {
	h := a.contentHeight()
	if a.itemsScreen != nil {
		a.itemsScreen.SetSize(a.width, h)
	}
	if a.supScreen != nil {
		a.supScreen.SetSize(a.width, h)
	}
	if a.stockScreen != nil {
		a.stockScreen.SetSize(a.width, h)
	}
	if a.alertScreen != nil {
		a.alertScreen.SetSize(a.width, h)
	}
	if a.analScreen != nil {
		a.analScreen.SetSize(a.width, h)
	}
}

func (a *App) contentHeight() int {
	return a.height - frameOverhead
}

// View implements tea.Model
func (a *App) View() string {
	screen := a.screen

	// Only the login screen renders while the session is not
	// authenticated, whatever the routed screen says.
	if screen > ScreenLogin && a.session.State() != session.StateAuthenticated {
		screen = ScreenLogin
	}

	var content string
	switch screen {
	case ScreenLoading:
		content = styles.Subtitle.Render("Loading...")
	case ScreenLogin:
		if a.loginScreen != nil {
			content = a.loginScreen.View()
		}
	case ScreenMenu:
		if a.menu != nil {
			content = a.menu.View()
		}
	case ScreenItems:
		if a.itemsScreen != nil {
			content = a.itemsScreen.View()
		}
	case ScreenSuppliers:
		if a.supScreen != nil {
			content = a.supScreen.View()
		}
	case ScreenStock:
		if a.stockScreen != nil {
			content = a.stockScreen.View()
		}
	case ScreenAlerts:
		if a.alertScreen != nil {
			content = a.alertScreen.View()
		}
	case ScreenAnalytics:
		if a.analScreen != nil {
			content = a.analScreen.View()
		}
	}

	return a.renderHeader() + "\n" + content + "\n" + a.renderFooter()
}

// renderHeader creates the header bar with app branding and identity
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	identityStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + titleStyle.Render("StoreSync")

	rightText := ""
	if a.session.State() == session.StateAuthenticated {
		id := a.session.Identity()
		rightText = identityStyle.Render(fmt.Sprintf("%s (%s)", id.Name, id.Role)) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with the global shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	shortcuts := []string{"ctrl+c Quit"}
	if a.screen == ScreenMenu {
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "l Logout", "q Quit"}
	}

	var styled []string
	var plain []string
	for _, s := range shortcuts {
		plain = append(plain, s)
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")
	fillWidth := width - 4 - lipgloss.Width(" "+strings.Join(plain, "  "))
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯")
}

// Run starts the TUI
func Run(client *api.Client, sess *session.Session) error {
	app := New(client, sess)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
