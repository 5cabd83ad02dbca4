// ABOUTME: Login and registration screens as huh forms
// ABOUTME: Registration never authenticates; it routes back to login

package login

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/storesync/console/internal/session"
	"github.com/storesync/console/internal/tui/styles"
)

// SucceededMsg is sent to the parent when login completes.
type SucceededMsg struct{}

// mode selects which form the screen is showing.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// loginDoneMsg carries the result of a login attempt.
type loginDoneMsg struct {
	err error
}

// registerDoneMsg carries the result of a registration attempt.
type registerDoneMsg struct {
	err error
}

// Model is the authentication screen.
type Model struct {
	session *session.Session
	form    *huh.Form
	mode    mode

	email    string
	password string
	name     string

	submitting bool
	errMsg     string
	notice     string
	width      int
}

// New creates the screen in login mode.
func New(sess *session.Session) *Model {
	m := &Model{session: sess}
	m.form = m.loginForm()
	return m
}

func (m *Model) loginForm() *huh.Form {
	m.email = ""
	m.password = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(required("password")),
		).Title("Login").
			Description("Sign in to StoreSync"),
	).WithTheme(huh.ThemeBase())
}

func (m *Model) registerForm() *huh.Form {
	m.name = ""
	m.email = ""
	m.password = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.name).
				Validate(required("name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(required("password")),
		).Title("Register").
			Description("Create a StoreSync account"),
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

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+r":
			if m.mode == modeLogin {
				m.switchMode(modeRegister)
				return m, m.form.Init()
			}
		case "esc":
			if m.mode == modeRegister {
				m.switchMode(modeLogin)
				return m, m.form.Init()
			}
		}

	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.form = m.loginForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return SucceededMsg{} }

	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.form = m.registerForm()
			return m, m.form.Init()
		}
		m.switchMode(modeLogin)
		m.notice = "Registration successful! Please login."
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.submitting {
		return m, m.submit()
	}

	return m, cmd
}

func (m *Model) switchMode(to mode) {
	m.mode = to
	m.errMsg = ""
	m.notice = ""
	if to == modeRegister {
		m.form = m.registerForm()
	} else {
		m.form = m.loginForm()
	}
}

func (m *Model) submit() tea.Cmd {
	m.submitting = true
	m.errMsg = ""
	m.notice = ""

	sess := m.session
	email, password, name := m.email, m.password, m.name

	if m.mode == modeRegister {
		return func() tea.Msg {
			return registerDoneMsg{err: sess.Register(context.Background(), name, email, password)}
		}
	}
	return func() tea.Msg {
		return loginDoneMsg{err: sess.Login(context.Background(), email, password)}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	if m.submitting {
		if m.mode == modeRegister {
			sb.WriteString("Registering...")
		} else {
			sb.WriteString("Signing in...")
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.form.View())
		sb.WriteString("\n")
	}

	if m.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render(m.errMsg))
		sb.WriteString("\n")
	}
	if m.notice != "" {
		sb.WriteString(styles.Notice.Render(m.notice))
		sb.WriteString("\n")
	}

	if m.mode == modeLogin {
		sb.WriteString(styles.Help.Render("ctrl+r Register an account"))
	} else {
		sb.WriteString(styles.Help.Render("esc Back to login"))
	}

	return sb.String()
}
