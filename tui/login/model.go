// Package login is the credential form shown by `palette login`.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HyunSeo88/palette-sub001/tui/common"
)

// Credentials is what the form collects.
type Credentials struct {
	Email    string
	Password string
}

type field int

const (
	emailField field = iota
	passwordField
)

var (
	nextKey   = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	prevKey   = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field"))
	submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in"))
	cancelKey = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
)

// Model is a two-field email/password form. Run it with tea.NewProgram and
// read Result from the final model.
type Model struct {
	email     textinput.Model
	password  textinput.Model
	focus     field
	err       string
	submitted bool
	cancelled bool
}

// New creates the form, optionally prefilled with an email.
func New(email string) Model {
	e := textinput.New()
	e.Placeholder = "you@example.com"
	e.Prompt = "Email    "
	e.CharLimit = 254
	e.SetValue(email)

	p := textinput.New()
	p.Placeholder = "password"
	p.Prompt = "Password "
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'

	m := Model{email: e, password: p}
	if strings.TrimSpace(email) != "" {
		m.focus = passwordField
	}
	m.applyFocus()
	return m
}

// Result returns the entered credentials. ok is false if the form was
// cancelled.
func (m Model) Result() (Credentials, bool) {
	if !m.submitted || m.cancelled {
		return Credentials{}, false
	}
	return Credentials{
		Email:    strings.TrimSpace(m.email.Value()),
		Password: m.password.Value(),
	}, true
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, cancelKey):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, nextKey):
			m.focus = (m.focus + 1) % 2
			m.applyFocus()
			return m, nil
		case key.Matches(msg, prevKey):
			m.focus = (m.focus + 1) % 2
			m.applyFocus()
			return m, nil
		case key.Matches(msg, submitKey):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == emailField {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	switch {
	case strings.TrimSpace(m.email.Value()) == "":
		m.err = "Email is required."
		m.focus = emailField
	case m.password.Value() == "":
		m.err = "Password is required."
		m.focus = passwordField
	default:
		m.err = ""
		m.submitted = true
		return m, tea.Quit
	}
	m.applyFocus()
	return m, nil
}

func (m *Model) applyFocus() {
	if m.focus == emailField {
		m.email.Focus()
		m.password.Blur()
		return
	}
	m.password.Focus()
	m.email.Blur()
}

func (m Model) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Palette"))
	b.WriteString("  Sign in\n\n")
	b.WriteString("  " + m.email.View() + "\n")
	b.WriteString("  " + m.password.View() + "\n\n")
	if m.err != "" {
		b.WriteString(common.ErrorStyle.Render("  "+m.err) + "\n\n")
	}
	b.WriteString(common.HintStyle.Render("  " + common.HintLine(submitKey, nextKey, cancelKey)))
	b.WriteString("\n")
	return b.String()
}
