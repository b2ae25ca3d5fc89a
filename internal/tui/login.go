package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/pkg/models"
)

// loginFallbackMessage is shown when the backend reports a failure
// without a usable message.
const loginFallbackMessage = "Unable to login. Please check your credentials and try again."

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	token string
	user  *models.User
	err   error
}

// loginModel is the sign-in screen.
type loginModel struct {
	opts       Options
	email      textinput.Model
	password   textinput.Model
	onPassword bool
	submitting bool
	errText    string
}

func newLoginModel(opts Options) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginModel{opts: opts, email: email, password: password}
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m.onPassword = !m.onPassword
			if m.onPassword {
				m.email.Blur()
				return m, m.password.Focus()
			}
			m.password.Blur()
			return m, m.email.Focus()

		case tea.KeyEnter:
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			m.errText = ""
			return m, m.submit()
		}

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = api.BackendMessage(msg.err, loginFallbackMessage)
			return m, nil
		}
		// Persist failures keep the in-process session usable; nothing
		// worth blocking the login flow over.
		_ = m.opts.Session.Login(msg.token, msg.user)
		m.password.SetValue("")
		return m, tea.Batch(navigate(RouteProducts), func() tea.Msg {
			_ = m.opts.Cart.Reload(context.Background())
			return cartSyncedMsg{}
		})
	}

	var cmd tea.Cmd
	if m.onPassword {
		m.password, cmd = m.password.Update(msg)
	} else {
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

// submit authenticates against the backend.
func (m loginModel) submit() tea.Cmd {
	email, password := m.email.Value(), m.password.Value()
	client := m.opts.API
	return func() tea.Msg {
		token, user, err := client.Login(context.Background(), email, password)
		return loginResultMsg{token: token, user: user, err: err}
	}
}

func (m loginModel) view() string {
	theme := m.opts.Theme

	s := theme.Title.Render("Sign in") + "\n"
	s += theme.Subtitle.Render("Use the test credentials to sign in to the marketplace.") + "\n\n"
	s += "Email:    " + m.email.View() + "\n"
	s += "Password: " + m.password.View() + "\n\n"

	if m.errText != "" {
		s += theme.Error.Render(m.errText) + "\n"
	}
	if m.submitting {
		s += theme.Muted.Render("Signing in…") + "\n"
	} else {
		s += theme.Muted.Render("enter to sign in, tab to switch fields") + "\n"
	}
	s += theme.Muted.Render("Test user: john.doe@example.com / password123") + "\n"
	return s
}
