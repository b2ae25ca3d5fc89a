package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/pkg/models"
)

const (
	profileSaveFallbackMessage = "Unable to update profile. Please try again."
	profileSavedMessage        = "Profile updated successfully."
)

// profileSavedMsg carries the result of a profile save.
type profileSavedMsg struct {
	user *models.User
	err  error
}

// profileField indexes the editable inputs in form order.
type profileField int

const (
	fieldFirstName profileField = iota
	fieldLastName
	fieldPhone
	fieldStreet
	fieldCity
	fieldState
	fieldZipCode
	fieldCountry
	fieldCount
)

var profileFieldLabels = [fieldCount]string{
	"First name", "Last name", "Phone",
	"Street", "City", "State", "Zip code", "Country",
}

// profileModel is the profile screen: a read view with an inline edit
// form. The form mirrors the session's user into textinputs on open and
// sends the whole block back on save; email stays read-only.
type profileModel struct {
	opts Options

	inputs  [fieldCount]textinput.Model
	focus   profileField
	edit    bool
	saving  bool
	errText string
	okText  string
}

func newProfileModel(opts Options) profileModel {
	m := profileModel{opts: opts}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = profileFieldLabels[i]
		in.CharLimit = 64
		m.inputs[i] = in
	}
	return m
}

func (m profileModel) editing() bool { return m.edit }

// populate copies the current session user into the form inputs. Called
// on every navigation to the screen so stale edits never survive.
func (m *profileModel) populate() {
	m.edit = false
	m.saving = false
	m.errText = ""
	m.okText = ""

	user := m.opts.Session.User()
	if user == nil {
		return
	}
	m.inputs[fieldFirstName].SetValue(user.FirstName)
	m.inputs[fieldLastName].SetValue(user.LastName)
	m.inputs[fieldPhone].SetValue(user.Phone)
	m.inputs[fieldStreet].SetValue(user.Address.Street)
	m.inputs[fieldCity].SetValue(user.Address.City)
	m.inputs[fieldState].SetValue(user.Address.State)
	m.inputs[fieldZipCode].SetValue(user.Address.ZipCode)
	m.inputs[fieldCountry].SetValue(user.Address.Country)
}

func (m profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errText = api.BackendMessage(msg.err, profileSaveFallbackMessage)
			return m, nil
		}
		m.opts.Session.SetUser(msg.user)
		m.edit = false
		m.okText = profileSavedMessage
		return m, nil

	case tea.KeyMsg:
		if m.edit {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "e":
			m.edit = true
			m.okText = ""
			m.errText = ""
			m.focus = fieldFirstName
			return m, m.focusField(fieldFirstName)
		case "esc", "b":
			return m, navigate(RouteProducts)
		}
	}
	return m, nil
}

// updateForm handles keys while the edit form is open.
func (m profileModel) updateForm(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.populate()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.focusField((m.focus + 1) % fieldCount)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case tea.KeyEnter:
		if m.focus < fieldCount-1 {
			return m, m.focusField(m.focus + 1)
		}
		return m.save()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// focusField moves input focus, blurring the rest.
func (m *profileModel) focusField(field profileField) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		if profileField(i) == field {
			continue
		}
		m.inputs[i].Blur()
	}
	return m.inputs[field].Focus()
}

// save submits the form. The server echoes the updated profile, which
// replaces the session user wholesale on success.
func (m profileModel) save() (profileModel, tea.Cmd) {
	m.saving = true
	m.errText = ""

	update := models.ProfileUpdate{
		FirstName: strings.TrimSpace(m.inputs[fieldFirstName].Value()),
		LastName:  strings.TrimSpace(m.inputs[fieldLastName].Value()),
		Phone:     strings.TrimSpace(m.inputs[fieldPhone].Value()),
		Address: models.Address{
			Street:  strings.TrimSpace(m.inputs[fieldStreet].Value()),
			City:    strings.TrimSpace(m.inputs[fieldCity].Value()),
			State:   strings.TrimSpace(m.inputs[fieldState].Value()),
			ZipCode: strings.TrimSpace(m.inputs[fieldZipCode].Value()),
			Country: strings.TrimSpace(m.inputs[fieldCountry].Value()),
		},
	}
	client := m.opts.API
	return m, func() tea.Msg {
		user, err := client.UpdateProfile(context.Background(), update)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m profileModel) view() string {
	theme := m.opts.Theme
	user := m.opts.Session.User()

	if user == nil {
		return theme.Muted.Render("Loading your profile…")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your profile") + "\n\n")

	if m.edit {
		for i, in := range m.inputs {
			label := fmt.Sprintf("%-12s", profileFieldLabels[i])
			if profileField(i) == m.focus {
				b.WriteString(theme.Selected.Render("› "+label) + in.View() + "\n")
			} else {
				b.WriteString("  " + label + in.View() + "\n")
			}
		}
		b.WriteString("\n")
		if m.saving {
			b.WriteString(theme.Muted.Render("Saving…") + "\n")
		}
		if m.errText != "" {
			b.WriteString(theme.Error.Render(m.errText) + "\n")
		}
		b.WriteString(theme.Muted.Render("tab next field  enter on last field saves  esc cancel"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-12s%s\n", "Email", user.Email))
	b.WriteString(fmt.Sprintf("  %-12s%s %s\n", "Name", user.FirstName, user.LastName))
	if user.Phone != "" {
		b.WriteString(fmt.Sprintf("  %-12s%s\n", "Phone", user.Phone))
	}
	if addr := formatAddress(user.Address); addr != "" {
		b.WriteString(fmt.Sprintf("  %-12s%s\n", "Address", addr))
	}
	b.WriteString("\n")
	if m.okText != "" {
		b.WriteString(theme.Badge.Render(m.okText) + "\n")
	}
	if m.errText != "" {
		b.WriteString(theme.Error.Render(m.errText) + "\n")
	}
	b.WriteString(theme.Muted.Render("e edit  esc back"))
	return b.String()
}

// formatAddress joins the non-empty address parts in postal order.
func formatAddress(a models.Address) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
