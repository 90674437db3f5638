// Package tui implements the interactive profile setup wizard.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hearth-home/hearth-ctl/internal/config"
)

// setupStep identifies the current step.
type setupStep int

const (
	stepHostname setupStep = iota
	stepTimezone
	stepAuthorizedKey
	stepServices
	stepPasswords
	stepConfirm
)

// serviceField identifies a toggle in the services step.
type serviceField int

const (
	svcDNSFilter serviceField = iota
	svcVoiceChat
	svcFieldCount
)

// passwordField identifies a field in the passwords step.
type passwordField int

const (
	pwAdmin passwordField = iota
	pwDNSFilter
	pwVoiceChat
	pwFieldCount
)

// setupStyles
var (
	setupTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	setupStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	setupActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	setupLabelStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	setupValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	setupDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	setupSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("170"))
)

// setupModel drives the multi-step profile wizard.
type setupModel struct {
	step     setupStep
	defaults *config.Profile

	hostnameInput textinput.Model
	timezoneInput textinput.Model
	keyInput      textinput.Model

	svcCursor        serviceField
	dnsFilterEnabled bool
	voiceChatEnabled bool

	pwCursor      passwordField
	adminPwInput  textinput.Model
	dnsPwInput    textinput.Model
	voicePwInput  textinput.Model
}

func newSetupModel(defaults *config.Profile) setupModel {
	hi := textinput.New()
	hi.Placeholder = defaults.Hostname
	hi.SetValue(defaults.Hostname)
	hi.Focus()
	hi.CharLimit = 63
	hi.Width = 40

	ti := textinput.New()
	ti.Placeholder = defaults.Timezone
	ti.SetValue(defaults.Timezone)
	ti.CharLimit = 64
	ti.Width = 40

	ki := textinput.New()
	ki.Placeholder = "ssh-ed25519 AAAA... you@laptop"
	ki.CharLimit = 1024
	ki.Width = 70

	api := textinput.New()
	api.Placeholder = "initial admin password"
	api.EchoMode = textinput.EchoPassword
	api.CharLimit = 128
	api.Width = 40

	dpi := textinput.New()
	dpi.Placeholder = "DNS filter admin password"
	dpi.EchoMode = textinput.EchoPassword
	dpi.CharLimit = 128
	dpi.Width = 40

	vpi := textinput.New()
	vpi.Placeholder = "voice server password"
	vpi.EchoMode = textinput.EchoPassword
	vpi.CharLimit = 128
	vpi.Width = 40

	return setupModel{
		step:             stepHostname,
		defaults:         defaults,
		hostnameInput:    hi,
		timezoneInput:    ti,
		keyInput:         ki,
		dnsFilterEnabled: defaults.DNSFilter.Enabled,
		voiceChatEnabled: defaults.VoiceChat.Enabled,
		adminPwInput:     api,
		dnsPwInput:       dpi,
		voicePwInput:     vpi,
	}
}

func (m *setupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, profile, cmd).
// done=true with non-nil profile means the wizard completed successfully.
// done=true with nil profile means the wizard was cancelled.
func (m *setupModel) Update(msg tea.Msg) (bool, *config.Profile, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return m.handleBack()
		}
	}

	switch m.step {
	case stepHostname:
		return m.updateHostname(msg)
	case stepTimezone:
		return m.updateTimezone(msg)
	case stepAuthorizedKey:
		return m.updateAuthorizedKey(msg)
	case stepServices:
		return m.updateServices(msg)
	case stepPasswords:
		return m.updatePasswords(msg)
	case stepConfirm:
		return m.updateConfirm(msg)
	}

	return false, nil, nil
}

func (m *setupModel) handleBack() (bool, *config.Profile, tea.Cmd) {
	switch m.step {
	case stepHostname:
		// Esc at first step cancels the wizard
		return true, nil, nil
	case stepTimezone:
		m.step = stepHostname
		m.timezoneInput.Blur()
		m.hostnameInput.Focus()
		return false, nil, textinput.Blink
	case stepAuthorizedKey:
		m.step = stepTimezone
		m.keyInput.Blur()
		m.timezoneInput.Focus()
		return false, nil, textinput.Blink
	case stepServices:
		m.step = stepAuthorizedKey
		m.keyInput.Focus()
		return false, nil, textinput.Blink
	case stepPasswords:
		m.step = stepServices
		m.blurPasswordInputs()
		return false, nil, nil
	case stepConfirm:
		m.step = stepPasswords
		return false, nil, m.focusCurrentPassword()
	}
	return false, nil, nil
}

func (m *setupModel) updateHostname(msg tea.Msg) (bool, *config.Profile, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.hostnameInput.Value())
		if name == "" {
			return false, nil, nil
		}
		m.step = stepTimezone
		m.hostnameInput.Blur()
		m.timezoneInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	m.hostnameInput, cmd = m.hostnameInput.Update(msg)
	return false, nil, cmd
}

func (m *setupModel) updateTimezone(msg tea.Msg) (bool, *config.Profile, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		m.step = stepAuthorizedKey
		m.timezoneInput.Blur()
		m.keyInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	m.timezoneInput, cmd = m.timezoneInput.Update(msg)
	return false, nil, cmd
}

func (m *setupModel) updateAuthorizedKey(msg tea.Msg) (bool, *config.Profile, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		// Blank is allowed: the profile falls back to password bootstrap.
		m.step = stepServices
		m.keyInput.Blur()
		return false, nil, nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return false, nil, cmd
}

func (m *setupModel) updateServices(msg tea.Msg) (bool, *config.Profile, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.step = stepPasswords
			m.pwCursor = m.firstPasswordField()
			return false, nil, m.focusCurrentPassword()
		case "j", "down", "tab":
			m.svcCursor = (m.svcCursor + 1) % svcFieldCount
			return false, nil, nil
		case "k", "up":
			m.svcCursor = (m.svcCursor - 1 + svcFieldCount) % svcFieldCount
			return false, nil, nil
		case " ":
			switch m.svcCursor {
			case svcDNSFilter:
				m.dnsFilterEnabled = !m.dnsFilterEnabled
			case svcVoiceChat:
				m.voiceChatEnabled = !m.voiceChatEnabled
			}
			return false, nil, nil
		}
	}
	return false, nil, nil
}

// firstPasswordField returns the first password field relevant to the
// current selections.
func (m *setupModel) firstPasswordField() passwordField {
	if m.needsAdminPassword() {
		return pwAdmin
	}
	if m.dnsFilterEnabled {
		return pwDNSFilter
	}
	if m.voiceChatEnabled {
		return pwVoiceChat
	}
	return pwAdmin
}

func (m *setupModel) needsAdminPassword() bool {
	return strings.TrimSpace(m.keyInput.Value()) == ""
}

func (m *setupModel) fieldRelevant(f passwordField) bool {
	switch f {
	case pwAdmin:
		return m.needsAdminPassword()
	case pwDNSFilter:
		return m.dnsFilterEnabled
	case pwVoiceChat:
		return m.voiceChatEnabled
	}
	return false
}

func (m *setupModel) activePasswordInput() *textinput.Model {
	switch m.pwCursor {
	case pwAdmin:
		return &m.adminPwInput
	case pwDNSFilter:
		return &m.dnsPwInput
	case pwVoiceChat:
		return &m.voicePwInput
	}
	return nil
}

func (m *setupModel) blurPasswordInputs() {
	m.adminPwInput.Blur()
	m.dnsPwInput.Blur()
	m.voicePwInput.Blur()
}

func (m *setupModel) focusCurrentPassword() tea.Cmd {
	m.blurPasswordInputs()
	if ti := m.activePasswordInput(); ti != nil {
		ti.Focus()
		return textinput.Blink
	}
	return nil
}

func (m *setupModel) movePasswordCursor(delta int) {
	for i := 0; i < int(pwFieldCount); i++ {
		m.pwCursor = passwordField((int(m.pwCursor) + delta + int(pwFieldCount)) % int(pwFieldCount))
		if m.fieldRelevant(m.pwCursor) {
			return
		}
	}
}

func (m *setupModel) updatePasswords(msg tea.Msg) (bool, *config.Profile, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.blurPasswordInputs()
			m.step = stepConfirm
			return false, nil, nil
		case tea.KeyUp:
			m.movePasswordCursor(-1)
			return false, nil, m.focusCurrentPassword()
		case tea.KeyDown, tea.KeyTab:
			m.movePasswordCursor(1)
			return false, nil, m.focusCurrentPassword()
		}
	}

	if ti := m.activePasswordInput(); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return false, nil, cmd
	}
	return false, nil, nil
}

func (m *setupModel) updateConfirm(msg tea.Msg) (bool, *config.Profile, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, m.buildProfile(), nil
		case "n":
			// Restart the wizard
			fresh := newSetupModel(m.defaults)
			*m = fresh
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

// buildProfile assembles the profile from collected values, falling back to
// defaults for anything left blank.
func (m *setupModel) buildProfile() *config.Profile {
	p := config.DefaultProfile()

	if v := strings.TrimSpace(m.hostnameInput.Value()); v != "" {
		p.Hostname = v
	}
	if v := strings.TrimSpace(m.timezoneInput.Value()); v != "" {
		p.Timezone = v
	}

	if key := strings.TrimSpace(m.keyInput.Value()); key != "" {
		p.Admin.AuthorizedKeys = []string{key}
		p.Admin.InitialPassword = ""
	} else if pw := m.adminPwInput.Value(); pw != "" {
		p.Admin.InitialPassword = pw
	}

	p.DNSFilter.Enabled = m.dnsFilterEnabled
	if pw := m.dnsPwInput.Value(); pw != "" {
		p.DNSFilter.AdminPassword = pw
	}

	p.VoiceChat.Enabled = m.voiceChatEnabled
	if pw := m.voicePwInput.Value(); pw != "" {
		p.VoiceChat.ServerPassword = pw
	}

	return p
}

func (m *setupModel) View() string {
	var b strings.Builder

	b.WriteString(setupTitleStyle.Render("Hearth Host Setup"))
	b.WriteString("\n")
	b.WriteString(m.progressBar())
	b.WriteString("\n\n")

	switch m.step {
	case stepHostname:
		b.WriteString(setupLabelStyle.Render("Hostname:"))
		b.WriteString("\n")
		b.WriteString(m.hostnameInput.View())
		b.WriteString("\n\n")
		b.WriteString(setupDimStyle.Render("Lowercase DNS label for the Pi. Enter to continue."))
	case stepTimezone:
		b.WriteString(setupLabelStyle.Render("Timezone:"))
		b.WriteString("\n")
		b.WriteString(m.timezoneInput.View())
		b.WriteString("\n\n")
		b.WriteString(setupDimStyle.Render("IANA timezone name, e.g. Europe/Berlin."))
	case stepAuthorizedKey:
		b.WriteString(setupLabelStyle.Render("SSH public key:"))
		b.WriteString("\n")
		b.WriteString(m.keyInput.View())
		b.WriteString("\n\n")
		b.WriteString(setupDimStyle.Render("Leave blank to bootstrap with a password instead."))
	case stepServices:
		b.WriteString(setupLabelStyle.Render("Services:"))
		b.WriteString("\n\n")
		b.WriteString(m.renderToggle(svcDNSFilter, "DNS ad blocking", "AdGuard Home container answering LAN DNS"))
		b.WriteString("\n")
		b.WriteString(m.renderToggle(svcVoiceChat, "Voice chat", "Murmur (Mumble) server container"))
		b.WriteString("\n\n")
		b.WriteString(setupDimStyle.Render("Space to toggle, Enter to continue, Esc to go back."))
	case stepPasswords:
		b.WriteString(setupLabelStyle.Render("Credentials:"))
		b.WriteString("\n\n")
		if m.fieldRelevant(pwAdmin) {
			b.WriteString(m.renderPasswordInput(pwAdmin, "Admin password", &m.adminPwInput))
			b.WriteString("\n")
		}
		if m.fieldRelevant(pwDNSFilter) {
			b.WriteString(m.renderPasswordInput(pwDNSFilter, "DNS admin password", &m.dnsPwInput))
			b.WriteString("\n")
		}
		if m.fieldRelevant(pwVoiceChat) {
			b.WriteString(m.renderPasswordInput(pwVoiceChat, "Voice server password", &m.voicePwInput))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(setupDimStyle.Render("Blank fields keep the placeholder password. Enter to continue."))
	case stepConfirm:
		b.WriteString(setupLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "  Hostname:   %s\n", setupValueStyle.Render(strings.TrimSpace(m.hostnameInput.Value())))
		fmt.Fprintf(&b, "  Timezone:   %s\n", setupValueStyle.Render(strings.TrimSpace(m.timezoneInput.Value())))
		if key := strings.TrimSpace(m.keyInput.Value()); key != "" {
			fmt.Fprintf(&b, "  SSH key:    %s\n", setupValueStyle.Render(truncateKey(key)))
		} else {
			fmt.Fprintf(&b, "  SSH key:    %s\n", setupDimStyle.Render("(password bootstrap)"))
		}
		fmt.Fprintf(&b, "  DNS filter: %s\n", setupValueStyle.Render(onOff(m.dnsFilterEnabled)))
		fmt.Fprintf(&b, "  Voice chat: %s\n", setupValueStyle.Render(onOff(m.voiceChatEnabled)))
		b.WriteString("\n")
		b.WriteString(setupDimStyle.Render("Enter to save the profile, n to restart, Esc to go back."))
	}

	return b.String()
}

func (m *setupModel) progressBar() string {
	steps := []struct {
		num  int
		name string
	}{
		{1, "Host"},
		{2, "Timezone"},
		{3, "SSH"},
		{4, "Services"},
		{5, "Credentials"},
		{6, "Confirm"},
	}

	var parts []string
	currentStep := int(m.step) + 1
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", s.num, s.name)
		if s.num == currentStep {
			parts = append(parts, setupActiveStepStyle.Render(label))
		} else {
			parts = append(parts, setupStepStyle.Render(label))
		}
	}

	return strings.Join(parts, setupDimStyle.Render(" > "))
}

func (m *setupModel) renderToggle(field serviceField, name, desc string) string {
	cursor := " "
	if m.svcCursor == field {
		cursor = ">"
	}

	checked := " "
	switch field {
	case svcDNSFilter:
		if m.dnsFilterEnabled {
			checked = "x"
		}
	case svcVoiceChat:
		if m.voiceChatEnabled {
			checked = "x"
		}
	}

	line := fmt.Sprintf("  %s [%s] %s", cursor, checked, name)
	if m.svcCursor == field {
		return setupSelectedStyle.Render(line) + "\n" + setupDimStyle.Render("      "+desc)
	}
	return line + "\n" + setupDimStyle.Render("      "+desc)
}

func (m *setupModel) renderPasswordInput(field passwordField, name string, ti *textinput.Model) string {
	cursor := " "
	if m.pwCursor == field {
		cursor = ">"
	}

	if m.pwCursor == field {
		line := fmt.Sprintf("  %s %s: %s", cursor, name, ti.View())
		return setupSelectedStyle.Render(line)
	}
	if ti.Value() == "" {
		return fmt.Sprintf("  %s %s: %s", cursor, name, setupDimStyle.Render("(placeholder)"))
	}
	return fmt.Sprintf("  %s %s: %s", cursor, name, strings.Repeat("*", len(ti.Value())))
}

func truncateKey(key string) string {
	if len(key) <= 40 {
		return key
	}
	return key[:37] + "..."
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
