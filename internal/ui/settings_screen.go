package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/iiroan/prefsctl/internal/observable"
	"github.com/iiroan/prefsctl/internal/settings"
	"github.com/iiroan/prefsctl/internal/version"
)

// SettingsController is what the settings screen observes and drives.
// *settings.StateHolder implements it.
type SettingsController interface {
	DarkMode() observable.Observable[bool]
	NotificationsEnabled() observable.Observable[bool]
	Language() observable.Observable[string]
	SetDarkMode(enabled bool)
	SetNotificationsEnabled(enabled bool)
	SetLanguage(language string)
	Logout()
}

// ScreenOptions configures RunSettingsScreen.
type ScreenOptions struct {
	// Languages cycled by the language row.
	Languages []string
	// Account reports the signed-in account, or "" when signed out.
	Account func() string
}

const (
	rowDarkMode = iota
	rowNotifications
	rowLanguage
	rowLogout
	rowCount
)

type screenAction int

const (
	actionNone screenAction = iota
	actionUp
	actionDown
	actionActivate
	actionToggleDarkMode
	actionToggleNotifications
	actionNextLanguage
	actionLogout
	actionQuit
)

type settingsKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Activate      key.Binding
	DarkMode      key.Binding
	Notifications key.Binding
	Language      key.Binding
	Logout        key.Binding
	Quit          key.Binding
}

func newSettingsKeyMap() settingsKeyMap {
	return settingsKeyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Activate:      key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "change")),
		DarkMode:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
		Language:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "language")),
		Logout:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		Quit:          key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
	}
}

func (k settingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.DarkMode, k.Notifications, k.Language, k.Logout, k.Quit}
}

func (k settingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Activate}, {k.DarkMode, k.Notifications, k.Language}, {k.Logout, k.Quit}}
}

func (k settingsKeyMap) actionFor(pressed string) screenAction {
	switch {
	case matches(k.Up, pressed):
		return actionUp
	case matches(k.Down, pressed):
		return actionDown
	case matches(k.Activate, pressed):
		return actionActivate
	case matches(k.DarkMode, pressed):
		return actionToggleDarkMode
	case matches(k.Notifications, pressed):
		return actionToggleNotifications
	case matches(k.Language, pressed):
		return actionNextLanguage
	case matches(k.Logout, pressed):
		return actionLogout
	case matches(k.Quit, pressed):
		return actionQuit
	}
	return actionNone
}

func matches(b key.Binding, pressed string) bool {
	for _, k := range b.Keys() {
		if k == pressed {
			return true
		}
	}
	return false
}

type darkModeMsg bool

type notificationsMsg bool

type languageMsg string

func listen[T any](ctx context.Context, ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-ch:
			return wrap(v)
		case <-ctx.Done():
			return nil
		}
	}
}

type settingsModel struct {
	ctx        context.Context
	controller SettingsController
	opts       ScreenOptions

	darkCh  <-chan bool
	notifCh <-chan bool
	langCh  <-chan string

	state    settings.Snapshot
	account  string
	cursor   int
	status   string
	quitting bool

	help help.Model
	keys settingsKeyMap

	width  int
	height int

	cliVersion string
}

func newSettingsModel(ctx context.Context, c SettingsController, opts ScreenOptions) settingsModel {
	helpModel := help.New()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(Accent))).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(Muted)))
	helpModel.Styles.ShortKey = keyStyle
	helpModel.Styles.ShortDesc = hintStyle
	helpModel.Styles.FullKey = keyStyle
	helpModel.Styles.FullDesc = hintStyle
	helpModel.Styles.Ellipsis = hintStyle

	m := settingsModel{
		ctx:        ctx,
		controller: c,
		opts:       opts,
		darkCh:     c.DarkMode().Watch(ctx),
		notifCh:    c.NotificationsEnabled().Watch(ctx),
		langCh:     c.Language().Watch(ctx),
		state: settings.Snapshot{
			DarkMode:             c.DarkMode().Get(),
			NotificationsEnabled: c.NotificationsEnabled().Get(),
			Language:             c.Language().Get(),
		},
		help:       helpModel,
		keys:       newSettingsKeyMap(),
		cliVersion: version.Get().Short(),
	}
	m.account = m.currentAccount()
	return m
}

func (m settingsModel) currentAccount() string {
	if m.opts.Account == nil {
		return ""
	}
	return m.opts.Account()
}

func (m settingsModel) listenDarkMode() tea.Cmd {
	return listen(m.ctx, m.darkCh, func(v bool) tea.Msg { return darkModeMsg(v) })
}

func (m settingsModel) listenNotifications() tea.Cmd {
	return listen(m.ctx, m.notifCh, func(v bool) tea.Msg { return notificationsMsg(v) })
}

func (m settingsModel) listenLanguage() tea.Cmd {
	return listen(m.ctx, m.langCh, func(v string) tea.Msg { return languageMsg(v) })
}

func (m settingsModel) Init() tea.Cmd {
	return tea.Batch(m.listenDarkMode(), m.listenNotifications(), m.listenLanguage())
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case darkModeMsg:
		m.state.DarkMode = bool(msg)
		prefs := CurrentPreferences
		prefs.DarkMode = m.state.DarkMode
		ApplyPreferences(prefs)
		return m, m.listenDarkMode()
	case notificationsMsg:
		m.state.NotificationsEnabled = bool(msg)
		return m, m.listenNotifications()
	case languageMsg:
		m.state.Language = string(msg)
		return m, m.listenLanguage()
	case tea.KeyPressMsg:
		return m.apply(m.keys.actionFor(msg.String()))
	}
	return m, nil
}

// apply drives the controller. State changes only arrive back through
// the observables.
func (m settingsModel) apply(action screenAction) (settingsModel, tea.Cmd) {
	switch action {
	case actionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case actionDown:
		if m.cursor < rowCount-1 {
			m.cursor++
		}
	case actionActivate:
		switch m.cursor {
		case rowDarkMode:
			return m.apply(actionToggleDarkMode)
		case rowNotifications:
			return m.apply(actionToggleNotifications)
		case rowLanguage:
			return m.apply(actionNextLanguage)
		case rowLogout:
			return m.apply(actionLogout)
		}
	case actionToggleDarkMode:
		m.cursor = rowDarkMode
		m.controller.SetDarkMode(!m.controller.DarkMode().Get())
		m.status = ""
	case actionToggleNotifications:
		m.cursor = rowNotifications
		m.controller.SetNotificationsEnabled(!m.controller.NotificationsEnabled().Get())
		m.status = ""
	case actionNextLanguage:
		m.cursor = rowLanguage
		m.controller.SetLanguage(NextLanguage(m.controller.Language().Get(), m.opts.Languages))
		m.status = ""
	case actionLogout:
		m.cursor = rowLogout
		m.controller.Logout()
		m.account = m.currentAccount()
		if m.account == "" {
			m.status = "Signed out. Settings were kept."
		} else {
			m.status = "Sign out failed, see the log for details."
		}
	case actionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// NextLanguage returns the entry after current in languages, wrapping
// around. An unknown current language moves to the first entry.
func NextLanguage(current string, languages []string) string {
	if len(languages) == 0 {
		return current
	}
	for i, lang := range languages {
		if lang == current {
			return languages[(i+1)%len(languages)]
		}
	}
	return languages[0]
}

func (m settingsModel) View() tea.View {
	if m.quitting {
		return tea.View{}
	}

	width := m.width
	if width <= 0 {
		width = terminalWidth()
	}

	v := tea.NewView(Frame("SETTINGS", "Changes are saved as you make them.", m.renderBody(width), m.help.View(m.keys)))
	v.AltScreen = true
	return v
}

func (m settingsModel) renderBody(width int) string {
	inner := max(20, width-4)

	rows := []struct {
		label string
		value string
	}{
		{"Dark mode", Toggle(m.state.DarkMode)},
		{"Notifications", Toggle(m.state.NotificationsEnabled)},
		{"Language", PrimaryStyle().Render(displayLanguage(m.state.Language))},
		{"Log out", MutedStyle.Render("clear account data on this device")},
	}

	lines := make([]string, 0, len(rows)+6)
	for i, row := range rows {
		prefix := "  "
		label := fmt.Sprintf("%-14s", row.label)
		if i == m.cursor {
			prefix = "> "
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(string(Primary))).Bold(true).Render(label)
		}
		lines = append(lines, ansi.Truncate(prefix+label+" "+row.value, inner, "..."))
	}

	account := m.account
	if account == "" {
		account = "not signed in"
	}
	lines = append(lines,
		"",
		MutedStyle.Render(ansi.Truncate("account: "+account, inner, "...")),
		MutedStyle.Render("version: "+m.cliVersion),
	)
	if m.status != "" {
		lines = append(lines, "", HintStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

func displayLanguage(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return "(none)"
	}
	return lang
}

// RunSettingsScreen shows the interactive settings screen until the user quits.
func RunSettingsScreen(ctx context.Context, c SettingsController, opts ScreenOptions) error {
	if !IsInteractiveTerminal() {
		return ErrNonInteractive
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newSettingsModel(ctx, c, opts))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("settings screen: %w", err)
	}
	return nil
}
