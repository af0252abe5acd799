package ui

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/prefsctl/internal/prefs"
	"github.com/iiroan/prefsctl/internal/settings"
)

func newTestScreen(t *testing.T) (settingsModel, *settings.StateHolder, *prefs.FileStore) {
	t.Helper()

	store, err := prefs.Open(filepath.Join(t.TempDir(), "preferences.yaml"))
	require.NoError(t, err)
	require.NoError(t, store.SetBool(prefs.KeyNotificationsEnabled, true))

	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	holder := settings.New(store, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := newSettingsModel(ctx, holder, ScreenOptions{
		Languages: []string{"en", "fr", "de"},
		Account: func() string {
			if u, ok := store.CurrentUser(); ok {
				return u.AccountID
			}
			return ""
		},
	})
	return m, holder, store
}

// drain feeds every pending observable message back into the model.
func drain(t *testing.T, m settingsModel) settingsModel {
	t.Helper()
	for {
		var msg tea.Msg
		select {
		case v := <-m.darkCh:
			msg = darkModeMsg(v)
		case v := <-m.notifCh:
			msg = notificationsMsg(v)
		case v := <-m.langCh:
			msg = languageMsg(v)
		default:
			return m
		}
		next, _ := m.Update(msg)
		m = next.(settingsModel)
	}
}

func TestNewSettingsModel_SeedsFromHolder(t *testing.T) {
	m, _, _ := newTestScreen(t)

	assert.Equal(t, settings.Snapshot{NotificationsEnabled: true, Language: "en"}, m.state)
	assert.Equal(t, "", m.account)
}

func TestApply_ToggleDarkModeShowsPublishedValue(t *testing.T) {
	m, holder, store := newTestScreen(t)
	t.Cleanup(func() { ApplyPreferences(Preferences{}) })
	m = drain(t, m)

	m, _ = m.apply(actionToggleDarkMode)
	assert.True(t, holder.DarkMode().Get())
	assert.True(t, store.Bool(prefs.KeyDarkMode))

	m = drain(t, m)
	assert.True(t, m.state.DarkMode)
	assert.Equal(t, ThemeFor(true), ActivePalette.Name)
}

func TestApply_ActivateFollowsCursor(t *testing.T) {
	m, holder, _ := newTestScreen(t)

	m, _ = m.apply(actionDown)
	m, _ = m.apply(actionActivate)
	assert.False(t, holder.NotificationsEnabled().Get())

	m, _ = m.apply(actionDown)
	m, _ = m.apply(actionActivate)
	assert.Equal(t, "fr", holder.Language().Get())

	m = drain(t, m)
	assert.Equal(t, settings.Snapshot{NotificationsEnabled: false, Language: "fr"}, m.state)
}

func TestApply_CursorStaysInBounds(t *testing.T) {
	m, _, _ := newTestScreen(t)

	m, _ = m.apply(actionUp)
	assert.Equal(t, rowDarkMode, m.cursor)

	for range 10 {
		m, _ = m.apply(actionDown)
	}
	assert.Equal(t, rowLogout, m.cursor)
}

func TestApply_LogoutKeepsSettings(t *testing.T) {
	m, holder, store := newTestScreen(t)
	_, err := store.SignIn(prefs.SignInRequest{AccountID: "ada", Token: "s3cret"})
	require.NoError(t, err)
	m.account = m.currentAccount()
	require.Equal(t, "ada", m.account)

	holder.SetLanguage("de")
	m = drain(t, m)

	m, _ = m.apply(actionLogout)

	assert.Equal(t, "", m.account)
	assert.Contains(t, m.status, "Signed out")
	assert.Equal(t, "de", holder.Language().Get())

	m = drain(t, m)
	assert.Equal(t, "de", m.state.Language)
}

func TestApply_Quit(t *testing.T) {
	m, _, _ := newTestScreen(t)

	m, cmd := m.apply(actionQuit)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestActionFor(t *testing.T) {
	keys := newSettingsKeyMap()

	cases := map[string]screenAction{
		"up":     actionUp,
		"k":      actionUp,
		"j":      actionDown,
		"enter":  actionActivate,
		"d":      actionToggleDarkMode,
		"n":      actionToggleNotifications,
		"l":      actionNextLanguage,
		"L":      actionLogout,
		"q":      actionQuit,
		"ctrl+c": actionQuit,
		"x":      actionNone,
	}
	for pressed, want := range cases {
		assert.Equal(t, want, keys.actionFor(pressed), pressed)
	}
}

func TestNextLanguage(t *testing.T) {
	langs := []string{"en", "fr", "de"}

	assert.Equal(t, "fr", NextLanguage("en", langs))
	assert.Equal(t, "en", NextLanguage("de", langs))
	assert.Equal(t, "en", NextLanguage("tlh", langs))
	assert.Equal(t, "tlh", NextLanguage("tlh", nil))
}

func TestRenderBody(t *testing.T) {
	m, _, _ := newTestScreen(t)
	m.state.Language = ""

	body := m.renderBody(100)
	assert.Contains(t, body, "Dark mode")
	assert.Contains(t, body, "Notifications")
	assert.Contains(t, body, "(none)")
	assert.Contains(t, body, "not signed in")
}
