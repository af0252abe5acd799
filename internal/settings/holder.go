// Package settings holds the observable state behind the settings screen.
//
// A StateHolder mirrors three preferences (dark mode, notifications,
// language). Setters write through to the preference store before the
// new value is published to observers.
package settings

import (
	"github.com/charmbracelet/log"

	"github.com/iiroan/prefsctl/internal/observable"
	"github.com/iiroan/prefsctl/internal/prefs"
)

// Snapshot is a point-in-time copy of the three settings.
type Snapshot struct {
	DarkMode             bool   `yaml:"isDarkMode" json:"isDarkMode"`
	NotificationsEnabled bool   `yaml:"notificationsEnabled" json:"notificationsEnabled"`
	Language             string `yaml:"language" json:"language"`
}

// StateHolder bridges a UI and a prefs.Store.
type StateHolder struct {
	store  prefs.Store
	logger *log.Logger

	darkMode      *observable.Value[bool]
	notifications *observable.Value[bool]
	language      *observable.Value[string]
}

// New reads each setting from store once and seeds the observables.
func New(store prefs.Store, logger *log.Logger) *StateHolder {
	if logger == nil {
		logger = log.Default()
	}
	return &StateHolder{
		store:         store,
		logger:        logger.WithPrefix("settings"),
		darkMode:      observable.New(store.Bool(prefs.KeyDarkMode)),
		notifications: observable.New(store.Bool(prefs.KeyNotificationsEnabled)),
		language:      observable.New(store.String(prefs.KeyLanguage)),
	}
}

// DarkMode observes whether the dark theme is active.
func (h *StateHolder) DarkMode() observable.Observable[bool] { return h.darkMode }

// NotificationsEnabled observes whether notifications are enabled.
func (h *StateHolder) NotificationsEnabled() observable.Observable[bool] { return h.notifications }

// Language observes the selected UI language.
func (h *StateHolder) Language() observable.Observable[string] { return h.language }

// Snapshot returns the current values.
func (h *StateHolder) Snapshot() Snapshot {
	return Snapshot{
		DarkMode:             h.darkMode.Get(),
		NotificationsEnabled: h.notifications.Get(),
		Language:             h.language.Get(),
	}
}

// SetDarkMode persists enabled, then publishes it.
func (h *StateHolder) SetDarkMode(enabled bool) {
	if err := h.store.SetBool(prefs.KeyDarkMode, enabled); err != nil {
		h.logger.Warn("could not persist setting", "key", prefs.KeyDarkMode, "error", err)
	}
	h.darkMode.Set(enabled)
}

// SetNotificationsEnabled persists enabled, then publishes it.
func (h *StateHolder) SetNotificationsEnabled(enabled bool) {
	if err := h.store.SetBool(prefs.KeyNotificationsEnabled, enabled); err != nil {
		h.logger.Warn("could not persist setting", "key", prefs.KeyNotificationsEnabled, "error", err)
	}
	h.notifications.Set(enabled)
}

// SetLanguage persists language as-is, then publishes it. Any string is accepted.
func (h *StateHolder) SetLanguage(language string) {
	if err := h.store.SetString(prefs.KeyLanguage, language); err != nil {
		h.logger.Warn("could not persist setting", "key", prefs.KeyLanguage, "error", err)
	}
	h.language.Set(language)
}

// Logout clears stored user data. The three settings are left alone.
func (h *StateHolder) Logout() {
	if err := h.store.ClearUserData(); err != nil {
		h.logger.Error("could not clear user data", "error", err)
		return
	}
	h.logger.Debug("user data cleared")
}
