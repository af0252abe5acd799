// Package prefs persists user preferences and user-specific session data.
package prefs

import "errors"

// Keys of the settings persisted by the settings screen.
const (
	KeyDarkMode             = "isDarkMode"
	KeyNotificationsEnabled = "notificationsEnabled"
	KeyLanguage             = "language"
)

// DefaultLanguage is returned for the language key when nothing is stored.
const DefaultLanguage = "en"

var (
	// ErrNoCredential is returned when no session credential is stored.
	ErrNoCredential = errors.New("no stored credential")
	// ErrInvalidSignIn wraps sign-in request validation failures.
	ErrInvalidSignIn = errors.New("invalid sign-in request")
)

// Store is a key-value boundary for small user-configurable settings.
//
// Reads never fail: a missing or mistyped value yields the type default.
type Store interface {
	Bool(key string) bool
	SetBool(key string, value bool) error
	String(key string) string
	SetString(key string, value string) error
	// ClearUserData removes user-specific data. Settings are kept.
	ClearUserData() error
}
