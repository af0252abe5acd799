package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iiroan/prefsctl/internal/prefs"
	"github.com/iiroan/prefsctl/internal/settings"
	"github.com/iiroan/prefsctl/internal/ui"
)

var setCmd = &cobra.Command{
	Use:   "set KEY=VALUE [KEY=VALUE...] | set KEY VALUE",
	Short: "Change one or more settings",
	Long: `Change settings without opening the settings screen.

Keys: isDarkMode (dark-mode), notificationsEnabled (notifications), language.
Booleans accept true/false, 1/0, t/f. Languages are stored as given.`,
	Example: `  prefsctl set dark-mode=true language=fr
  prefsctl set notifications false`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

var settingAliases = map[string]string{
	"isdarkmode":           prefs.KeyDarkMode,
	"dark-mode":            prefs.KeyDarkMode,
	"darkmode":             prefs.KeyDarkMode,
	"notificationsenabled": prefs.KeyNotificationsEnabled,
	"notifications":        prefs.KeyNotificationsEnabled,
	"language":             prefs.KeyLanguage,
	"lang":                 prefs.KeyLanguage,
}

// settingChange is one validated setter call.
type settingChange struct {
	key     string
	boolVal bool
	strVal  string
}

func resolveSettingKey(name string) (string, error) {
	key, ok := settingAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", name)
	}
	return key, nil
}

// parseSetArgs validates every argument before anything is written.
func parseSetArgs(args []string) ([]settingChange, error) {
	if len(args) == 2 && !strings.Contains(args[0], "=") && !strings.Contains(args[1], "=") {
		args = []string{args[0] + "=" + args[1]}
	}

	pairs, err := parseKeyValuePairs(args)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no settings given")
	}

	changes := make([]settingChange, 0, len(pairs))
	seen := make(map[string]bool)
	for _, pair := range pairs {
		key, err := resolveSettingKey(pair.key)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, fmt.Errorf("setting %s given more than once", key)
		}
		seen[key] = true

		change := settingChange{key: key}
		switch key {
		case prefs.KeyDarkMode, prefs.KeyNotificationsEnabled:
			b, err := strconv.ParseBool(strings.TrimSpace(pair.value))
			if err != nil {
				return nil, fmt.Errorf("invalid value %q for %s: expected a boolean", pair.value, key)
			}
			change.boolVal = b
		case prefs.KeyLanguage:
			change.strVal = pair.value
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func applyChanges(holder *settings.StateHolder, changes []settingChange) {
	for _, c := range changes {
		switch c.key {
		case prefs.KeyDarkMode:
			holder.SetDarkMode(c.boolVal)
		case prefs.KeyNotificationsEnabled:
			holder.SetNotificationsEnabled(c.boolVal)
		case prefs.KeyLanguage:
			holder.SetLanguage(c.strVal)
		}
	}
}

var errNotSaved = errors.New("settings were not saved")

// verifySaved compares the store with the holder for keys. The holder
// publishes even when a write fails, while the store keeps its last
// saved value.
func verifySaved(store prefs.Store, snapshot settings.Snapshot, keys []string) error {
	var unsaved []string
	for _, key := range keys {
		var saved bool
		switch key {
		case prefs.KeyDarkMode:
			saved = store.Bool(key) == snapshot.DarkMode
		case prefs.KeyNotificationsEnabled:
			saved = store.Bool(key) == snapshot.NotificationsEnabled
		case prefs.KeyLanguage:
			saved = store.String(key) == snapshot.Language
		}
		if !saved {
			unsaved = append(unsaved, key)
		}
	}
	if len(unsaved) > 0 {
		return fmt.Errorf("%w: %s", errNotSaved, strings.Join(unsaved, ", "))
	}
	return nil
}

func changedKeys(changes []settingChange) []string {
	keys := make([]string, 0, len(changes))
	for _, c := range changes {
		keys = append(keys, c.key)
	}
	return keys
}

func runSet(cmd *cobra.Command, args []string) error {
	changes, err := parseSetArgs(args)
	if err != nil {
		return err
	}

	store, holder, err := openSettings()
	if err != nil {
		return err
	}

	applyChanges(holder, changes)
	if err := verifySaved(store, holder.Snapshot(), changedKeys(changes)); err != nil {
		return err
	}

	if !quiet {
		printSettings(holder.Snapshot(), store)
		fmt.Println(ui.MutedStyle.Render("saved to " + store.Path()))
	}
	return nil
}
