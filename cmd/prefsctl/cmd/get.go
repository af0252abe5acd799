package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/prefsctl/internal/prefs"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Show current settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Print settings as JSON")
}

func runGet(cmd *cobra.Command, args []string) error {
	store, holder, err := openSettings()
	if err != nil {
		return err
	}
	snapshot := holder.Snapshot()

	if len(args) == 1 {
		key, err := resolveSettingKey(args[0])
		if err != nil {
			return err
		}
		switch key {
		case prefs.KeyDarkMode:
			fmt.Println(snapshot.DarkMode)
		case prefs.KeyNotificationsEnabled:
			fmt.Println(snapshot.NotificationsEnabled)
		case prefs.KeyLanguage:
			fmt.Println(snapshot.Language)
		}
		return nil
	}

	if getJSON {
		out := struct {
			Settings   any    `json:"settings"`
			Account    string `json:"account,omitempty"`
			Credential string `json:"credential"`
		}{Settings: snapshot, Account: accountName(store), Credential: credentialState(store)}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printSettings(snapshot, store)
	fmt.Printf("%-22s %s\n", "credential", credentialState(store))
	return nil
}

// credentialState reports whether the signed-in user has a stored session credential.
func credentialState(store *prefs.FileStore) string {
	if _, ok := store.CurrentUser(); !ok {
		return "none"
	}
	_, err := store.Credential()
	switch {
	case err == nil:
		return "stored"
	case errors.Is(err, prefs.ErrNoCredential):
		return "missing"
	default:
		logger.Debug("reading credential", "error", err)
		return "unavailable"
	}
}
