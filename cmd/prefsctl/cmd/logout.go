package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/prefsctl/internal/prefs"
	"github.com/iiroan/prefsctl/internal/settings"
	"github.com/iiroan/prefsctl/internal/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear account data on this device (settings are kept)",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var errStillSignedIn = errors.New("user data could not be cleared")

func runLogout(cmd *cobra.Command, args []string) error {
	store, holder, err := openSettings()
	if err != nil {
		return err
	}

	if _, ok := store.CurrentUser(); !ok {
		fmt.Println(ui.MutedStyle.Render("Not signed in"))
		return nil
	}

	if err := logoutWithSpinner(store, holder); err != nil {
		return err
	}
	fmt.Println(ui.SuccessBox.Render("Signed out. Settings were kept."))
	return nil
}

// logoutWithSpinner runs the holder's logout and reports whether the
// session is actually gone, since Logout itself reports nothing.
func logoutWithSpinner(store *prefs.FileStore, holder *settings.StateHolder) error {
	return ui.RunWithSpinner("Signing out", func() error {
		holder.Logout()
		if _, ok := store.CurrentUser(); ok {
			return errStillSignedIn
		}
		return nil
	})
}
