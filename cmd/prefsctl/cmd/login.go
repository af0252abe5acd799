package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/prefsctl/internal/prefs"
	"github.com/iiroan/prefsctl/internal/ui"
)

var (
	loginName  string
	loginToken string
)

var loginCmd = &cobra.Command{
	Use:   "login ACCOUNT",
	Short: "Sign in and store the session credential in the OS keychain",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "Display name for the account")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Session token (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, _, err := openSettings()
	if err != nil {
		return err
	}

	token := loginToken
	if token == "" {
		if !ui.IsInteractiveTerminal() {
			return fmt.Errorf("--token is required in non-interactive mode")
		}
		err := huh.NewInput().
			Title("Session Token").
			Description("Stored in the OS keychain, never in the preferences file").
			EchoMode(huh.EchoModePassword).
			Value(&token).
			Validate(func(value string) error {
				if strings.TrimSpace(value) == "" {
					return fmt.Errorf("token is required")
				}
				return nil
			}).
			WithTheme(ui.HuhTheme()).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	var user prefs.User
	err = ui.RunWithSpinner("Signing in", func() error {
		var signErr error
		user, signErr = store.SignIn(prefs.SignInRequest{
			AccountID:   args[0],
			DisplayName: loginName,
			Token:       strings.TrimSpace(token),
		})
		return signErr
	})
	if err != nil {
		return err
	}

	if !keychainInUse {
		logger.Warn("keychain not in use, the session token was not stored")
	}
	fmt.Println(ui.SuccessBox.Render("Signed in as " + accountName(store) + "\nSession " + user.SessionID))
	return nil
}
