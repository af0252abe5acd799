package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/prefsctl/internal/prefs"
	"github.com/iiroan/prefsctl/internal/settings"
	"github.com/iiroan/prefsctl/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Open the interactive settings screen",
	RunE:  runSettings,
}

var useForm bool

func init() {
	settingsCmd.Flags().BoolVar(&useForm, "form", false, "Use a step-by-step form instead of the full-screen view")
}

func runSettings(cmd *cobra.Command, args []string) error {
	store, holder, err := openSettings()
	if err != nil {
		return err
	}

	if useForm {
		return runSettingsForm(store, holder)
	}

	err = ui.RunSettingsScreen(cmd.Context(), holder, ui.ScreenOptions{
		Languages: cfg.LanguageOptions(holder.Language().Get()),
		Account:   func() string { return accountName(store) },
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ui.ErrNonInteractive):
		printSettings(holder.Snapshot(), store)
		return nil
	default:
		logger.Warn("settings screen unavailable, falling back to form", "error", err)
		return runSettingsForm(store, holder)
	}
}

func runSettingsForm(store *prefs.FileStore, holder *settings.StateHolder) error {
	current := holder.Snapshot()

	darkMode := current.DarkMode
	notifications := current.NotificationsEnabled
	language := current.Language
	customLanguage := ""
	logout := false

	languageOptions := make([]huh.Option[string], 0)
	for _, lang := range cfg.LanguageOptions(current.Language) {
		languageOptions = append(languageOptions, huh.NewOption(lang, lang))
	}
	languageOptions = append(languageOptions, huh.NewOption("Other...", otherLanguage))

	ui.StartScreen("SETTINGS", "Changes are saved when the form is submitted")

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewConfirm().
				Title("Dark Mode").
				Description("Use the dark color theme").
				Value(&darkMode),
			huh.NewConfirm().
				Title("Notifications").
				Description("Allow notifications on this device").
				Value(&notifications),
			huh.NewSelect[string]().
				Title("Language").
				Description("Language used by the interface").
				Options(languageOptions...).
				Value(&language),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Language Code").
				Description("Any language identifier, e.g. pt-BR").
				Value(&customLanguage),
		).WithHideFunc(func() bool { return language != otherLanguage }),
	}
	if _, signedIn := store.CurrentUser(); signedIn {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Log Out").
				Description("Sign out of "+accountName(store)+" and clear account data").
				Affirmative("Log out").
				Negative("Stay signed in").
				Value(&logout),
		))
	}

	form := huh.NewForm(groups...).WithTheme(ui.HuhTheme()).WithKeyMap(newHuhEscBackKeyMap())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	if language == otherLanguage {
		language = strings.TrimSpace(customLanguage)
	}

	var changed []string
	if darkMode != current.DarkMode {
		holder.SetDarkMode(darkMode)
		changed = append(changed, prefs.KeyDarkMode)
	}
	if notifications != current.NotificationsEnabled {
		holder.SetNotificationsEnabled(notifications)
		changed = append(changed, prefs.KeyNotificationsEnabled)
	}
	if language != current.Language {
		holder.SetLanguage(language)
		changed = append(changed, prefs.KeyLanguage)
	}
	if err := verifySaved(store, holder.Snapshot(), changed); err != nil {
		return err
	}

	if logout {
		if err := logoutWithSpinner(store, holder); err != nil {
			return err
		}
	}

	if len(changed) == 0 && !logout {
		fmt.Println(ui.MutedStyle.Render("No changes"))
		return nil
	}

	fmt.Println(ui.SuccessBox.Render("Settings saved to " + store.Path()))
	return nil
}

const otherLanguage = "__other__"

func printSettings(s settings.Snapshot, store *prefs.FileStore) {
	fmt.Printf("%-22s %t\n", prefs.KeyDarkMode, s.DarkMode)
	fmt.Printf("%-22s %t\n", prefs.KeyNotificationsEnabled, s.NotificationsEnabled)
	fmt.Printf("%-22s %s\n", prefs.KeyLanguage, s.Language)

	account := accountName(store)
	if account == "" {
		account = "(signed out)"
	}
	fmt.Printf("%-22s %s\n", "account", account)
}
