package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iiroan/prefsctl/internal/config"
	"github.com/iiroan/prefsctl/internal/prefs"
	"github.com/iiroan/prefsctl/internal/settings"
	"github.com/iiroan/prefsctl/internal/ui"
)

var (
	verbose   bool
	quiet     bool
	noColor   bool
	cfgFile   string
	prefsFile string
	logger    *log.Logger
	cfg       *config.Config

	keychainInUse bool
)

var rootCmd = &cobra.Command{
	Use:   "prefsctl",
	Short: "View and change user preferences",
	Long: `prefsctl manages the dark mode, notification and language preferences
of the current user, and signs the user in and out of this device.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		setupLogger()

		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if err := loadConfig(); err != nil {
			return err
		}

		applyUISettings(false)
		setupLogger()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runSettings(cmd, args)
		}
		return cmd.Help()
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/prefsctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&prefsFile, "prefs", "", "Preferences file (overrides prefs_path)")

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err == nil {
			err = cfg.ApplyEnv()
		}
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	if prefsFile != "" {
		cfg.PrefsPath = prefsFile
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// openSettings opens the preferences file and builds the state holder on top of it.
func openSettings() (*prefs.FileStore, *settings.StateHolder, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	store, err := prefs.Open(cfg.PrefsPath,
		prefs.WithVault(resolveVault()),
		prefs.WithDefaultLanguage(cfg.DefaultLanguage),
		prefs.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("preferences opened", "path", store.Path())

	holder := settings.New(store, logger)
	applyUISettings(holder.DarkMode().Get())
	return store, holder, nil
}

// resolveVault returns the configured vault, falling back to a vault that
// stores nothing when the keychain cannot be reached.
func resolveVault() prefs.Vault {
	if cfg.Keyring.Disabled {
		keychainInUse = false
		return prefs.NopVault{}
	}
	if !prefs.KeyringAvailable(cfg.Keyring.Service) {
		logger.Warn("keychain unavailable, session credentials will not be stored", "service", cfg.Keyring.Service)
		keychainInUse = false
		return prefs.NopVault{}
	}
	keychainInUse = true
	return cfg.Vault()
}

func applyUISettings(darkMode bool) {
	dense := false
	noColorPref := noColor || os.Getenv("NO_COLOR") != ""
	if cfg != nil {
		dense = cfg.UI.Dense
		noColorPref = noColorPref || cfg.UI.NoColor
	}
	ui.ApplyPreferences(ui.Preferences{
		DarkMode: darkMode,
		Dense:    dense,
		NoColor:  noColorPref,
	})
}

func setupLogger() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	styles := log.DefaultStyles()
	if !noColor && os.Getenv("NO_COLOR") == "" {
		styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
			SetString("DEBUG").
			Foreground(ui.Muted).
			Bold(true)
		styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
			SetString("INFO").
			Foreground(ui.Primary).
			Bold(true)
		styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
			SetString("WARN").
			Foreground(ui.Warning).
			Bold(true)
		styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
			SetString("ERROR").
			Foreground(ui.Error).
			Bold(true)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	logger.SetStyles(styles)
}

func accountName(store *prefs.FileStore) string {
	user, ok := store.CurrentUser()
	if !ok {
		return ""
	}
	if user.DisplayName != "" {
		return fmt.Sprintf("%s (%s)", user.DisplayName, user.AccountID)
	}
	return user.AccountID
}
