package ui

// Preferences controls runtime UI settings.
type Preferences struct {
	DarkMode bool
	Dense    bool
	NoColor  bool
}

// CurrentPreferences holds the active UI preferences.
var CurrentPreferences = Preferences{}

// ApplyPreferences updates UI preferences and active palette.
func ApplyPreferences(p Preferences) {
	CurrentPreferences = p
	ApplyTheme(ThemeFor(p.DarkMode), p.NoColor)
}

// ApplyTheme switches the color palette for the TUI.
func ApplyTheme(theme string, noColor bool) {
	palette := PaletteByName(theme)
	palette.Disabled = noColor
	ApplyPalette(palette)
}
