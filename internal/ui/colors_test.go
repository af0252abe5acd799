package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestApplyPreferences_DarkModeSelectsPalette(t *testing.T) {
	t.Cleanup(func() { ApplyPreferences(Preferences{}) })

	ApplyPreferences(Preferences{DarkMode: true})
	assert.Equal(t, ThemeFor(true), ActivePalette.Name)
	assert.Equal(t, PaletteByName(ThemeFor(true)).Primary, Primary)

	ApplyPreferences(Preferences{DarkMode: false})
	assert.Equal(t, ThemeFor(false), ActivePalette.Name)
	assert.Equal(t, PaletteByName(ThemeFor(false)).Primary, Primary)
}

func TestApplyPreferences_NoColor(t *testing.T) {
	t.Cleanup(func() { ApplyPreferences(Preferences{}) })

	ApplyPreferences(Preferences{DarkMode: true, NoColor: true})
	assert.True(t, ActivePalette.Disabled)
	assert.Equal(t, lipgloss.Color(""), Primary)
	assert.NotNil(t, HuhTheme())
}

func TestPaletteByName_UnknownFallsBackToLight(t *testing.T) {
	assert.Equal(t, DefaultPalette(), PaletteByName("neon"))
	assert.ElementsMatch(t, []string{"dusk", "daylight", "mono"}, ThemeNames())
}

func TestToggle(t *testing.T) {
	assert.Contains(t, Toggle(true), "on")
	assert.Contains(t, Toggle(false), "off")
}
