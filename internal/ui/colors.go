package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines the TUI color palette.
type Palette struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	Disabled   bool
}

const (
	darkThemeName  = "dusk"
	lightThemeName = "daylight"
)

// ThemeNames returns supported palette names.
func ThemeNames() []string {
	return []string{darkThemeName, lightThemeName, "mono"}
}

// ThemeFor returns the palette name used for a dark mode setting.
func ThemeFor(darkMode bool) string {
	if darkMode {
		return darkThemeName
	}
	return lightThemeName
}

// PaletteByName returns a palette by theme name.
func PaletteByName(name string) Palette {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case darkThemeName:
		return Palette{
			Name:       darkThemeName,
			Primary:    lipgloss.Color("#22D3EE"),
			Secondary:  lipgloss.Color("#A78BFA"),
			Accent:     lipgloss.Color("#38BDF8"),
			Info:       lipgloss.Color("#60A5FA"),
			Success:    lipgloss.Color("#34D399"),
			Warning:    lipgloss.Color("#FBBF24"),
			Error:      lipgloss.Color("#F87171"),
			Muted:      lipgloss.Color("#94A3B8"),
			Background: lipgloss.Color("#0B1120"),
			Foreground: lipgloss.Color("#E2E8F0"),
			Border:     lipgloss.Color("#334155"),
			Highlight:  lipgloss.Color("#7DD3FC"),
		}
	case "mono":
		return Palette{
			Name:       "mono",
			Primary:    lipgloss.Color("#E2E8F0"),
			Secondary:  lipgloss.Color("#CBD5F5"),
			Accent:     lipgloss.Color("#94A3B8"),
			Info:       lipgloss.Color("#E2E8F0"),
			Success:    lipgloss.Color("#E2E8F0"),
			Warning:    lipgloss.Color("#94A3B8"),
			Error:      lipgloss.Color("#CBD5F5"),
			Muted:      lipgloss.Color("#94A3B8"),
			Background: lipgloss.Color("#0B1220"),
			Foreground: lipgloss.Color("#E2E8F0"),
			Border:     lipgloss.Color("#64748B"),
			Highlight:  lipgloss.Color("#F8FAFC"),
		}
	default:
		return Palette{
			Name:       lightThemeName,
			Primary:    lipgloss.Color("#7C3AED"),
			Secondary:  lipgloss.Color("#0891B2"),
			Accent:     lipgloss.Color("#2563EB"),
			Info:       lipgloss.Color("#0369A1"),
			Success:    lipgloss.Color("#059669"),
			Warning:    lipgloss.Color("#B45309"),
			Error:      lipgloss.Color("#DC2626"),
			Muted:      lipgloss.Color("#6B7280"),
			Background: lipgloss.Color("#FFFFFF"),
			Foreground: lipgloss.Color("#111827"),
			Border:     lipgloss.Color("#CBD5E1"),
			Highlight:  lipgloss.Color("#6D28D9"),
		}
	}
}

// DefaultPalette returns the light palette.
func DefaultPalette() Palette {
	return PaletteByName(lightThemeName)
}

// ActivePalette is the palette most recently applied.
var ActivePalette = DefaultPalette()

// ApplyPalette swaps the package colors and rebuilds every style.
// A disabled palette renders without color.
func ApplyPalette(p Palette) {
	ActivePalette = p
	if p.Disabled {
		none := lipgloss.Color("")
		Primary, Secondary, Accent, Info = none, none, none, none
		Success, Warning, Error, Muted = none, none, none, none
		Background, Foreground, Border, Highlight = none, none, none, none
	} else {
		Primary, Secondary, Accent, Info = p.Primary, p.Secondary, p.Accent, p.Info
		Success, Warning, Error, Muted = p.Success, p.Warning, p.Error, p.Muted
		Background, Foreground, Border, Highlight = p.Background, p.Foreground, p.Border, p.Highlight
	}
	rebuildStyles()
}
