// Package ui provides the visual styling for the instaquran studio.
// Colours follow the pink-on-grey palette of the card generator with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f3f4f6") // gray-100
	LightForeground = lipgloss.Color("#1f2937") // gray-800
	LightPrimary    = lipgloss.Color("#db2777") // pink-600
	LightAccent     = lipgloss.Color("#ec4899") // pink-500
	LightMuted      = lipgloss.Color("#6b7280") // gray-500
	LightBorder     = lipgloss.Color("#d1d5db") // gray-300
	LightOption     = lipgloss.Color("#e5e7eb") // gray-200

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#111827") // gray-900
	DarkForeground = lipgloss.Color("#f3f4f6")
	DarkPrimary    = lipgloss.Color("#f472b6") // pink-400
	DarkAccent     = lipgloss.Color("#db2777")
	DarkMuted      = lipgloss.Color("#9ca3af") // gray-400
	DarkBorder     = lipgloss.Color("#374151") // gray-700
	DarkOption     = lipgloss.Color("#374151")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#dc2626") // red-600
	Success     = lipgloss.Color("#16a34a") // green-600
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Option     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Option:     LightOption,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Option:     DarkOption,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or INSTAQURAN_DARK_MODE, light otherwise.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			// 0-6 and 8 (dark grey) are dark backgrounds
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	if os.Getenv("INSTAQURAN_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style
	Panel  lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style

	// Form
	Field         lipgloss.Style
	FieldFocused  lipgloss.Style
	FieldInvalid  lipgloss.Style
	FieldError    lipgloss.Style
	Option        lipgloss.Style
	OptionActive  lipgloss.Style
	OptionFocused lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(24)

	option := lipgloss.NewStyle().
		Padding(0, 1).
		Background(theme.Option).
		Foreground(theme.Foreground)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Padding(1, 2, 0, 2),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			Width(14),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Field: field,

		FieldFocused: field.
			BorderForeground(theme.Primary),

		FieldInvalid: field.
			Border(lipgloss.ThickBorder()).
			BorderForeground(Destructive),

		FieldError: lipgloss.NewStyle().
			Foreground(Destructive).
			PaddingLeft(15),

		Option: option,

		OptionActive: option.
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")),

		OptionFocused: option.
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Underline(true),

		Button: lipgloss.NewStyle().
			Padding(0, 3).
			Background(theme.Option).
			Foreground(theme.Foreground),

		ButtonFocused: lipgloss.NewStyle().
			Padding(0, 3).
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
