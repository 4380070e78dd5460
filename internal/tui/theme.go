package tui

import "github.com/charmbracelet/lipgloss"

var (
	lightBackground = lipgloss.Color("#f4f5f6")
	lightForeground = lipgloss.Color("#1b2a41")
	lightPrimary    = lipgloss.Color("#2e7d6b")
	lightMuted      = lipgloss.Color("#7a8594")
	lightBorder     = lipgloss.Color("#cfd6de")

	darkBackground = lipgloss.Color("#141d2b")
	darkForeground = lipgloss.Color("#f2f2f2")
	darkPrimary    = lipgloss.Color("#6fd3b8")
	darkMuted      = lipgloss.Color("#8896a8")
	darkBorder     = lipgloss.Color("#2a3850")

	colorDanger  = lipgloss.Color("#e53935")
	colorSuccess = lipgloss.Color("#8bc34a")
	colorWarning = lipgloss.Color("#ffc107")
)

// Theme is a shell colour scheme.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light scheme.
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: lightBackground,
		Foreground: lightForeground,
		Primary:    lightPrimary,
		Muted:      lightMuted,
		Border:     lightBorder,
	}
}

// DarkTheme returns the dark scheme.
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: darkBackground,
		Foreground: darkForeground,
		Primary:    darkPrimary,
		Muted:      darkMuted,
		Border:     darkBorder,
		IsDark:     true,
	}
}

// ThemeByName returns the dark theme for "dark" and the light one otherwise.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the rendered components for one theme.
type Styles struct {
	Theme Theme

	App       lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Card      lipgloss.Style
	Bar       lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
}

// NewStyles builds the component styles for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,
		App: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(1, 2),
		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Width(12),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Bar: lipgloss.NewStyle().
			Foreground(theme.Primary),
		Success: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),
		Error: lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),
	}
}
