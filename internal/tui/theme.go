package tui

import "github.com/charmbracelet/lipgloss"

// ThemePreferenceKey is the preferences key holding the theme name.
const ThemePreferenceKey = "theme"

// Theme is a named palette.
type Theme struct {
	Name        string
	Correct     lipgloss.Color
	Incorrect   lipgloss.Color
	Pending     lipgloss.Color
	CurrentWord lipgloss.Color
	Accent      lipgloss.Color
	Muted       lipgloss.Color
}

// Themes holds the available palettes by name.
var Themes = map[string]Theme{
	"dark": {
		Name:        "dark",
		Correct:     lipgloss.Color("#F0F0F0"),
		Incorrect:   lipgloss.Color("#FF4D4F"),
		Pending:     lipgloss.Color("#8C8C8C"),
		CurrentWord: lipgloss.Color("#C89A3A"),
		Accent:      lipgloss.Color("#C89A3A"),
		Muted:       lipgloss.Color("#6E6E6E"),
	},
	"light": {
		Name:        "light",
		Correct:     lipgloss.Color("#1F1F1F"),
		Incorrect:   lipgloss.Color("#C62828"),
		Pending:     lipgloss.Color("#9E9E9E"),
		CurrentWord: lipgloss.Color("#8A5A00"),
		Accent:      lipgloss.Color("#8A5A00"),
		Muted:       lipgloss.Color("#757575"),
	},
}

// ThemeByName returns the named theme, or dark when unknown.
func ThemeByName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["dark"]
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == "light" {
		return Themes["dark"]
	}
	return Themes["light"]
}

type styles struct {
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	pending     lipgloss.Style
	currentWord lipgloss.Style
	accent      lipgloss.Style
	footer      lipgloss.Style
	panel       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		correct:     lipgloss.NewStyle().Foreground(t.Correct),
		incorrect:   lipgloss.NewStyle().Foreground(t.Incorrect),
		pending:     lipgloss.NewStyle().Foreground(t.Pending),
		currentWord: lipgloss.NewStyle().Foreground(t.CurrentWord),
		accent:      lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		footer:      lipgloss.NewStyle().Foreground(t.Muted),
		panel: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(t.Muted),
	}
}
