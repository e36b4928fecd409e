package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the chrome around the orbit canvas. Body colours come from
// the system itself.
type Theme struct {
	Name   string
	Title  [2]string // gradient endpoints
	Border lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeSpace = Theme{
		Name:   "space",
		Title:  [2]string{"#00ffff", "#ff00ff"},
		Border: lipgloss.Color("#444466"),
		Text:   lipgloss.Color("#e0e0ff"),
		Muted:  lipgloss.Color("#666688"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  [2]string{"#ffffff", "#888888"},
		Border: lipgloss.Color("#555555"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Title:  [2]string{"#ff6b6b", "#feca57"},
		Border: lipgloss.Color("#8b6b8c"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{ThemeSpace, ThemeMinimal, ThemeSunset}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSpace
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
