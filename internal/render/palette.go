package render

import "github.com/charmbracelet/lipgloss"

// Color is a named plot color.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Gray   Color = "gray"
	Black  Color = "black"
)

// DefaultColor is used for every species missing from the table.
const DefaultColor = Gray

var speciesColors = map[string]Color{
	"C":  Red,
	"O":  Blue,
	"Si": Green,
	"H":  Yellow,
}

// SpeciesColor maps a species label to its plot color.
func SpeciesColor(species string) Color {
	if c, ok := speciesColors[species]; ok {
		return c
	}
	return DefaultColor
}

var terminalColors = map[Color]lipgloss.Color{
	Red:    lipgloss.Color("#E53935"),
	Blue:   lipgloss.Color("#1E88E5"),
	Green:  lipgloss.Color("#43A047"),
	Yellow: lipgloss.Color("#FDD835"),
	Gray:   lipgloss.Color("#9E9E9E"),
	Black:  lipgloss.Color("#000000"),
}

// Terminal returns the lipgloss color used to paint c.
func (c Color) Terminal() lipgloss.Color {
	if tc, ok := terminalColors[c]; ok {
		return tc
	}
	return terminalColors[DefaultColor]
}
