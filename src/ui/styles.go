// Package ui is the terminal Pokédex: a card grid with a search box,
// autocomplete, paging, and a detail overlay.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Background = lipgloss.Color("#18181b")
	Surface    = lipgloss.Color("#27272a")
	Border     = lipgloss.Color("#3f3f46")
	Muted      = lipgloss.Color("#71717a")
	Foreground = lipgloss.Color("#fafafa")
	Accent     = lipgloss.Color("#dc2626")
	Fallback   = lipgloss.Color("#52525b")
)

// TypeColors are the badge colours of each elemental type.
var TypeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("#a8a77a"),
	"fire":     lipgloss.Color("#ee8130"),
	"water":    lipgloss.Color("#6390f0"),
	"electric": lipgloss.Color("#f7d02c"),
	"grass":    lipgloss.Color("#7ac74c"),
	"ice":      lipgloss.Color("#96d9d6"),
	"fighting": lipgloss.Color("#c22e28"),
	"poison":   lipgloss.Color("#a33ea1"),
	"ground":   lipgloss.Color("#e2bf65"),
	"flying":   lipgloss.Color("#a98ff3"),
	"psychic":  lipgloss.Color("#f95587"),
	"bug":      lipgloss.Color("#a6b91a"),
	"rock":     lipgloss.Color("#b6a136"),
	"ghost":    lipgloss.Color("#735797"),
	"dragon":   lipgloss.Color("#6f35fc"),
	"dark":     lipgloss.Color("#705746"),
	"steel":    lipgloss.Color("#b7b7ce"),
	"fairy":    lipgloss.Color("#d685ad"),
}

func TypeColor(typeName string) lipgloss.Color {
	if c, ok := TypeColors[typeName]; ok {
		return c
	}
	return Fallback
}

type Styles struct {
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Error      lipgloss.Style
	Button     lipgloss.Style
	ButtonOff  lipgloss.Style
	Card       lipgloss.Style
	CardActive lipgloss.Style
	CardId     lipgloss.Style
	Suggestion lipgloss.Style
	Highlight  lipgloss.Style
	Panel      lipgloss.Style
	ErrorPanel lipgloss.Style
	Spinner    lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Foreground(Accent).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(Muted),
		Bold:       lipgloss.NewStyle().Foreground(Foreground).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(Accent).Bold(true),
		Button:     lipgloss.NewStyle().Foreground(Foreground).Background(Accent).Bold(true).Padding(0, 1),
		ButtonOff:  lipgloss.NewStyle().Foreground(Muted).Background(Surface).Padding(0, 1),
		Card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border),
		CardActive: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Accent),
		CardId:     lipgloss.NewStyle().Foreground(Muted).Bold(true),
		Suggestion: lipgloss.NewStyle().Foreground(Muted),
		Highlight:  lipgloss.NewStyle().Foreground(Foreground).Background(Surface),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1),
		ErrorPanel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Accent).Padding(0, 1),
		Spinner:    lipgloss.NewStyle().Foreground(Accent),
	}
}

// Badge renders a type name on its type colour.
func Badge(typeName string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(TypeColor(typeName)).
		Padding(0, 1).
		Render(typeName)
}
