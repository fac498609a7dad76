package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Base     = lipgloss.Color("#24273a")
	Surface1 = lipgloss.Color("#494d64")
	Overlay0 = lipgloss.Color("#6e738d")
	Subtext0 = lipgloss.Color("#a5adcb")
	Text     = lipgloss.Color("#cad3f5")
	Track    = lipgloss.Color("#dee0fc")

	Red      = lipgloss.Color("#ed8796")
	Green    = lipgloss.Color("#a6da95")
	Blue     = lipgloss.Color("#8aadf4")
	Mauve    = lipgloss.Color("#c6a0f6")
	Lavender = lipgloss.Color("#b7bdf8")
	Yellow   = lipgloss.Color("#eed49f")
)

// ImportanceColors bands importance 1..5, lowest first.
var ImportanceColors = []lipgloss.Color{
	lipgloss.Color("#ecf2ff"),
	lipgloss.Color("#bbffa7"),
	lipgloss.Color("#1161ff"),
	lipgloss.Color("#a530ff"),
	lipgloss.Color("#ff4e51"),
}

// ImportanceColor returns the band of importance, clamped to 1..5.
func ImportanceColor(importance int) lipgloss.Color {
	idx := importance - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ImportanceColors) {
		idx = len(ImportanceColors) - 1
	}
	return ImportanceColors[idx]
}

// importanceForeground keeps the pill readable on the light bands.
func importanceForeground(importance int) lipgloss.Color {
	if importance <= 2 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

// Styles holds the lipgloss styles of the board.
type Styles struct {
	Column             lipgloss.Style
	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style
	ColumnDropTarget   lipgloss.Style

	Card         lipgloss.Style
	CardActive   lipgloss.Style
	CardDragging lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	DropSlot     lipgloss.Style

	Pill func(importance int) lipgloss.Style

	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
	StatusHint  lipgloss.Style

	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	FieldError     lipgloss.Style
	Button         lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonDisabled lipgloss.Style
}

// NewStyles builds the default styles.
func NewStyles() *Styles {
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Padding(0, 1)

	return &Styles{
		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),
		ColumnHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true).
			Padding(0, 1),
		ColumnHeaderActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			Padding(0, 1),
		ColumnDropTarget: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Mauve).
			Padding(0, 1),

		Card:         card,
		CardActive:   card.BorderForeground(Lavender),
		CardDragging: card.BorderForeground(Mauve).BorderStyle(lipgloss.DoubleBorder()),
		CardTitle:    lipgloss.NewStyle().Foreground(Text).Bold(true),
		CardMeta:     lipgloss.NewStyle().Foreground(Overlay0),
		DropSlot:     lipgloss.NewStyle().Foreground(Mauve).Bold(true),

		Pill: func(importance int) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(importanceForeground(importance)).
				Background(ImportanceColor(importance)).
				Padding(0, 1)
		},

		StatusBar:   lipgloss.NewStyle().Foreground(Subtext0).Padding(0, 1),
		StatusError: lipgloss.NewStyle().Foreground(Red).Bold(true).Padding(0, 1),
		StatusHint:  lipgloss.NewStyle().Foreground(Overlay0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(Blue).Bold(true).MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(Subtext0),
		LabelFocused: lipgloss.NewStyle().Foreground(Blue).Bold(true),
		FieldError:   lipgloss.NewStyle().Foreground(Red),
		Button:       lipgloss.NewStyle().Foreground(Text).Background(Surface1).Padding(0, 2),
		ButtonActive: lipgloss.NewStyle().Foreground(Base).Background(Blue).Bold(true).Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(Overlay0).
			Background(Surface1).
			Padding(0, 2),
	}
}
