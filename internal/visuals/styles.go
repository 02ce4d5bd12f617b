package visuals

import "github.com/charmbracelet/lipgloss"

// Styles bundles the terminal styles used by the text renderers.
type Styles struct {
	Title     lipgloss.Style
	Headline  lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Card      lipgloss.Style
	FocusCard lipgloss.Style
}

var (
	accent = lipgloss.Color("#D94D41")
	muted  = lipgloss.Color("#8A8F98")
	border = lipgloss.Color("#4A5160")
)

// DefaultStyles returns the styles of the simulate report.
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(cardWidth)
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Headline:  lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Bold:      lipgloss.NewStyle().Bold(true),
		Card:      card,
		FocusCard: card.Border(lipgloss.ThickBorder()).BorderForeground(accent),
	}
}
