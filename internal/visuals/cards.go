package visuals

import (
	"fmt"
	"strings"

	"pollscape/internal/election"
	"pollscape/internal/simulation"
	"pollscape/internal/views"

	"github.com/charmbracelet/lipgloss"
)

const (
	cardWidth = 30
	// barCells is the width of the seat bar inside a card.
	barCells = cardWidth - 2
)

// LandscapeOptions controls the text landscape.
type LandscapeOptions struct {
	Columns int
	// MaxCards caps the cards drawn per band; 0 draws all.
	MaxCards int
}

// RenderLandscape draws the headline of a view followed by its bands as
// grids of cards. Every card shows its rank, a stacked seat bar and the
// view's card text; highlighted cards get a thick border.
func RenderLandscape(v views.View, bands []views.Band, opts LandscapeOptions, styles Styles) string {
	if opts.Columns < 1 {
		opts.Columns = 4
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(v.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.Headline.Render(v.Headline))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(v.Detail))
	sb.WriteString("\n")

	for _, band := range bands {
		sb.WriteString("\n")
		sb.WriteString(styles.Bold.Render(band.Title))
		sb.WriteString("\n")

		cards := band.Cards
		hidden := 0
		if opts.MaxCards > 0 && len(cards) > opts.MaxCards {
			hidden = len(cards) - opts.MaxCards
			cards = cards[:opts.MaxCards]
		}

		var rows []string
		for start := 0; start < len(cards); start += opts.Columns {
			end := min(start+opts.Columns, len(cards))
			rendered := make([]string, 0, end-start)
			for _, c := range cards[start:end] {
				rendered = append(rendered, renderCard(c, v, styles))
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		}
		if len(rows) > 0 {
			sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
			sb.WriteString("\n")
		}
		if hidden > 0 {
			sb.WriteString(styles.Muted.Render(fmt.Sprintf("… und %d weitere Szenarien", hidden)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderCard(c views.Card, v views.View, styles Styles) string {
	style := styles.Card
	if v.Highlight(c.Scenario) {
		style = styles.FocusCard
	}
	header := fmt.Sprintf("#%d · Szenario %d", c.Rank, c.Scenario.ID)
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		SeatBar(c.Scenario, barCells),
		v.CardText(c.Scenario),
	)
	return style.Render(body)
}

// SeatBar draws a scenario's seat shares as a bar of the given number of
// cells, largest party first. Cells are apportioned with the same
// largest-remainder rule as parliament seats.
func SeatBar(s *simulation.Scenario, cells int) string {
	var sb strings.Builder
	used := 0
	for _, a := range simulation.ToAbsoluteSeats(s, cells) {
		if a.Seats == 0 {
			continue
		}
		segment := lipgloss.NewStyle().
			Background(lipgloss.Color(election.Color(a.Party))).
			Render(strings.Repeat(" ", a.Seats))
		sb.WriteString(segment)
		used += a.Seats
	}
	if used < cells {
		sb.WriteString(strings.Repeat("·", cells-used))
	}
	return sb.String()
}
