package visuals

import (
	"fmt"
	"strings"

	"pollscape/internal/election"
	"pollscape/internal/simulation"
	"pollscape/internal/stats"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Table is a static text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Render draws the table with padded columns.
func (t *Table) Render(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	header := styles.Bold.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	sep := styles.Muted.Render("|")

	for i, h := range t.Headers {
		sb.WriteString(header.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	for _, row := range t.Rows {
		for i, c := range row {
			if i >= len(colWidths) {
				break
			}
			sb.WriteString(cell.Width(colWidths[i]).Render(c))
			if i < len(row)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SeatTable lists a scenario's vote shares, seat shares and absolute seats.
func SeatTable(s *simulation.Scenario, seats []simulation.SeatAllocation) *Table {
	t := &Table{
		Title:   fmt.Sprintf("Szenario %d", s.ID),
		Headers: []string{"Partei", "Stimmen", "Sitzanteil", "Sitze"},
	}
	for _, a := range seats {
		t.AddRow(
			election.Label(a.Party),
			fmt.Sprintf("%.1f%%", s.VoteShare(a.Party)),
			fmt.Sprintf("%.1f%%", s.SeatShareOf(a.Party)),
			humanize.Comma(int64(a.Seats)),
		)
	}
	return t
}

// SummaryTable lists the per-party figures of a population summary.
func SummaryTable(summary stats.PopulationSummary) *Table {
	t := &Table{
		Title:   fmt.Sprintf("Parteien über %s Szenarien", humanize.Comma(int64(summary.Scenarios))),
		Headers: []string{"Partei", "Umfrage", "P10", "P50", "P90", "Sitze Ø", "< 5%", "Vorne"},
	}
	for _, p := range summary.Parties {
		t.AddRow(
			p.Label,
			fmt.Sprintf("%.1f", p.PollAverage),
			fmt.Sprintf("%.1f", p.VoteShareP10),
			fmt.Sprintf("%.1f", p.VoteShareP50),
			fmt.Sprintf("%.1f", p.VoteShareP90),
			fmt.Sprintf("%.1f", p.MeanSeatShare),
			humanize.Comma(int64(p.BelowHurdle)),
			humanize.Comma(int64(p.Led)),
		)
	}
	return t
}

// CoalitionTable lists coalition options with their majority counts.
func CoalitionTable(options []simulation.CoalitionOption, scenarioCount int) *Table {
	t := &Table{
		Title:   "Koalitionen mit Mehrheit",
		Headers: []string{"ID", "Koalition", "Szenarien", "Anteil"},
	}
	for _, o := range options {
		share := 0.0
		if scenarioCount > 0 {
			share = float64(o.Count) / float64(scenarioCount) * 100
		}
		t.AddRow(o.ID, o.Label, humanize.Comma(int64(o.Count)), fmt.Sprintf("%.0f%%", share))
	}
	return t
}
