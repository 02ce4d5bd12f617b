package visuals

import (
	"fmt"
	"math"
	"strings"

	"pollscape/internal/election"
	"pollscape/internal/simulation"
	"pollscape/internal/stats"
)

// GenerateLeaderChart creates a Mermaid bar chart of how often each party leads.
func GenerateLeaderChart(counts []simulation.PartyCount) string {
	if len(counts) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for _, c := range counts {
		labels = append(labels, fmt.Sprintf("\"%s\"", election.Label(c.Party)))
		values = append(values, fmt.Sprintf("%d", c.Count))
		if c.Count > maxVal {
			maxVal = c.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Führung nach Partei\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Szenarien\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCoalitionChart creates a Mermaid bar chart of majority counts for
// the strongest coalition options.
func GenerateCoalitionChart(options []simulation.CoalitionOption, scenarioCount int) string {
	if len(options) == 0 || scenarioCount == 0 {
		return ""
	}

	// Limit to 12 options to keep the axis readable
	limit := len(options)
	if limit > 12 {
		limit = 12
	}

	var labels []string
	var values []string
	for _, opt := range options[:limit] {
		// "Union + GRÜNE" becomes "Union/GRÜNE"
		labels = append(labels, fmt.Sprintf("\"%s\"", strings.ReplaceAll(opt.Label, " + ", "/")))
		values = append(values, fmt.Sprintf("%d", opt.Count))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Mehrheiten je Koalition\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Szenarien mit Mehrheit\" 0 --> %d\n", scenarioCount))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateMarginHistogram creates a Mermaid bar chart of lead margins in
// whole-point bins; the last bin is open-ended.
func GenerateMarginHistogram(bins []int) string {
	if len(bins) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for i, count := range bins {
		label := fmt.Sprintf("\"%d-%d\"", i, i+1)
		if i == len(bins)-1 {
			label = fmt.Sprintf("\"%d+\"", i)
		}
		labels = append(labels, label)
		values = append(values, fmt.Sprintf("%d", count))
		if count > maxVal {
			maxVal = count
		}
	}
	if maxVal == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Abstand an der Spitze (Pkt.)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Szenarien\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateVoteRangeChart creates a Mermaid line chart with the P10, P50 and
// P90 vote share of every party.
func GenerateVoteRangeChart(summary stats.PopulationSummary) string {
	if summary.Scenarios == 0 || len(summary.Parties) == 0 {
		return ""
	}

	var labels, p10s, p50s, p90s []string
	maxY := election.Hurdle
	for _, p := range summary.Parties {
		labels = append(labels, fmt.Sprintf("\"%s\"", p.Label))
		p10s = append(p10s, fmt.Sprintf("%.1f", p.VoteShareP10))
		p50s = append(p50s, fmt.Sprintf("%.1f", p.VoteShareP50))
		p90s = append(p90s, fmt.Sprintf("%.1f", p.VoteShareP90))
		if p.VoteShareP90 > maxY {
			maxY = p.VoteShareP90
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Stimmenanteile (P10 / P50 / P90)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Prozent\" 0 --> %d\n", int(math.Ceil(maxY*1.1))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(p10s, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(p50s, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(p90s, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateSeatPie creates a Mermaid pie chart of one scenario's absolute seats.
func GenerateSeatPie(scenarioID int, seats []simulation.SeatAllocation) string {
	total := 0
	for _, a := range seats {
		total += a.Seats
	}
	if total == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("pie title Sitzverteilung Szenario %d\n", scenarioID))
	for _, a := range seats {
		if a.Seats == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" : %d\n", election.Label(a.Party), a.Seats))
	}
	sb.WriteString("```")
	return sb.String()
}
