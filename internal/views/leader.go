package views

import (
	"fmt"
	"math"

	"pollscape/internal/election"
	"pollscape/internal/simulation"
)

// LeaderView puts the scenarios led by the selected party first, widest lead
// first. The remaining scenarios follow by how far the top seat share is
// from the selected party's vote share.
func LeaderView(pop *simulation.Population, sel Selection) View {
	selected := sel.Leader
	if selected == "" {
		selected = pop.Leader
	}

	leads := func(s *simulation.Scenario) bool { return s.FirstParty == selected }

	ordered := sortedCopy(pop.Scenarios, func(a, b *simulation.Scenario) bool {
		aLead, bLead := leads(a), leads(b)
		if aLead != bLead {
			return aLead
		}
		if aLead {
			return a.LeadMargin > b.LeadMargin
		}
		aDist := math.Abs(a.TopSeatShare() - a.VoteShare(selected))
		bDist := math.Abs(b.TopSeatShare() - b.VoteShare(selected))
		return aDist < bDist
	})

	counts := pop.LeaderCounts()
	selectedCount := 0
	var runnerUp *simulation.PartyCount
	for i, c := range counts {
		if c.Party == selected {
			selectedCount = c.Count
		}
		if i == 1 {
			runnerUp = &counts[i]
		}
	}

	options := make([]string, len(counts))
	for i, c := range counts {
		options[i] = c.Party
	}

	detail := "Keine weitere Partei übernimmt in nennenswerter Zahl die Führung."
	if runnerUp != nil {
		detail = fmt.Sprintf("%s führt in %d Szenarien.", election.Label(runnerUp.Party), runnerUp.Count)
	}

	return View{
		Title:     "Wer liegt vorn?",
		Headline:  fmt.Sprintf("%s liegt in %d von %d Szenarien vorne.", election.Label(selected), selectedCount, pop.Count()),
		Detail:    detail,
		Ordered:   ordered,
		Highlight: leads,
		CardText: func(s *simulation.Scenario) string {
			return fmt.Sprintf("%s +%.1f Pkt.", election.Label(s.FirstParty), s.LeadMargin)
		},
		Controls: Controls{Kind: ControlLeader, Options: options, Selected: selected},
	}
}
