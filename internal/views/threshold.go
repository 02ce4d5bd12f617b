package views

import (
	"fmt"

	"pollscape/internal/election"
	"pollscape/internal/simulation"
)

// ThresholdView puts the scenarios in which the selected party misses the
// hurdle first. Both groups are ordered by their distance to the hurdle,
// nearest first.
func ThresholdView(pop *simulation.Population, sel Selection) View {
	selected := sel.ThresholdParty
	if selected == "" {
		selected = simulation.PartyAtHurdle(pop.Parties)
	}

	below := func(s *simulation.Scenario) bool { return s.VoteShare(selected) < election.Hurdle }

	ordered := sortedCopy(pop.Scenarios, func(a, b *simulation.Scenario) bool {
		aShare, bShare := a.VoteShare(selected), b.VoteShare(selected)
		aBelow, bBelow := aShare < election.Hurdle, bShare < election.Hurdle
		if aBelow != bBelow {
			return aBelow
		}
		if aBelow {
			return election.Hurdle-aShare < election.Hurdle-bShare
		}
		return aShare-election.Hurdle < bShare-election.Hurdle
	})

	belowCount := countWhere(pop.Scenarios, below)
	label := election.Label(selected)

	return View{
		Title:     "Wer rutscht unter 5%?",
		Headline:  fmt.Sprintf("%s liegt in %d von %d Szenarien unter 5%%.", label, belowCount, pop.Count()),
		Detail:    fmt.Sprintf("%d Szenarien liegen darüber. Die Sortierung zeigt zuerst die knappen Unterschreitungen, danach die knappen Fälle über 5%%.", pop.Count()-belowCount),
		Ordered:   ordered,
		Highlight: below,
		CardText: func(s *simulation.Scenario) string {
			return fmt.Sprintf("%s: %.1f%%", label, s.VoteShare(selected))
		},
		Controls: Controls{Kind: ControlThreshold, Options: election.CanonicalOrder(), Selected: selected},
	}
}
