package views

import (
	"fmt"
	"math"

	"pollscape/internal/simulation"
)

const coalitionTitle = "Welche Mehrheiten sind möglich?"

// CoalitionView orders scenarios by the selected coalition's seat surplus.
// Majorities come first with the largest cushion on top, followed by the
// near misses. Without any viable coalition a placeholder view is returned.
func CoalitionView(pop *simulation.Population, sel Selection) View {
	coalition, ok := pop.Coalition(sel.Coalition)
	if !ok {
		if len(pop.Coalitions) == 0 {
			return noMajorityView()
		}
		coalition = pop.Coalitions[0]
	}

	surplus := func(s *simulation.Scenario) float64 {
		return simulation.CoalitionSurplus(s, coalition.Parties)
	}
	ordered := sortedCopy(pop.Scenarios, func(a, b *simulation.Scenario) bool {
		aSurplus, bSurplus := surplus(a), surplus(b)
		aMajority, bMajority := aSurplus >= 0, bSurplus >= 0
		if aMajority != bMajority {
			return aMajority
		}
		if aMajority {
			return aSurplus > bSurplus
		}
		return math.Abs(aSurplus) < math.Abs(bSurplus)
	})

	majority := func(s *simulation.Scenario) bool { return surplus(s) >= 0 }
	majorityCount := countWhere(pop.Scenarios, majority)

	options := make([]string, len(pop.Coalitions))
	for i, c := range pop.Coalitions {
		options[i] = c.ID
	}

	return View{
		Title:     coalitionTitle,
		Headline:  fmt.Sprintf("%s erreicht in %d von %d Szenarien eine Mehrheit.", coalition.Label, majorityCount, pop.Count()),
		Detail:    "Vorne stehen Szenarien mit Mehrheit. Innerhalb der Gruppen sortiert die Ansicht nach klaren bzw. knappen Mehrheiten.",
		Ordered:   ordered,
		Highlight: majority,
		CardText: func(s *simulation.Scenario) string {
			value := surplus(s)
			label := "Fehlt"
			if value >= 0 {
				label = "Mehrheit"
			}
			return fmt.Sprintf("%s: %.1f Sitz-%%", label, math.Abs(value))
		},
		Controls: Controls{Kind: ControlCoalition, Options: options, Selected: coalition.ID},
	}
}

func noMajorityView() View {
	return View{
		Title:     coalitionTitle,
		Headline:  "Keine der zulässigen Koalitionen erreicht in diesen Szenarien eine Mehrheit.",
		Detail:    "Wählen Sie eine andere Perspektive oder ändern Sie die Szenariozahl.",
		Ordered:   []*simulation.Scenario{},
		Highlight: func(*simulation.Scenario) bool { return false },
		CardText:  func(*simulation.Scenario) string { return "Keine Mehrheit" },
		Controls:  Controls{Kind: ControlCoalition, Options: []string{}},
	}
}
