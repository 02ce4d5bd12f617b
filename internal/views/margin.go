package views

import (
	"fmt"

	"pollscape/internal/election"
	"pollscape/internal/simulation"
)

// Lead-margin buckets in percentage points. They only feed the headline
// counts; ordering always uses the raw margin.
const (
	CloseRaceMargin  = 1.5
	MediumRaceMargin = 4.0
)

// MarginBuckets counts scenarios per lead-margin bucket.
type MarginBuckets struct {
	Close  int `json:"close"`
	Medium int `json:"medium"`
	Clear  int `json:"clear"`
}

// CountMarginBuckets sorts every scenario into exactly one bucket.
func CountMarginBuckets(scenarios []*simulation.Scenario) MarginBuckets {
	var b MarginBuckets
	for _, s := range scenarios {
		switch {
		case s.LeadMargin <= CloseRaceMargin:
			b.Close++
		case s.LeadMargin <= MediumRaceMargin:
			b.Medium++
		default:
			b.Clear++
		}
	}
	return b
}

// LeadMarginView orders scenarios by lead margin, closest races first.
func LeadMarginView(pop *simulation.Population, _ Selection) View {
	ordered := sortedCopy(pop.Scenarios, func(a, b *simulation.Scenario) bool {
		return a.LeadMargin < b.LeadMargin
	})
	buckets := CountMarginBuckets(pop.Scenarios)

	return View{
		Title:    "Wie eng ist das Rennen an der Spitze?",
		Headline: fmt.Sprintf("%d Szenarien zeigen ein sehr knappes Rennen, %d Szenarien einen klaren Vorsprung.", buckets.Close, buckets.Clear),
		Detail:   fmt.Sprintf("%d Szenarien liegen dazwischen. So wird sichtbar, wie oft die Spitze offen bleibt.", buckets.Medium),
		Ordered:  ordered,
		Highlight: func(s *simulation.Scenario) bool {
			return s.LeadMargin <= CloseRaceMargin
		},
		CardText: func(s *simulation.Scenario) string {
			if s.SecondParty == "" {
				return fmt.Sprintf("%s allein (%.1f Pkt.)", election.Label(s.FirstParty), s.LeadMargin)
			}
			return fmt.Sprintf("%s vor %s (%.1f Pkt.)", election.Label(s.FirstParty), election.Label(s.SecondParty), s.LeadMargin)
		},
		Controls: Controls{Kind: ControlNone},
	}
}
