package views

import (
	"pollscape/internal/simulation"
)

// Snapshot is the serialisable form of a resolved view and its landscape.
type Snapshot struct {
	Task          Task           `json:"task"`
	Title         string         `json:"title"`
	Headline      string         `json:"headline"`
	Detail        string         `json:"detail"`
	Controls      Controls       `json:"controls"`
	ScenarioCount int            `json:"scenario_count"`
	Bands         []BandSnapshot `json:"bands"`
}

// BandSnapshot is the serialisable form of a Band.
type BandSnapshot struct {
	Title string         `json:"title"`
	Cards []CardSnapshot `json:"cards"`
}

// CardSnapshot carries what a renderer needs to draw one scenario card.
type CardSnapshot struct {
	ID             int                    `json:"id"`
	Rank           int                    `json:"rank"`
	Highlighted    bool                   `json:"highlighted"`
	Text           string                 `json:"text"`
	FirstParty     string                 `json:"first_party"`
	LeadMargin     float64                `json:"lead_margin"`
	FrequencyCount int                    `json:"frequency_count"`
	SeatShares     []simulation.SeatShare `json:"seat_shares"`
}

// NewSnapshot resolves the landscape of v and flattens it.
func NewSnapshot(pop *simulation.Population, v View, variant Variant) Snapshot {
	snap := Snapshot{
		Task:          v.Task,
		Title:         v.Title,
		Headline:      v.Headline,
		Detail:        v.Detail,
		Controls:      v.Controls,
		ScenarioCount: pop.Count(),
		Bands:         []BandSnapshot{},
	}
	for _, b := range Landscape(pop, v, variant) {
		bs := BandSnapshot{Title: b.Title, Cards: make([]CardSnapshot, len(b.Cards))}
		for i, c := range b.Cards {
			s := c.Scenario
			bs.Cards[i] = CardSnapshot{
				ID:             s.ID,
				Rank:           c.Rank,
				Highlighted:    v.Highlight(s),
				Text:           v.CardText(s),
				FirstParty:     s.FirstParty,
				LeadMargin:     s.LeadMargin,
				FrequencyCount: s.FrequencyCount,
				SeatShares:     s.SeatShares,
			}
		}
		snap.Bands = append(snap.Bands, bs)
	}
	return snap
}
