package views

import (
	"fmt"
	"math"

	"pollscape/internal/simulation"
)

// Card is a scenario at its display rank (1-based).
type Card struct {
	Scenario *simulation.Scenario
	Rank     int
}

// Band is a titled group of cards.
type Band struct {
	Title string
	Cards []Card
}

// Variant selects the presentation of the landscape.
type Variant struct {
	// FrequencyOrder ranks cards by signature frequency instead of the
	// task ordering.
	FrequencyOrder bool
	// SegmentedBands splits every frequency zone by the task highlight.
	SegmentedBands bool
}

// Frequency zone sizes as fractions of the population.
const (
	centerZoneShare = 0.20
	midZoneShare    = 0.35
)

// RankCards assigns ranks in list order.
func RankCards(ordered []*simulation.Scenario) []Card {
	cards := make([]Card, len(ordered))
	for i, s := range ordered {
		cards[i] = Card{Scenario: s, Rank: i + 1}
	}
	return cards
}

// GroupByFocus splits ranked cards into an "in focus" band and a band with
// the remaining scenarios. An empty side is omitted. titlePrefix, if set, is
// prepended to both titles.
func GroupByFocus(cards []Card, highlight func(*simulation.Scenario) bool, titlePrefix string) []Band {
	var focus, rest []Card
	for _, c := range cards {
		if highlight(c.Scenario) {
			focus = append(focus, c)
		} else {
			rest = append(rest, c)
		}
	}

	title := func(name string, n int) string {
		if titlePrefix != "" {
			return fmt.Sprintf("%s · %s (%d)", titlePrefix, name, n)
		}
		return fmt.Sprintf("%s (%d)", name, n)
	}

	var bands []Band
	if len(focus) > 0 {
		bands = append(bands, Band{Title: title("Im Fokus", len(focus)), Cards: focus})
	}
	if len(rest) > 0 {
		bands = append(bands, Band{Title: title("Weitere Szenarien", len(rest)), Cards: rest})
	}
	return bands
}

// FrequencyBands cuts frequency-ranked cards into a center zone (most
// frequent ~20%), a middle zone (next ~35%) and an outer zone. Empty zones are
// dropped.
func FrequencyBands(cards []Card) []Band {
	total := len(cards)
	centerEnd := min(max(1, int(math.Ceil(float64(total)*centerZoneShare))), total)
	midEnd := min(centerEnd+max(1, int(math.Ceil(float64(total)*midZoneShare))), total)

	zones := []Band{
		{Title: fmt.Sprintf("Zentrum: häufige Sitzbilder (%d)", centerEnd), Cards: cards[:centerEnd]},
		{Title: fmt.Sprintf("Mittelfeld: mittlere Häufigkeit (%d)", midEnd-centerEnd), Cards: cards[centerEnd:midEnd]},
		{Title: fmt.Sprintf("Außenbereich: seltene Konstellationen (%d)", total-midEnd), Cards: cards[midEnd:]},
	}

	var bands []Band
	for _, z := range zones {
		if len(z.Cards) > 0 {
			bands = append(bands, z)
		}
	}
	return bands
}

// Landscape arranges the population for display according to the variant.
func Landscape(pop *simulation.Population, v View, variant Variant) []Band {
	if !variant.FrequencyOrder {
		return GroupByFocus(RankCards(v.Ordered), v.Highlight, "")
	}

	zones := FrequencyBands(RankCards(pop.FrequencyOrdered))
	if !variant.SegmentedBands {
		return zones
	}
	var bands []Band
	for _, z := range zones {
		bands = append(bands, GroupByFocus(z.Cards, v.Highlight, z.Title)...)
	}
	return bands
}
