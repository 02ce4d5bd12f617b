package simulation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pollscape/internal/election"
	"pollscape/internal/polls"
)

// Population is the full set of scenarios of one generation run plus the
// aggregates derived from it. A population is replaced wholesale on
// regeneration; scenario ids are only meaningful within it.
type Population struct {
	Parties          []polls.PartyPoll `json:"parties"`
	Scenarios        []*Scenario       `json:"scenarios"`
	FrequencyOrdered []*Scenario       `json:"-"`
	Leader           string            `json:"leader"`
	Coalitions       []CoalitionOption `json:"coalitions"`
}

// PartyCount pairs a party with a tally.
type PartyCount struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

// NewPopulation derives the leader, coalition options and frequency ranking
// for an already drawn set of scenarios.
func NewPopulation(parties []polls.PartyPoll, scenarios []*Scenario) *Population {
	p := &Population{
		Parties:   parties,
		Scenarios: scenarios,
	}
	p.Leader = DominantLeader(scenarios)
	p.Coalitions = BuildCoalitionOptions(scenarios)
	p.rebuildFrequencyRanking()
	return p
}

// Count is the number of scenarios in the population.
func (p *Population) Count() int { return len(p.Scenarios) }

// Find returns the scenario with the given id.
func (p *Population) Find(id int) (*Scenario, bool) {
	if id >= 1 && id <= len(p.Scenarios) && p.Scenarios[id-1].ID == id {
		return p.Scenarios[id-1], true
	}
	for _, s := range p.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// HasParty reports whether key is part of the polled dataset.
func (p *Population) HasParty(key string) bool {
	for _, party := range p.Parties {
		if party.Key == key {
			return true
		}
	}
	return false
}

// Coalition returns the coalition option with the given id.
func (p *Population) Coalition(id string) (CoalitionOption, bool) {
	for _, c := range p.Coalitions {
		if c.ID == id {
			return c, true
		}
	}
	return CoalitionOption{}, false
}

// LeaderCounts tallies first places per party, most frequent first. Ties keep
// the order in which parties first appear as leader.
func (p *Population) LeaderCounts() []PartyCount {
	return leaderCounts(p.Scenarios)
}

func leaderCounts(scenarios []*Scenario) []PartyCount {
	index := make(map[string]int)
	var counts []PartyCount
	for _, s := range scenarios {
		if s.FirstParty == "" {
			continue
		}
		i, ok := index[s.FirstParty]
		if !ok {
			i = len(counts)
			index[s.FirstParty] = i
			counts = append(counts, PartyCount{Party: s.FirstParty})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// DominantLeader returns the party that leads most often. Ties go to the
// party that appeared first; an empty population yields the default leader.
func DominantLeader(scenarios []*Scenario) string {
	counts := leaderCounts(scenarios)
	if len(counts) == 0 {
		return election.DefaultLeader
	}
	return counts[0].Party
}

// PartyAtHurdle returns the party whose average is closest to the hurdle,
// first in dataset order on ties.
func PartyAtHurdle(parties []polls.PartyPoll) string {
	if len(parties) == 0 {
		return election.DefaultHurdleParty
	}
	best := parties[0]
	bestDist := math.Abs(best.Avg - election.Hurdle)
	for _, p := range parties[1:] {
		if d := math.Abs(p.Avg - election.Hurdle); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best.Key
}

// SeatSignature buckets every canonical party's seat share and joins the
// results, e.g. "spd:16|cxu:33|...". Scenarios with equal signatures share a
// coarse outcome shape.
func SeatSignature(s *Scenario) string {
	order := election.CanonicalOrder()
	parts := make([]string, len(order))
	for i, party := range order {
		bucketed := math.Round(s.SeatShareOf(party)/election.FrequencyBucket) * election.FrequencyBucket
		parts[i] = fmt.Sprintf("%s:%.0f", party, bucketed)
	}
	return strings.Join(parts, "|")
}

func (p *Population) rebuildFrequencyRanking() {
	frequencies := make(map[string]int)
	for _, s := range p.Scenarios {
		s.Signature = SeatSignature(s)
		frequencies[s.Signature]++
	}

	total := len(p.Scenarios)
	for _, s := range p.Scenarios {
		s.FrequencyCount = frequencies[s.Signature]
		s.FrequencyShare = 0
		if total > 0 {
			s.FrequencyShare = float64(s.FrequencyCount) / float64(total)
		}
	}

	ordered := make([]*Scenario, total)
	copy(ordered, p.Scenarios)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.FrequencyCount != b.FrequencyCount {
			return a.FrequencyCount > b.FrequencyCount
		}
		if a.TopSeatShare() != b.TopSeatShare() {
			return a.TopSeatShare() > b.TopSeatShare()
		}
		return a.ID < b.ID
	})
	p.FrequencyOrdered = ordered
}

// SignatureGroups returns the number of scenarios per distinct signature.
func (p *Population) SignatureGroups() map[string]int {
	groups := make(map[string]int)
	for _, s := range p.Scenarios {
		groups[s.Signature]++
	}
	return groups
}
