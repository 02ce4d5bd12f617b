package simulation

import (
	"sort"

	"pollscape/internal/election"
)

// SimulatedVote is one party's result within a scenario.
type SimulatedVote struct {
	Party     string  `json:"party"`
	Vote      float64 `json:"vote"`
	VoteShare float64 `json:"vote_share"`
}

// SeatShare is a party's share of seats after the hurdle is applied.
type SeatShare struct {
	Party     string  `json:"party"`
	VoteShare float64 `json:"vote_share"`
	SeatShare float64 `json:"seat_share"`
}

// Scenario is one simulated election outcome. Scenarios are created once per
// generation run; only the frequency fields are attached afterwards.
type Scenario struct {
	ID          int             `json:"id"`
	Votes       []SimulatedVote `json:"votes"`
	SeatShares  []SeatShare     `json:"seat_shares"`
	RankedSeat  []SeatShare     `json:"ranked_seat"`
	FirstParty  string          `json:"first_party"`
	SecondParty string          `json:"second_party,omitempty"`
	LeadMargin  float64         `json:"lead_margin"`

	Signature      string  `json:"signature"`
	FrequencyCount int     `json:"frequency_count"`
	FrequencyShare float64 `json:"frequency_share"`
}

// ScenarioFromVotes turns raw sampled vote values into a scenario. Negative
// values are treated as zero.
func ScenarioFromVotes(index int, parties []string, raw []float64) *Scenario {
	s := &Scenario{ID: index + 1}

	total := 0.0
	votes := make([]SimulatedVote, len(parties))
	for i, party := range parties {
		v := raw[i]
		if v < 0 {
			v = 0
		}
		votes[i] = SimulatedVote{Party: party, Vote: v}
		total += v
	}
	for i := range votes {
		if total > 0 {
			votes[i].VoteShare = votes[i].Vote / total * 100
		}
	}
	s.Votes = votes

	byVote := make([]SimulatedVote, len(votes))
	copy(byVote, votes)
	sort.SliceStable(byVote, func(i, j int) bool {
		return byVote[i].VoteShare > byVote[j].VoteShare
	})
	switch len(byVote) {
	case 0:
	case 1:
		s.FirstParty = byVote[0].Party
		s.LeadMargin = byVote[0].VoteShare
	default:
		s.FirstParty = byVote[0].Party
		s.SecondParty = byVote[1].Party
		s.LeadMargin = byVote[0].VoteShare - byVote[1].VoteShare
	}

	qualifying := 0.0
	for _, v := range votes {
		if v.VoteShare >= election.Hurdle {
			qualifying += v.VoteShare
		}
	}
	s.SeatShares = make([]SeatShare, len(votes))
	for i, v := range votes {
		seat := 0.0
		if v.VoteShare >= election.Hurdle && qualifying > 0 {
			seat = v.VoteShare / qualifying * 100
		}
		s.SeatShares[i] = SeatShare{Party: v.Party, VoteShare: v.VoteShare, SeatShare: seat}
	}

	s.RankedSeat = make([]SeatShare, len(s.SeatShares))
	copy(s.RankedSeat, s.SeatShares)
	sort.SliceStable(s.RankedSeat, func(i, j int) bool {
		return s.RankedSeat[i].SeatShare > s.RankedSeat[j].SeatShare
	})

	return s
}

// VoteShare returns a party's vote share, or 0 if it is not part of the scenario.
func (s *Scenario) VoteShare(party string) float64 {
	for _, v := range s.Votes {
		if v.Party == party {
			return v.VoteShare
		}
	}
	return 0
}

// SeatShareOf returns a party's seat share, or 0 if it is not part of the scenario.
func (s *Scenario) SeatShareOf(party string) float64 {
	for _, v := range s.SeatShares {
		if v.Party == party {
			return v.SeatShare
		}
	}
	return 0
}

// TopSeatShare is the largest seat share in the scenario.
func (s *Scenario) TopSeatShare() float64 {
	if len(s.RankedSeat) == 0 {
		return 0
	}
	return s.RankedSeat[0].SeatShare
}
