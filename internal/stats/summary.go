package stats

import (
	"sort"

	"pollscape/internal/election"
	"pollscape/internal/simulation"
)

// PartySummary describes how one party fares across a population.
type PartySummary struct {
	Party         string  `json:"party"`
	Label         string  `json:"label"`
	PollAverage   float64 `json:"poll_average"`
	VoteShareP10  float64 `json:"vote_share_p10"`
	VoteShareP50  float64 `json:"vote_share_p50"`
	VoteShareP90  float64 `json:"vote_share_p90"`
	MeanSeatShare float64 `json:"mean_seat_share"`
	BelowHurdle   int     `json:"below_hurdle"`
	Led           int     `json:"led"`
}

// PopulationSummary aggregates a population for reports.
type PopulationSummary struct {
	Scenarios          int            `json:"scenarios"`
	Leader             string         `json:"leader"`
	MedianLeadMargin   float64        `json:"median_lead_margin"`
	DistinctSignatures int            `json:"distinct_signatures"`
	MedianGroupSize    float64        `json:"median_group_size"`
	StrongestCoalition string         `json:"strongest_coalition,omitempty"`
	Parties            []PartySummary `json:"parties"`
}

// Summarize computes per-party percentiles and population-wide figures.
// Parties are listed in dataset order.
func Summarize(pop *simulation.Population) PopulationSummary {
	summary := PopulationSummary{
		Scenarios:          pop.Count(),
		Leader:             pop.Leader,
		StrongestCoalition: simulation.StrongestCoalition(pop.Coalitions),
		Parties:            make([]PartySummary, 0, len(pop.Parties)),
	}

	margins := make([]float64, 0, pop.Count())
	for _, s := range pop.Scenarios {
		margins = append(margins, s.LeadMargin)
	}
	summary.MedianLeadMargin = Median(margins)

	groups := pop.SignatureGroups()
	sizes := make([]int, 0, len(groups))
	for _, n := range groups {
		sizes = append(sizes, n)
	}
	summary.DistinctSignatures = len(groups)
	summary.MedianGroupSize = Median(sizes)

	for _, party := range pop.Parties {
		shares := make([]float64, 0, pop.Count())
		seats := make([]float64, 0, pop.Count())
		ps := PartySummary{
			Party:       party.Key,
			Label:       election.Label(party.Key),
			PollAverage: party.Avg,
		}
		for _, s := range pop.Scenarios {
			share := s.VoteShare(party.Key)
			shares = append(shares, share)
			seats = append(seats, s.SeatShareOf(party.Key))
			if share < election.Hurdle {
				ps.BelowHurdle++
			}
			if s.FirstParty == party.Key {
				ps.Led++
			}
		}
		ps.VoteShareP10 = Percentile(shares, 0.10)
		ps.VoteShareP50 = Percentile(shares, 0.50)
		ps.VoteShareP90 = Percentile(shares, 0.90)
		ps.MeanSeatShare = Mean(seats)
		summary.Parties = append(summary.Parties, ps)
	}
	return summary
}

// MarginHistogram counts lead margins in whole-point bins. Margins at or
// above maxBin land in the last bin.
func MarginHistogram(pop *simulation.Population, maxBin int) []int {
	if maxBin < 1 {
		maxBin = 1
	}
	bins := make([]int, maxBin+1)
	for _, s := range pop.Scenarios {
		idx := int(s.LeadMargin)
		if idx > maxBin {
			idx = maxBin
		}
		bins[idx]++
	}
	return bins
}

// RiskiestParties returns the parties that miss the hurdle at least once,
// most often first.
func RiskiestParties(summary PopulationSummary) []PartySummary {
	var out []PartySummary
	for _, p := range summary.Parties {
		if p.BelowHurdle > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BelowHurdle > out[j].BelowHurdle
	})
	return out
}
