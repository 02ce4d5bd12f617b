package simulation

import (
	"slices"
	"sort"
	"strings"

	"pollscape/internal/election"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CoalitionOption is a party combination that reaches a majority in at
// least one scenario.
type CoalitionOption struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Parties []string `json:"parties"`
	Count   int      `json:"count"`
}

// Combinations returns every subset of values with the given size, in
// lexicographic order of positions.
func Combinations(values []string, size int) [][]string {
	var result [][]string
	if size <= 0 || size > len(values) {
		return result
	}

	current := make([]string, 0, size)
	var helper func(start int)
	helper = func(start int) {
		if len(current) == size {
			result = append(result, slices.Clone(current))
			return
		}
		for i := start; i < len(values); i++ {
			current = append(current, values[i])
			helper(i + 1)
			current = current[:len(current)-1]
		}
	}
	helper(0)
	return result
}

// CoalitionSeatShare sums the seat shares of the given parties.
func CoalitionSeatShare(s *Scenario, parties []string) float64 {
	total := 0.0
	for _, entry := range s.SeatShares {
		if slices.Contains(parties, entry.Party) {
			total += entry.SeatShare
		}
	}
	return total
}

// CoalitionSurplus is the combined seat share minus the majority line;
// negative values are the shortfall.
func CoalitionSurplus(s *Scenario, parties []string) float64 {
	return CoalitionSeatShare(s, parties) - election.MajorityShare
}

// HasMajority reports whether the parties together hold a majority.
func HasMajority(s *Scenario, parties []string) bool {
	return CoalitionSeatShare(s, parties) >= election.MajorityShare
}

// BuildCoalitionOptions enumerates coalitions of two to four pool parties,
// drops the excluded anchor pairing and all combinations without any
// majority, and sorts by majority count then German label collation.
func BuildCoalitionOptions(scenarios []*Scenario) []CoalitionOption {
	pool := election.CoalitionPool()
	anchorA, anchorB := election.ExclusiveAnchors()

	var options []CoalitionOption
	for size := 2; size <= 4; size++ {
		for _, parties := range Combinations(pool, size) {
			if slices.Contains(parties, anchorA) && slices.Contains(parties, anchorB) {
				continue
			}

			count := 0
			for _, s := range scenarios {
				if HasMajority(s, parties) {
					count++
				}
			}
			if count == 0 {
				continue
			}

			labels := make([]string, len(parties))
			for i, party := range parties {
				labels[i] = election.Label(party)
			}
			options = append(options, CoalitionOption{
				ID:      strings.Join(parties, "-"),
				Label:   strings.Join(labels, " + "),
				Parties: parties,
				Count:   count,
			})
		}
	}

	col := collate.New(language.German)
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Count != options[j].Count {
			return options[i].Count > options[j].Count
		}
		return col.CompareString(options[i].Label, options[j].Label) < 0
	})
	return options
}

// StrongestCoalition returns the id of the first option, or "" if none exists.
func StrongestCoalition(options []CoalitionOption) string {
	if len(options) == 0 {
		return ""
	}
	return options[0].ID
}
