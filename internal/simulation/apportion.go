package simulation

import (
	"math"
	"sort"
)

// SeatAllocation is an integer seat count for one party.
type SeatAllocation struct {
	Party string `json:"party"`
	Seats int    `json:"seats"`
}

// ToAbsoluteSeats converts the scenario's seat shares into whole seats using
// the largest-remainder (Hare-Niemeyer) method. The result is ordered by seat
// count, largest first.
func ToAbsoluteSeats(s *Scenario, totalSeats int) []SeatAllocation {
	type row struct {
		party     string
		seats     int
		remainder float64
	}

	byShare := make([]SeatShare, len(s.SeatShares))
	copy(byShare, s.SeatShares)
	sort.SliceStable(byShare, func(i, j int) bool {
		return byShare[i].SeatShare > byShare[j].SeatShare
	})

	rows := make([]row, len(byShare))
	floored := 0
	shareSum := 0.0
	for i, entry := range byShare {
		exact := entry.SeatShare / 100 * float64(totalSeats)
		whole := math.Floor(exact)
		rows[i] = row{party: entry.Party, seats: int(whole), remainder: exact - whole}
		floored += int(whole)
		shareSum += entry.SeatShare
	}

	// Without any qualifying party there is nothing to distribute.
	if shareSum > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].remainder > rows[j].remainder
		})
		missing := totalSeats - floored
		for i := range rows {
			if missing <= 0 {
				break
			}
			rows[i].seats++
			missing--
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].seats > rows[j].seats
	})

	out := make([]SeatAllocation, len(rows))
	for i, r := range rows {
		out[i] = SeatAllocation{Party: r.party, Seats: r.seats}
	}
	return out
}
