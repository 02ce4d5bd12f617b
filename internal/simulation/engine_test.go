package simulation

import (
	"math"
	"testing"

	"pollscape/internal/polls"

	"github.com/google/go-cmp/cmp"
)

var threeParties = []polls.PartyPoll{
	{Key: "A", Avg: 40, CILower: 38, CIUpper: 42},
	{Key: "B", Avg: 35, CILower: 33, CIUpper: 37},
	{Key: "C", Avg: 4, CILower: 2, CIUpper: 6},
}

func TestEngine_VoteAndSeatShares(t *testing.T) {
	e := NewEngine()
	e.SetSeed(42)
	pop := e.Run(100, threeParties)

	if pop.Count() != 100 {
		t.Fatalf("expected 100 scenarios, got %d", pop.Count())
	}

	for _, s := range pop.Scenarios {
		voteSum := 0.0
		for _, v := range s.Votes {
			voteSum += v.VoteShare
		}
		if math.Abs(voteSum-100) > 0.01 {
			t.Errorf("scenario %d: vote shares sum to %f", s.ID, voteSum)
		}

		seatSum := 0.0
		for _, seat := range s.SeatShares {
			if seat.VoteShare < 5 && seat.SeatShare != 0 {
				t.Errorf("scenario %d: %s below hurdle (%.2f%%) holds %.2f%% seats", s.ID, seat.Party, seat.VoteShare, seat.SeatShare)
			}
			if seat.VoteShare >= 5 {
				seatSum += seat.SeatShare
			}
		}
		if seatSum != 0 && math.Abs(seatSum-100) > 1e-9 {
			t.Errorf("scenario %d: qualifying seat shares sum to %f", s.ID, seatSum)
		}
	}
}

func TestEngine_IDsAreSequential(t *testing.T) {
	e := NewEngine()
	e.SetSeed(1)
	pop := e.Run(100, threeParties)
	for i, s := range pop.Scenarios {
		if s.ID != i+1 {
			t.Fatalf("scenario at index %d has id %d", i, s.ID)
		}
	}
}

func TestEngine_SetSeedIsReproducible(t *testing.T) {
	a, b := NewEngine(), NewEngine()
	a.SetSeed(7)
	b.SetSeed(7)

	popA := a.Run(100, threeParties)
	popB := b.Run(100, threeParties)

	for i := range popA.Scenarios {
		if diff := cmp.Diff(popA.Scenarios[i].Votes, popB.Scenarios[i].Votes); diff != "" {
			t.Fatalf("scenario %d differs between equally seeded engines (-a +b):\n%s", i+1, diff)
		}
	}
}

func TestEngine_EmptyDataset(t *testing.T) {
	pop := NewEngine().Run(100, nil)
	if pop.Count() != 0 {
		t.Errorf("expected no scenarios, got %d", pop.Count())
	}
	if pop.Leader != "cxu" {
		t.Errorf("expected default leader, got %q", pop.Leader)
	}
	if len(pop.Coalitions) != 0 {
		t.Errorf("expected no coalitions, got %d", len(pop.Coalitions))
	}
}

func TestSpread(t *testing.T) {
	tests := []struct {
		name string
		poll polls.PartyPoll
		want float64
	}{
		{"Regular", polls.PartyPoll{CILower: 28, CIUpper: 31.92}, 1.0},
		{"Floor", polls.PartyPoll{CILower: 5, CIUpper: 5.1}, 0.15},
		{"Degenerate", polls.PartyPoll{CILower: 5, CIUpper: 5}, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Spread(tt.poll); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Spread() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_SamplesAreNeverNegative(t *testing.T) {
	e := NewEngine()
	e.SetSeed(3)
	tiny := []polls.PartyPoll{
		{Key: "x", Avg: 0.1, CILower: 0, CIUpper: 4},
		{Key: "y", Avg: 50, CILower: 48, CIUpper: 52},
	}
	for i := 0; i < 500; i++ {
		s := e.BuildScenario(i, tiny)
		for _, v := range s.Votes {
			if v.Vote < 0 {
				t.Fatalf("negative vote %f for %s", v.Vote, v.Party)
			}
		}
	}
}
