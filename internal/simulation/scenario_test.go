package simulation

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScenarioFromVotes(t *testing.T) {
	s := ScenarioFromVotes(4, []string{"a", "b", "c", "d"}, []float64{40, 35, 4, 21})

	if s.ID != 5 {
		t.Errorf("expected id 5, got %d", s.ID)
	}
	if s.FirstParty != "a" || s.SecondParty != "b" {
		t.Errorf("expected a ahead of b, got %s / %s", s.FirstParty, s.SecondParty)
	}
	if !approx(s.LeadMargin, 5) {
		t.Errorf("expected lead margin 5, got %f", s.LeadMargin)
	}
	if s.SeatShareOf("c") != 0 {
		t.Errorf("party below hurdle must not receive seats, got %f", s.SeatShareOf("c"))
	}
	// 96 qualifying points are renormalised to 100.
	if !approx(s.SeatShareOf("a"), 40.0/96*100) {
		t.Errorf("unexpected seat share for a: %f", s.SeatShareOf("a"))
	}
	if s.RankedSeat[0].Party != "a" || s.RankedSeat[3].Party != "c" {
		t.Errorf("unexpected ranking: %+v", s.RankedSeat)
	}
}

func TestScenarioFromVotes_ZeroTotal(t *testing.T) {
	s := ScenarioFromVotes(0, []string{"a", "b"}, []float64{0, -3})
	for _, v := range s.Votes {
		if v.VoteShare != 0 || v.Vote != 0 {
			t.Errorf("expected zero share for %s, got %+v", v.Party, v)
		}
	}
	for _, seat := range s.SeatShares {
		if seat.SeatShare != 0 {
			t.Errorf("expected zero seats for %s", seat.Party)
		}
	}
}

func TestScenarioFromVotes_NoPartyQualifies(t *testing.T) {
	keys := make([]string, 25)
	raw := make([]float64, 25)
	for i := range keys {
		keys[i] = string(rune('a' + i))
		raw[i] = 1
	}
	s := ScenarioFromVotes(0, keys, raw)
	if s.TopSeatShare() != 0 {
		t.Errorf("expected all seat shares to be zero, top is %f", s.TopSeatShare())
	}
}

func TestScenarioFromVotes_SingleParty(t *testing.T) {
	s := ScenarioFromVotes(0, []string{"solo"}, []float64{12})
	if s.FirstParty != "solo" || s.SecondParty != "" {
		t.Errorf("unexpected leaders %q / %q", s.FirstParty, s.SecondParty)
	}
	if !approx(s.LeadMargin, 100) {
		t.Errorf("expected lead margin to equal full share, got %f", s.LeadMargin)
	}
}

func TestScenarioFromVotes_TiesKeepInputOrder(t *testing.T) {
	s := ScenarioFromVotes(0, []string{"x", "y", "z"}, []float64{30, 30, 40})
	if s.FirstParty != "z" || s.SecondParty != "x" {
		t.Errorf("expected z then x, got %s then %s", s.FirstParty, s.SecondParty)
	}
	if s.RankedSeat[1].Party != "x" || s.RankedSeat[2].Party != "y" {
		t.Errorf("expected stable seat ranking, got %+v", s.RankedSeat)
	}
}

func TestScenario_LookupsForUnknownParty(t *testing.T) {
	s := ScenarioFromVotes(0, []string{"a"}, []float64{1})
	if s.VoteShare("zz") != 0 || s.SeatShareOf("zz") != 0 {
		t.Error("unknown parties must report zero shares")
	}
}
