package views

import (
	"errors"
	"strings"
	"testing"

	"pollscape/internal/election"
	"pollscape/internal/polls"
	"pollscape/internal/simulation"

	"github.com/google/go-cmp/cmp"
)

var abc = []polls.PartyPoll{
	{Key: "a", Avg: 40, CILower: 38, CIUpper: 42},
	{Key: "b", Avg: 35, CILower: 33, CIUpper: 37},
	{Key: "c", Avg: 4, CILower: 2, CIUpper: 6},
}

// sixtyForty builds 100 scenarios: a leads the first 60 with growing
// margins, b leads the remaining 40.
func sixtyForty(t *testing.T) *simulation.Population {
	t.Helper()
	keys := []string{"a", "b", "c"}
	scenarios := make([]*simulation.Scenario, 0, 100)
	for i := 0; i < 100; i++ {
		var votes []float64
		if i < 60 {
			votes = []float64{45 + float64(i)/10, 40, 15 - float64(i)/10}
		} else {
			votes = []float64{38, 44 + float64(i-60)/10, 18 - float64(i-60)/10}
		}
		scenarios = append(scenarios, simulation.ScenarioFromVotes(i, keys, votes))
	}
	return simulation.NewPopulation(abc, scenarios)
}

func defaultPopulation(t *testing.T, count int, seed int64) *simulation.Population {
	t.Helper()
	parties, err := polls.Default()
	if err != nil {
		t.Fatalf("failed to load default dataset: %v", err)
	}
	e := simulation.NewEngine()
	e.SetSeed(seed)
	return e.Run(count, parties)
}

func TestParseTask(t *testing.T) {
	tests := []struct {
		in      string
		want    Task
		wantErr bool
	}{
		{"leader", TaskLeader, false},
		{"task1", TaskLeader, false},
		{"TASK2A", TaskLeadMargin, false},
		{"task2b", TaskThreshold, false},
		{" coalition ", TaskCoalition, false},
		{"task4", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTask(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownTask) {
				t.Errorf("ParseTask(%q): expected ErrUnknownTask, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTask(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestLeaderView_SixtyOfHundred(t *testing.T) {
	pop := sixtyForty(t)
	v, err := Resolve(TaskLeader, pop, Selection{Leader: "a"})
	if err != nil {
		t.Fatal(err)
	}

	if v.Headline != "A liegt in 60 von 100 Szenarien vorne." {
		t.Errorf("unexpected headline %q", v.Headline)
	}
	if v.Detail != "B führt in 40 Szenarien." {
		t.Errorf("unexpected detail %q", v.Detail)
	}
	for i, s := range v.Ordered[:60] {
		if s.FirstParty != "a" {
			t.Fatalf("position %d: expected an a-led scenario, got %s", i, s.FirstParty)
		}
		if i > 0 && v.Ordered[i-1].LeadMargin < s.LeadMargin {
			t.Fatalf("position %d: a-led scenarios not sorted by margin desc", i)
		}
	}
	for _, s := range v.Ordered[60:] {
		if v.Highlight(s) {
			t.Fatalf("scenario %d highlighted without a lead", s.ID)
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, v.Controls.Options); diff != "" {
		t.Errorf("leader options mismatch (-want +got):\n%s", diff)
	}
	if v.Controls.Kind != ControlLeader || v.Controls.Selected != "a" {
		t.Errorf("unexpected controls %+v", v.Controls)
	}
}

func TestLeaderView_DefaultsToDominantLeader(t *testing.T) {
	pop := sixtyForty(t)
	v := LeaderView(pop, Selection{})
	if v.Controls.Selected != "a" {
		t.Errorf("expected dominant leader a, got %s", v.Controls.Selected)
	}
	if !strings.HasPrefix(v.CardText(v.Ordered[0]), "A +") {
		t.Errorf("unexpected card text %q", v.CardText(v.Ordered[0]))
	}
}

func TestLeadMarginView(t *testing.T) {
	pop := defaultPopulation(t, 1000, 3)
	v := LeadMarginView(pop, Selection{})

	for i := 1; i < len(v.Ordered); i++ {
		if v.Ordered[i-1].LeadMargin > v.Ordered[i].LeadMargin {
			t.Fatalf("position %d: margins not ascending", i)
		}
	}
	b := CountMarginBuckets(pop.Scenarios)
	if b.Close+b.Medium+b.Clear != pop.Count() {
		t.Errorf("buckets %+v do not cover the population", b)
	}
	for _, s := range pop.Scenarios {
		if v.Highlight(s) != (s.LeadMargin <= CloseRaceMargin) {
			t.Fatalf("scenario %d: highlight disagrees with margin %.2f", s.ID, s.LeadMargin)
		}
	}
	if v.Controls.Kind != ControlNone {
		t.Errorf("expected no controls, got %s", v.Controls.Kind)
	}
}

func TestCountMarginBuckets(t *testing.T) {
	keys := []string{"a", "b"}
	scenarios := []*simulation.Scenario{
		simulation.ScenarioFromVotes(0, keys, []float64{50.5, 49.5}), // 1
		simulation.ScenarioFromVotes(1, keys, []float64{51.5, 48.5}), // 3
		simulation.ScenarioFromVotes(2, keys, []float64{60, 40}),     // 20
	}
	want := MarginBuckets{Close: 1, Medium: 1, Clear: 1}
	if diff := cmp.Diff(want, CountMarginBuckets(scenarios)); diff != "" {
		t.Errorf("CountMarginBuckets() mismatch (-want +got):\n%s", diff)
	}
}

func TestThresholdView_Ordering(t *testing.T) {
	pop := defaultPopulation(t, 1000, 8)
	v := ThresholdView(pop, Selection{ThresholdParty: "fdp"})

	seenAbove := false
	for i, s := range v.Ordered {
		share := s.VoteShare("fdp")
		below := share < election.Hurdle
		if below && seenAbove {
			t.Fatalf("position %d: below-hurdle scenario after an above-hurdle one", i)
		}
		if !below {
			seenAbove = true
		}
		if i == 0 {
			continue
		}
		prev := v.Ordered[i-1].VoteShare("fdp")
		prevBelow := prev < election.Hurdle
		if prevBelow && below && election.Hurdle-prev > election.Hurdle-share {
			t.Fatalf("position %d: shortfall not ascending", i)
		}
		if !prevBelow && !below && prev-election.Hurdle > share-election.Hurdle {
			t.Fatalf("position %d: excess not ascending", i)
		}
	}
	if diff := cmp.Diff(election.CanonicalOrder(), v.Controls.Options); diff != "" {
		t.Errorf("threshold options mismatch (-want +got):\n%s", diff)
	}
}

func TestThresholdView_DefaultsToPartyAtHurdle(t *testing.T) {
	pop := defaultPopulation(t, 100, 1)
	v := ThresholdView(pop, Selection{})
	// bsw polls at 4.6, fdp at 4.4.
	if v.Controls.Selected != "bsw" {
		t.Errorf("expected bsw, got %s", v.Controls.Selected)
	}
	if !strings.HasPrefix(v.Headline, "BSW liegt in ") {
		t.Errorf("unexpected headline %q", v.Headline)
	}
}

func TestCoalitionView(t *testing.T) {
	pop := defaultPopulation(t, 1000, 4)
	if len(pop.Coalitions) == 0 {
		t.Fatal("expected coalition options")
	}
	v := CoalitionView(pop, Selection{Coalition: "unknown"})
	strongest := pop.Coalitions[0]
	if v.Controls.Selected != strongest.ID {
		t.Errorf("expected fallback to %s, got %s", strongest.ID, v.Controls.Selected)
	}

	seenMiss := false
	for i, s := range v.Ordered {
		surplus := simulation.CoalitionSurplus(s, strongest.Parties)
		if surplus >= 0 && seenMiss {
			t.Fatalf("position %d: majority after a miss", i)
		}
		if surplus < 0 {
			seenMiss = true
		}
		if v.Highlight(s) != (surplus >= 0) {
			t.Fatalf("position %d: highlight disagrees with surplus", i)
		}
	}
	if countWhere(pop.Scenarios, v.Highlight) != strongest.Count {
		t.Errorf("highlighted scenarios differ from option count %d", strongest.Count)
	}
}

func TestCoalitionView_NoMajority(t *testing.T) {
	pop := sixtyForty(t)
	if len(pop.Coalitions) != 0 {
		t.Fatalf("expected no coalitions for parties outside the pool, got %d", len(pop.Coalitions))
	}
	v := CoalitionView(pop, Selection{})
	if len(v.Ordered) != 0 {
		t.Errorf("expected empty ordering, got %d", len(v.Ordered))
	}
	if !strings.HasPrefix(v.Headline, "Keine der zulässigen Koalitionen") {
		t.Errorf("unexpected headline %q", v.Headline)
	}
	if v.Highlight(pop.Scenarios[0]) {
		t.Error("placeholder must not highlight")
	}
}

func TestResolve_Idempotent(t *testing.T) {
	pop := defaultPopulation(t, 1000, 12)
	sel := Selection{Leader: "afd", ThresholdParty: "bsw"}
	for _, info := range Tasks {
		t.Run(string(info.ID), func(t *testing.T) {
			first, err := Resolve(info.ID, pop, sel)
			if err != nil {
				t.Fatal(err)
			}
			second, _ := Resolve(info.ID, pop, sel)
			if diff := cmp.Diff(ids(first.Ordered), ids(second.Ordered)); diff != "" {
				t.Errorf("ordering changed between calls (-first +second):\n%s", diff)
			}
			if diff := cmp.Diff(highlights(first, pop), highlights(second, pop)); diff != "" {
				t.Errorf("highlights changed between calls (-first +second):\n%s", diff)
			}
			if len(first.Ordered) != pop.Count() {
				t.Errorf("ordering has %d scenarios, want %d", len(first.Ordered), pop.Count())
			}
		})
	}
}

func TestResolve_DoesNotReorderPopulation(t *testing.T) {
	pop := defaultPopulation(t, 100, 6)
	before := ids(pop.Scenarios)
	for _, info := range Tasks {
		if _, err := Resolve(info.ID, pop, Selection{}); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(before, ids(pop.Scenarios)); diff != "" {
		t.Errorf("population order mutated (-before +after):\n%s", diff)
	}
}

func ids(scenarios []*simulation.Scenario) []int {
	out := make([]int, len(scenarios))
	for i, s := range scenarios {
		out[i] = s.ID
	}
	return out
}

func highlights(v View, pop *simulation.Population) []bool {
	out := make([]bool, len(pop.Scenarios))
	for i, s := range pop.Scenarios {
		out[i] = v.Highlight(s)
	}
	return out
}
