package simulation

import (
	"slices"
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func TestCombinations(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f"}
	tests := []struct {
		size int
		want int
	}{
		{0, 0},
		{2, 15},
		{3, 20},
		{4, 15},
		{7, 0},
	}
	for _, tt := range tests {
		got := Combinations(pool, tt.size)
		if len(got) != tt.want {
			t.Errorf("size %d: expected %d combinations, got %d", tt.size, tt.want, len(got))
		}
	}

	first := Combinations(pool, 3)
	if !slices.Equal(first[0], []string{"a", "b", "c"}) || !slices.Equal(first[1], []string{"a", "b", "d"}) {
		t.Errorf("unexpected enumeration order: %v", first[:2])
	}
}

func TestBuildCoalitionOptions(t *testing.T) {
	pop := defaultPopulation(t, 1000, 21)
	options := pop.Coalitions
	if len(options) == 0 {
		t.Fatal("expected at least one coalition with a majority")
	}

	for i, opt := range options {
		if slices.Contains(opt.Parties, "cxu") && slices.Contains(opt.Parties, "lin") {
			t.Errorf("coalition %s contains both exclusive anchors", opt.ID)
		}
		if opt.Count < 1 {
			t.Errorf("coalition %s offered without majority scenarios", opt.ID)
		}
		if n := len(opt.Parties); n < 2 || n > 4 {
			t.Errorf("coalition %s has %d parties", opt.ID, n)
		}
		if slices.Contains(opt.Parties, "afd") {
			t.Errorf("coalition %s contains a party outside the pool", opt.ID)
		}
		if i > 0 && options[i-1].Count < opt.Count {
			t.Errorf("options not sorted by count at %d", i)
		}

		majorities := 0
		for _, s := range pop.Scenarios {
			if HasMajority(s, opt.Parties) {
				majorities++
			}
		}
		if majorities != opt.Count {
			t.Errorf("coalition %s: count %d, recount %d", opt.ID, opt.Count, majorities)
		}
	}
	if StrongestCoalition(options) != options[0].ID {
		t.Error("strongest coalition must be the first option")
	}
}

func TestBuildCoalitionOptions_LabelTieBreak(t *testing.T) {
	// Only cxu and spd clear the hurdle and cxu alone holds a seat majority,
	// so every allowed pool combination containing cxu scores exactly once.
	s := ScenarioFromVotes(0, []string{"cxu", "spd", "gru", "fdp"}, []float64{50, 46, 2, 2})
	options := BuildCoalitionOptions([]*Scenario{s})

	if len(options) != 14 {
		t.Fatalf("expected 14 options, got %d", len(options))
	}
	if options[0].ID != "cxu-bsw" || options[0].Label != "Union + BSW" {
		t.Errorf("expected Union + BSW first, got %s (%s)", options[0].Label, options[0].ID)
	}

	col := collate.New(language.German)
	for i, o := range options {
		if o.Count != 1 {
			t.Errorf("%s: expected count 1, got %d", o.ID, o.Count)
		}
		if !slices.Contains(o.Parties, "cxu") {
			t.Errorf("%s offered without a majority", o.ID)
		}
		if i > 0 && col.CompareString(options[i-1].Label, o.Label) > 0 {
			t.Errorf("labels out of order: %q before %q", options[i-1].Label, o.Label)
		}
	}
}

func TestBuildCoalitionOptions_Empty(t *testing.T) {
	options := BuildCoalitionOptions(nil)
	if len(options) != 0 {
		t.Errorf("expected no options, got %d", len(options))
	}
	if StrongestCoalition(options) != "" {
		t.Error("expected empty strongest coalition")
	}
}

func TestCoalitionSurplus(t *testing.T) {
	s := ScenarioFromVotes(0, []string{"cxu", "spd", "gru"}, []float64{30, 30, 40})
	if got := CoalitionSurplus(s, []string{"cxu", "spd"}); !approx(got, 10) {
		t.Errorf("expected surplus 10, got %f", got)
	}
	if got := CoalitionSurplus(s, []string{"gru"}); !approx(got, -10) {
		t.Errorf("expected deficit -10, got %f", got)
	}
	if !HasMajority(s, []string{"cxu", "gru"}) {
		t.Error("expected majority for cxu+gru")
	}
}
