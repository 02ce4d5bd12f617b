package visuals

import (
	"strings"
	"testing"

	"pollscape/internal/polls"
	"pollscape/internal/simulation"
	"pollscape/internal/stats"
	"pollscape/internal/views"

	"github.com/charmbracelet/lipgloss"
)

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

func TestGenerateLeaderChart(t *testing.T) {
	chart := GenerateLeaderChart([]simulation.PartyCount{{Party: "cxu", Count: 90}, {Party: "afd", Count: 10}})
	for _, want := range []string{"```mermaid", "xychart-beta", "\"Union\"", "\"AfD\"", "bar [90, 10]", "0 --> 108"} {
		if !strings.Contains(chart, want) {
			t.Errorf("leader chart missing %q:\n%s", want, chart)
		}
	}
	if GenerateLeaderChart(nil) != "" {
		t.Error("expected no chart without data")
	}
}

func TestGenerateCoalitionChart(t *testing.T) {
	pop := defaultPopulation(t, 100, 3)
	chart := GenerateCoalitionChart(pop.Coalitions, pop.Count())
	if !strings.Contains(chart, "Mehrheiten je Koalition") || strings.Contains(chart, " + ") {
		t.Errorf("unexpected coalition chart:\n%s", chart)
	}
	if GenerateCoalitionChart(nil, 100) != "" {
		t.Error("expected no chart without options")
	}
}

func TestGenerateMarginHistogram(t *testing.T) {
	chart := GenerateMarginHistogram([]int{3, 0, 5})
	for _, want := range []string{"\"0-1\"", "\"1-2\"", "\"2+\"", "bar [3, 0, 5]"} {
		if !strings.Contains(chart, want) {
			t.Errorf("histogram missing %q:\n%s", want, chart)
		}
	}
	if GenerateMarginHistogram([]int{0, 0}) != "" {
		t.Error("expected no chart for empty bins")
	}
}

func TestGenerateVoteRangeChart(t *testing.T) {
	summary := stats.Summarize(defaultPopulation(t, 100, 4))
	chart := GenerateVoteRangeChart(summary)
	if strings.Count(chart, "    line [") != 3 {
		t.Errorf("expected three lines:\n%s", chart)
	}
	if GenerateVoteRangeChart(stats.PopulationSummary{}) != "" {
		t.Error("expected no chart for an empty summary")
	}
}

func TestGenerateSeatPie(t *testing.T) {
	s := simulation.ScenarioFromVotes(0, []string{"cxu", "spd", "fdp"}, []float64{60, 36, 4})
	pie := GenerateSeatPie(s.ID, simulation.ToAbsoluteSeats(s, 630))
	if !strings.Contains(pie, "Sitzverteilung Szenario 1") || strings.Contains(pie, "FDP") {
		t.Errorf("unexpected pie:\n%s", pie)
	}
}

func TestSeatBar_Width(t *testing.T) {
	pop := defaultPopulation(t, 100, 5)
	for _, s := range pop.Scenarios[:10] {
		if w := lipgloss.Width(SeatBar(s, 20)); w != 20 {
			t.Errorf("scenario %d: bar width %d, want 20", s.ID, w)
		}
	}
	empty := &simulation.Scenario{}
	if got := SeatBar(empty, 5); got != "·····" {
		t.Errorf("empty bar = %q", got)
	}
}

func TestRenderLandscape(t *testing.T) {
	pop := defaultPopulation(t, 100, 6)
	v, err := views.Resolve(views.TaskLeader, pop, views.Selection{})
	if err != nil {
		t.Fatal(err)
	}
	bands := views.Landscape(pop, v, views.Variant{})
	out := RenderLandscape(v, bands, LandscapeOptions{Columns: 3, MaxCards: 6}, DefaultStyles())

	for _, want := range []string{v.Title, v.Headline, bands[0].Title, "#1 · Szenario", "weitere Szenarien"} {
		if !strings.Contains(out, want) {
			t.Errorf("landscape missing %q", want)
		}
	}
}

func TestTables(t *testing.T) {
	pop := defaultPopulation(t, 1000, 7)
	s := pop.Scenarios[0]
	seatTable := SeatTable(s, simulation.ToAbsoluteSeats(s, 630)).Render(DefaultStyles())
	if !strings.Contains(seatTable, "Sitze") || !strings.Contains(seatTable, "Union") {
		t.Errorf("unexpected seat table:\n%s", seatTable)
	}

	summary := SummaryTable(stats.Summarize(pop)).Render(DefaultStyles())
	if !strings.Contains(summary, "1,000 Szenarien") {
		t.Errorf("expected humanized scenario count:\n%s", summary)
	}

	if (&Table{Headers: []string{"a"}}).Render(DefaultStyles()) != "" {
		t.Error("expected empty output for a table without rows")
	}
	if CoalitionTable(pop.Coalitions, pop.Count()).Render(DefaultStyles()) == "" {
		t.Error("expected coalition rows")
	}
}
