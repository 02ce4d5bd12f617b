package mcp

import (
	"context"
	"fmt"

	"pollscape/internal/simulation"
	"pollscape/internal/stats"
	"pollscape/internal/views"
	"pollscape/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// defaultMaxCards caps the cards returned per band.
const defaultMaxCards = 25

type SetScenarioCountInput struct {
	Count int `json:"count" jsonschema:"number of scenarios to draw, 100 or 1000"`
}

type RegenerateInput struct{}

type GetViewInput struct {
	Task           string `json:"task,omitempty" jsonschema:"task id: leader, lead-margin, threshold or coalition (defaults to the active task)"`
	Leader         string `json:"leader,omitempty" jsonschema:"party key focused by the leader task, e.g. cxu"`
	ThresholdParty string `json:"threshold_party,omitempty" jsonschema:"party key focused by the threshold task, e.g. fdp"`
	Coalition      string `json:"coalition,omitempty" jsonschema:"coalition id from list_coalitions, e.g. cxu-spd"`
	FrequencyOrder bool   `json:"frequency_order,omitempty" jsonschema:"rank scenarios by how often their seat pattern recurs instead of by task"`
	MaxCards       int    `json:"max_cards,omitempty" jsonschema:"maximum cards per band (default 25, 0 < n <= 1000)"`
}

type GetScenarioSeatsInput struct {
	ID int `json:"id" jsonschema:"scenario id"`
}

type ListCoalitionsInput struct{}

type GetPartySummaryInput struct{}

// PopulationResult acknowledges a regeneration.
type PopulationResult struct {
	ScenarioCount      int      `json:"scenario_count"`
	Leader             string   `json:"leader"`
	StrongestCoalition string   `json:"strongest_coalition,omitempty"`
	Insights           []string `json:"insights,omitempty"`
}

// ViewResult is a snapshot with capped bands.
type ViewResult struct {
	View      views.Snapshot `json:"view"`
	Truncated bool           `json:"truncated,omitempty"`
	Chart     string         `json:"chart,omitempty"`
	Insights  []string       `json:"insights,omitempty"`
}

// SeatsResult lists a scenario's absolute seats.
type SeatsResult struct {
	ScenarioID int                         `json:"scenario_id"`
	TotalSeats int                         `json:"total_seats"`
	Seats      []simulation.SeatAllocation `json:"seats"`
	Chart      string                      `json:"chart,omitempty"`
}

// CoalitionsResult lists the coalition options.
type CoalitionsResult struct {
	ScenarioCount int                          `json:"scenario_count"`
	Coalitions    []simulation.CoalitionOption `json:"coalitions"`
	Chart         string                       `json:"chart,omitempty"`
	Insights      []string                     `json:"insights,omitempty"`
}

// SummaryResult wraps the population summary.
type SummaryResult struct {
	Summary  stats.PopulationSummary `json:"summary"`
	Chart    string                  `json:"chart,omitempty"`
	Insights []string                `json:"insights,omitempty"`
}

func (s *Server) handleSetScenarioCount(_ context.Context, _ *sdk.CallToolRequest, in SetScenarioCountInput) (*sdk.CallToolResult, PopulationResult, error) {
	if err := s.session.SetScenarioCount(in.Count); err != nil {
		return nil, PopulationResult{}, err
	}
	log.Info().Int("count", in.Count).Msg("Scenario count changed via MCP")
	return nil, s.populationResult(), nil
}

func (s *Server) handleRegenerate(_ context.Context, _ *sdk.CallToolRequest, _ RegenerateInput) (*sdk.CallToolResult, PopulationResult, error) {
	s.session.Regenerate()
	return nil, s.populationResult(), nil
}

func (s *Server) populationResult() PopulationResult {
	pop := s.session.Population()
	res := PopulationResult{
		ScenarioCount:      pop.Count(),
		Leader:             pop.Leader,
		StrongestCoalition: simulation.StrongestCoalition(pop.Coalitions),
	}
	if res.StrongestCoalition == "" {
		res.Insights = append(res.Insights, "No admissible coalition reaches a majority in this population.")
	}
	return res
}

func (s *Server) handleGetView(_ context.Context, _ *sdk.CallToolRequest, in GetViewInput) (*sdk.CallToolResult, ViewResult, error) {
	var task views.Task
	if in.Task != "" {
		t, err := views.ParseTask(in.Task)
		if err != nil {
			return nil, ViewResult{}, err
		}
		task = t
	}
	if err := s.session.Select(views.Selection{
		Leader:         in.Leader,
		ThresholdParty: in.ThresholdParty,
		Coalition:      in.Coalition,
	}); err != nil {
		return nil, ViewResult{}, err
	}
	if task != "" {
		if err := s.session.SetTask(task); err != nil {
			return nil, ViewResult{}, err
		}
	}
	s.session.SetVariant(views.Variant{FrequencyOrder: in.FrequencyOrder})

	maxCards := in.MaxCards
	if maxCards <= 0 {
		maxCards = defaultMaxCards
	}

	res := ViewResult{View: s.session.Snapshot()}
	for i, b := range res.View.Bands {
		if len(b.Cards) > maxCards {
			res.View.Bands[i].Cards = b.Cards[:maxCards]
			res.Truncated = true
		}
	}
	if res.Truncated {
		res.Insights = append(res.Insights, fmt.Sprintf("Bands are capped at %d cards; band titles carry the full counts.", maxCards))
	}
	if in.FrequencyOrder {
		res.Insights = append(res.Insights, "Frequency order ignores the task ordering; highlights still follow the task.")
	}

	if s.enableMermaidCharts {
		pop := s.session.Population()
		switch res.View.Task {
		case views.TaskLeader:
			res.Chart = visuals.GenerateLeaderChart(pop.LeaderCounts())
		case views.TaskLeadMargin:
			res.Chart = visuals.GenerateMarginHistogram(stats.MarginHistogram(pop, 10))
		case views.TaskCoalition:
			res.Chart = visuals.GenerateCoalitionChart(pop.Coalitions, pop.Count())
		case views.TaskThreshold:
			res.Chart = visuals.GenerateVoteRangeChart(stats.Summarize(pop))
		}
	}
	return nil, res, nil
}

func (s *Server) handleGetScenarioSeats(_ context.Context, _ *sdk.CallToolRequest, in GetScenarioSeatsInput) (*sdk.CallToolResult, SeatsResult, error) {
	seats, err := s.session.Seats(in.ID)
	if err != nil {
		return nil, SeatsResult{}, err
	}
	res := SeatsResult{ScenarioID: in.ID, TotalSeats: s.session.TotalSeats(), Seats: seats}
	if s.enableMermaidCharts {
		res.Chart = visuals.GenerateSeatPie(in.ID, seats)
	}
	return nil, res, nil
}

func (s *Server) handleListCoalitions(_ context.Context, _ *sdk.CallToolRequest, _ ListCoalitionsInput) (*sdk.CallToolResult, CoalitionsResult, error) {
	pop := s.session.Population()
	res := CoalitionsResult{
		ScenarioCount: pop.Count(),
		Coalitions:    pop.Coalitions,
	}
	if res.Coalitions == nil {
		res.Coalitions = []simulation.CoalitionOption{}
	}
	if len(res.Coalitions) == 0 {
		res.Insights = append(res.Insights, "No admissible coalition reaches a majority in this population.")
	}
	if s.enableMermaidCharts {
		res.Chart = visuals.GenerateCoalitionChart(pop.Coalitions, pop.Count())
	}
	return nil, res, nil
}

func (s *Server) handleGetPartySummary(_ context.Context, _ *sdk.CallToolRequest, _ GetPartySummaryInput) (*sdk.CallToolResult, SummaryResult, error) {
	summary := stats.Summarize(s.session.Population())
	res := SummaryResult{Summary: summary}
	for _, p := range stats.RiskiestParties(summary) {
		res.Insights = append(res.Insights, fmt.Sprintf("%s misses the 5%% hurdle in %d of %d scenarios.", p.Label, p.BelowHurdle, summary.Scenarios))
	}
	if s.enableMermaidCharts {
		res.Chart = visuals.GenerateVoteRangeChart(summary)
	}
	return nil, res, nil
}
