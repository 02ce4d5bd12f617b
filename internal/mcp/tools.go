package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name: "set_scenario_count",
		Description: "Redraw the scenario population with a new size (100 or 1000). " +
			"All derived structures (leader, coalition options, frequency ranking) are rebuilt. Guidance: call 'get_view' afterwards.",
	}, s.handleSetScenarioCount)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "regenerate",
		Description: "Draw a fresh population with the current scenario count. Scenario ids of the previous population become meaningless.",
	}, s.handleRegenerate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "get_view",
		Description: "Resolve one analytical task over the current population and return headline, detail and the ranked scenario bands. " +
			"Tasks: 'leader' (who leads), 'lead-margin' (how close is first vs second), 'threshold' (who risks the 5% hurdle), 'coalition' (which coalitions reach a majority). " +
			"Selections given here persist for later calls. " +
			"STRICT GUARDRAIL: the scenarios are random draws around poll averages, NOT forecasts. Report counts as 'in N of M scenarios', never as probabilities of the real election.",
	}, s.handleGetView)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "get_scenario_seats",
		Description: "Convert one scenario's seat shares into absolute seats (largest remainder). Use ids returned by 'get_view'.",
	}, s.handleGetScenarioSeats)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "list_coalitions",
		Description: "List the coalitions (2-4 parties, Union and LINKE never together) that reach a seat majority in at least one scenario, strongest first.",
	}, s.handleListCoalitions)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "get_party_summary",
		Description: "Summarize every polled party across the population: P10/P50/P90 vote share, mean seat share, scenarios below the hurdle and scenarios led.",
	}, s.handleGetPartySummary)
}
