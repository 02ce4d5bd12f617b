package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pollscape/internal/election"
	"pollscape/internal/polls"
	"pollscape/internal/session"
	"pollscape/internal/simulation"
	"pollscape/internal/stats"
	"pollscape/internal/views"

	"github.com/rs/zerolog/log"
)

// maxBodyBytes bounds request bodies; all payloads are tiny.
const maxBodyBytes = 4 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrScenarioNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrUnknownParty),
		errors.Is(err, session.ErrUnknownCoalition),
		errors.Is(err, session.ErrUnsupportedScenarioCount),
		errors.Is(err, views.ErrUnknownTask),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

var errBadRequest = errors.New("bad request")

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := indexPage()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleScript(w http.ResponseWriter, _ *http.Request) {
	code, err := script()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(code)
}

type pollResponse struct {
	Parties []polls.PartyPoll      `json:"parties"`
	Legend  []election.LegendEntry `json:"legend"`
	Counts  []int                  `json:"scenario_counts"`
	Tasks   []views.TaskInfo       `json:"tasks"`
}

func (s *Server) handlePoll(w http.ResponseWriter, _ *http.Request) {
	parties := s.parties
	if parties == nil {
		parties = []polls.PartyPoll{}
	}
	writeJSON(w, http.StatusOK, pollResponse{
		Parties: parties,
		Legend:  election.Legend(),
		Counts:  election.ScenarioCounts(),
		Tasks:   views.Tasks,
	})
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

type coalitionsResponse struct {
	Strongest  string                       `json:"strongest,omitempty"`
	Coalitions []simulation.CoalitionOption `json:"coalitions"`
}

func (s *Server) handleCoalitions(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	pop := sess.Population()
	options := pop.Coalitions
	if options == nil {
		options = []simulation.CoalitionOption{}
	}
	writeJSON(w, http.StatusOK, coalitionsResponse{
		Strongest:  simulation.StrongestCoalition(options),
		Coalitions: options,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, stats.Summarize(sess.Population()))
}

type seatsResponse struct {
	ScenarioID int                         `json:"scenario_id"`
	TotalSeats int                         `json:"total_seats"`
	Seats      []simulation.SeatAllocation `json:"seats"`
}

func (s *Server) handleSeats(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid scenario id %q", errBadRequest, r.PathValue("id")))
		return
	}
	seats, err := sess.Seats(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seatsResponse{ScenarioID: id, TotalSeats: sess.TotalSeats(), Seats: seats})
}

type populationResponse struct {
	ScenarioCount int             `json:"scenario_count"`
	Leader        string          `json:"leader"`
	Selection     views.Selection `json:"selection"`
}

func populationStatus(sess *session.Session) populationResponse {
	return populationResponse{
		ScenarioCount: sess.ScenarioCount(),
		Leader:        sess.Population().Leader,
		Selection:     sess.Selection(),
	}
}

func (s *Server) handleScenarioCount(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req struct {
		Count int `json:"count"`
	}
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := sess.SetScenarioCount(req.Count); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, populationStatus(sess))
}

func (s *Server) handleRegenerate(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.Regenerate()
	writeJSON(w, http.StatusOK, populationStatus(sess))
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req struct {
		Task string `json:"task"`
	}
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	task, err := views.ParseTask(req.Task)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sess.SetTask(task); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]views.Task{"task": task})
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req views.Selection
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := sess.Select(req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Selection())
}

type variantRequest struct {
	FrequencyOrder bool `json:"frequency_order"`
	SegmentedBands bool `json:"segmented_bands"`
}

func (s *Server) handleVariant(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req variantRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	sess.SetVariant(views.Variant{FrequencyOrder: req.FrequencyOrder, SegmentedBands: req.SegmentedBands})
	writeJSON(w, http.StatusOK, map[string]variantRequest{"variant": req})
}
