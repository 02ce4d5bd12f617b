// Package session holds the mutable state of one explorer: the drawn
// population plus the task and selections that shape its views.
package session

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"pollscape/internal/election"
	"pollscape/internal/polls"
	"pollscape/internal/simulation"
	"pollscape/internal/views"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownParty             = errors.New("unknown party")
	ErrUnknownCoalition         = errors.New("unknown coalition")
	ErrUnsupportedScenarioCount = errors.New("unsupported scenario count")
	ErrScenarioNotFound         = errors.New("scenario not found")
)

// Options configure a new session. Zero values select the defaults.
type Options struct {
	ScenarioCount int
	// Seed makes generation reproducible. 0 draws a fresh seed.
	Seed       int64
	TotalSeats int
	Task       views.Task
	Variant    views.Variant
}

// Session is safe for concurrent use. Every mutation runs to completion
// under the write lock, so readers never see a half-built population.
type Session struct {
	mu         sync.RWMutex
	parties    []polls.PartyPoll
	engine     *simulation.Engine
	totalSeats int
	count      int
	task       views.Task
	selection  views.Selection
	variant    views.Variant
	pop        *simulation.Population
}

// New draws the initial population for parties.
func New(parties []polls.PartyPoll, opts Options) (*Session, error) {
	if opts.ScenarioCount == 0 {
		opts.ScenarioCount = election.ScenarioCounts()[0]
	}
	if !election.ValidScenarioCount(opts.ScenarioCount) {
		return nil, fmt.Errorf("%w: %d (allowed: %v)", ErrUnsupportedScenarioCount, opts.ScenarioCount, election.ScenarioCounts())
	}
	if opts.TotalSeats <= 0 {
		opts.TotalSeats = election.TotalSeats
	}
	if opts.Task == "" {
		opts.Task = views.TaskLeader
	}
	if _, err := views.ResolverFor(opts.Task); err != nil {
		return nil, err
	}

	engine := simulation.NewEngine()
	if opts.Seed != 0 {
		engine.SetSeed(opts.Seed)
	}

	s := &Session{
		parties:    parties,
		engine:     engine,
		totalSeats: opts.TotalSeats,
		count:      opts.ScenarioCount,
		task:       opts.Task,
		variant:    opts.Variant,
		selection: views.Selection{
			ThresholdParty: simulation.PartyAtHurdle(parties),
		},
	}
	s.regenerate()
	return s, nil
}

// regenerate must be called with mu held for writing.
func (s *Session) regenerate() {
	s.pop = s.engine.Run(s.count, s.parties)
	s.selection.Leader = s.pop.Leader
	if _, ok := s.pop.Coalition(s.selection.Coalition); !ok {
		s.selection.Coalition = simulation.StrongestCoalition(s.pop.Coalitions)
	}
	log.Debug().
		Int("scenarios", s.count).
		Str("leader", s.selection.Leader).
		Str("coalition", s.selection.Coalition).
		Msg("Session regenerated")
}

// SetScenarioCount redraws the population with n scenarios.
func (s *Session) SetScenarioCount(n int) error {
	if !election.ValidScenarioCount(n) {
		return fmt.Errorf("%w: %d (allowed: %v)", ErrUnsupportedScenarioCount, n, election.ScenarioCounts())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = n
	s.regenerate()
	return nil
}

// Regenerate redraws the population with the current scenario count.
func (s *Session) Regenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regenerate()
}

// SetTask switches the active task.
func (s *Session) SetTask(t views.Task) error {
	if _, err := views.ResolverFor(t); err != nil {
		return err
	}
	s.mu.Lock()
	s.task = t
	s.mu.Unlock()
	return nil
}

// SetVariant switches the presentation variant.
func (s *Session) SetVariant(v views.Variant) {
	s.mu.Lock()
	s.variant = v
	s.mu.Unlock()
}

// SelectLeader focuses the leader task on a polled party.
func (s *Session) SelectLeader(key string) error {
	return s.Select(views.Selection{Leader: key})
}

// SelectThresholdParty focuses the threshold task on a party. Any party of
// the canonical order may be chosen, polled or not.
func (s *Session) SelectThresholdParty(key string) error {
	return s.Select(views.Selection{ThresholdParty: key})
}

// SelectCoalition focuses the coalition task on one of the current options.
func (s *Session) SelectCoalition(id string) error {
	return s.Select(views.Selection{Coalition: id})
}

// Select applies every non-empty field of sel. Either all fields are valid
// and stored, or none is.
func (s *Session) Select(sel views.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel.Leader != "" && !s.pop.HasParty(sel.Leader) {
		return fmt.Errorf("%w: %q", ErrUnknownParty, sel.Leader)
	}
	if sel.ThresholdParty != "" && !s.pop.HasParty(sel.ThresholdParty) && !slices.Contains(election.CanonicalOrder(), sel.ThresholdParty) {
		return fmt.Errorf("%w: %q", ErrUnknownParty, sel.ThresholdParty)
	}
	if sel.Coalition != "" {
		if _, ok := s.pop.Coalition(sel.Coalition); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCoalition, sel.Coalition)
		}
	}

	if sel.Leader != "" {
		s.selection.Leader = sel.Leader
	}
	if sel.ThresholdParty != "" {
		s.selection.ThresholdParty = sel.ThresholdParty
	}
	if sel.Coalition != "" {
		s.selection.Coalition = sel.Coalition
	}
	return nil
}

// Task returns the active task.
func (s *Session) Task() views.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.task
}

// Selection returns the current per-task selections.
func (s *Session) Selection() views.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// ScenarioCount returns the size of the current population.
func (s *Session) ScenarioCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// TotalSeats is the chamber size used for absolute seats.
func (s *Session) TotalSeats() int {
	return s.totalSeats
}

// Parties returns the polled parties the session samples from.
func (s *Session) Parties() []polls.PartyPoll {
	return s.parties
}

// Population returns the current population. It is replaced, never
// modified, by later regenerations.
func (s *Session) Population() *simulation.Population {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pop
}

// View resolves the active task.
func (s *Session) View() views.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view(s.task)
}

// ViewOf resolves a task without making it the active one.
func (s *Session) ViewOf(t views.Task) (views.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return views.Resolve(t, s.pop, s.selection)
}

// view resolves a task that New or SetTask already validated.
func (s *Session) view(t views.Task) views.View {
	v, _ := views.Resolve(t, s.pop, s.selection)
	return v
}

// Snapshot resolves the active task and its landscape into a serialisable
// form.
func (s *Session) Snapshot() views.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return views.NewSnapshot(s.pop, s.view(s.task), s.variant)
}

// Landscape returns the banded cards of the active task.
func (s *Session) Landscape() (views.View, []views.Band) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view(s.task)
	return v, views.Landscape(s.pop, v, s.variant)
}

// Seats converts a scenario's seat shares into absolute seats.
func (s *Session) Seats(id int) ([]simulation.SeatAllocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scenario, ok := s.pop.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrScenarioNotFound, id)
	}
	return simulation.ToAbsoluteSeats(scenario, s.totalSeats), nil
}
