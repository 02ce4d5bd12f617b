package simulation

import (
	"math"
	"math/rand"
	"time"

	"pollscape/internal/polls"

	"github.com/rs/zerolog/log"
)

// ciWidthToSD converts the width of a 95% confidence interval into an
// approximate standard deviation (two half-widths of 1.96 sigma).
const ciWidthToSD = 3.92

// minSpread keeps very narrow intervals from collapsing the distribution.
const minSpread = 0.15

// Engine draws election scenarios from polled party averages.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine seeded from the wall clock.
func NewEngine() *Engine {
	return &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed makes subsequent draws reproducible.
func (e *Engine) SetSeed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Spread returns the standard deviation used when sampling a party.
func Spread(p polls.PartyPoll) float64 {
	return math.Max((p.CIUpper-p.CILower)/ciWidthToSD, minSpread)
}

// sampleVote draws one raw vote value, clamped at zero.
func (e *Engine) sampleVote(p polls.PartyPoll) float64 {
	raw := p.Avg + e.rng.NormFloat64()*Spread(p)
	return math.Max(0, raw)
}

// BuildScenario draws one outcome for all parties. index is zero-based; the
// resulting scenario id is index+1.
func (e *Engine) BuildScenario(index int, parties []polls.PartyPoll) *Scenario {
	keys := make([]string, len(parties))
	raw := make([]float64, len(parties))
	for i, p := range parties {
		keys[i] = p.Key
		raw[i] = e.sampleVote(p)
	}
	return ScenarioFromVotes(index, keys, raw)
}

// Run generates a fresh population of count independent scenarios.
func (e *Engine) Run(count int, parties []polls.PartyPoll) *Population {
	if len(parties) == 0 || count <= 0 {
		log.Warn().Int("parties", len(parties)).Int("count", count).Msg("Nothing to simulate, returning empty population")
		return NewPopulation(parties, nil)
	}

	scenarios := make([]*Scenario, count)
	for i := 0; i < count; i++ {
		scenarios[i] = e.BuildScenario(i, parties)
	}

	pop := NewPopulation(parties, scenarios)
	log.Debug().
		Int("scenarios", count).
		Str("leader", pop.Leader).
		Int("coalitions", len(pop.Coalitions)).
		Msg("Population regenerated")
	return pop
}
