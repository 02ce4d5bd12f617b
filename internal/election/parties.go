package election

import (
	"slices"
	"strings"
)

// Electoral rules of the simplified Bundestag model.
const (
	Hurdle        = 5.0  // minimum vote share (%) for any seats
	MajorityShare = 50.0 // combined seat share (%) that forms a majority
	TotalSeats    = 630
	// FrequencyBucket is the seat-share width (percentage points) used when
	// building seat signatures.
	FrequencyBucket = 1.0
)

// Fallbacks used when a population is empty.
const (
	DefaultLeader      = "cxu"
	DefaultHurdleParty = "fdp"
)

// Meta holds the display attributes of a party.
type Meta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var meta = map[string]Meta{
	"spd": {Label: "SPD", Color: "#D94D41"},
	"cxu": {Label: "Union", Color: "#615952"},
	"gru": {Label: "GRÜNE", Color: "#84C462"},
	"lin": {Label: "LINKE", Color: "#B56BB8"},
	"fdp": {Label: "FDP", Color: "#F5D233"},
	"afd": {Label: "AfD", Color: "#75C0EB"},
	"bsw": {Label: "BSW", Color: "#BF3964"},
}

// canonicalOrder fixes the party sequence for signatures, legends and the
// threshold selector.
var canonicalOrder = []string{"spd", "cxu", "gru", "lin", "fdp", "afd", "bsw"}

// coalitionPool lists the parties eligible for coalition enumeration, in
// enumeration order.
var coalitionPool = []string{"cxu", "spd", "gru", "fdp", "lin", "bsw"}

// exclusiveAnchors never govern together.
var exclusiveAnchors = [2]string{"cxu", "lin"}

// scenarioCounts are the population sizes a session may generate.
var scenarioCounts = []int{100, 1000}

// CanonicalOrder returns a copy of the canonical party order.
func CanonicalOrder() []string { return slices.Clone(canonicalOrder) }

// CoalitionPool returns a copy of the coalition candidate pool.
func CoalitionPool() []string { return slices.Clone(coalitionPool) }

// ExclusiveAnchors returns the two parties that are never offered together.
func ExclusiveAnchors() (string, string) { return exclusiveAnchors[0], exclusiveAnchors[1] }

// ScenarioCounts returns the supported population sizes.
func ScenarioCounts() []int { return slices.Clone(scenarioCounts) }

// ValidScenarioCount reports whether n is a supported population size.
func ValidScenarioCount(n int) bool { return slices.Contains(scenarioCounts, n) }

// Label returns the display name of a party, or the upper-cased key for
// parties without metadata.
func Label(key string) string {
	if m, ok := meta[key]; ok {
		return m.Label
	}
	return strings.ToUpper(key)
}

// Color returns the party colour as a hex string.
func Color(key string) string {
	if m, ok := meta[key]; ok {
		return m.Color
	}
	return "#999999"
}

// Legend returns party metadata in canonical order.
func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(canonicalOrder))
	for _, key := range canonicalOrder {
		out = append(out, LegendEntry{Party: key, Meta: meta[key]})
	}
	return out
}

// LegendEntry pairs a party key with its metadata.
type LegendEntry struct {
	Party string `json:"party"`
	Meta
}
