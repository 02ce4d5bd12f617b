// Package views derives task-specific orderings, highlights and texts from a
// scenario population. Every resolver is a pure function of the population
// and the selection state.
package views

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"pollscape/internal/simulation"
)

// ErrUnknownTask is returned for task ids that have no resolver.
var ErrUnknownTask = errors.New("unknown task")

// Task identifies one of the analytical perspectives.
type Task string

const (
	TaskLeader     Task = "leader"
	TaskLeadMargin Task = "lead-margin"
	TaskThreshold  Task = "threshold"
	TaskCoalition  Task = "coalition"
)

// TaskInfo describes a task for navigation.
type TaskInfo struct {
	ID    Task   `json:"id"`
	Label string `json:"label"`
}

// Tasks lists the tasks in navigation order.
var Tasks = []TaskInfo{
	{ID: TaskLeader, Label: "Führung"},
	{ID: TaskLeadMargin, Label: "Abstand an der Spitze"},
	{ID: TaskThreshold, Label: "5%-Hürde"},
	{ID: TaskCoalition, Label: "Mehrheiten"},
}

var taskAliases = map[string]Task{
	"task1":  TaskLeader,
	"task2a": TaskLeadMargin,
	"task2b": TaskThreshold,
	"task3":  TaskCoalition,
}

// ParseTask accepts a task id or one of its legacy aliases.
func ParseTask(s string) (Task, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := taskAliases[key]; ok {
		return t, nil
	}
	t := Task(key)
	if _, ok := resolvers[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTask, s)
	}
	return t, nil
}

// Selection carries the per-task choices of the user.
type Selection struct {
	Leader         string `json:"leader"`
	ThresholdParty string `json:"threshold_party"`
	Coalition      string `json:"coalition"`
}

// ControlKind names the selector a view needs next to the scenario count.
type ControlKind string

const (
	ControlNone      ControlKind = "none"
	ControlLeader    ControlKind = "leader"
	ControlThreshold ControlKind = "threshold"
	ControlCoalition ControlKind = "coalition"
)

// Controls describes the context selector of a view.
type Controls struct {
	Kind     ControlKind `json:"type"`
	Options  []string    `json:"options,omitempty"`
	Selected string      `json:"selected,omitempty"`
}

// View is the outcome of resolving a task.
type View struct {
	Task      Task
	Title     string
	Headline  string
	Detail    string
	Ordered   []*simulation.Scenario
	Highlight func(*simulation.Scenario) bool
	CardText  func(*simulation.Scenario) string
	Controls  Controls
}

// Resolver derives a view for one task.
type Resolver interface {
	Resolve(pop *simulation.Population, sel Selection) View
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(pop *simulation.Population, sel Selection) View

// Resolve calls f.
func (f ResolverFunc) Resolve(pop *simulation.Population, sel Selection) View {
	return f(pop, sel)
}

var resolvers = map[Task]Resolver{
	TaskLeader:     ResolverFunc(LeaderView),
	TaskLeadMargin: ResolverFunc(LeadMarginView),
	TaskThreshold:  ResolverFunc(ThresholdView),
	TaskCoalition:  ResolverFunc(CoalitionView),
}

// ResolverFor returns the resolver registered for a task.
func ResolverFor(t Task) (Resolver, error) {
	r, ok := resolvers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, t)
	}
	return r, nil
}

// Resolve derives the view of task t.
func Resolve(t Task, pop *simulation.Population, sel Selection) (View, error) {
	r, err := ResolverFor(t)
	if err != nil {
		return View{}, err
	}
	v := r.Resolve(pop, sel)
	v.Task = t
	return v, nil
}

// sortedCopy returns a stably sorted copy of the population's scenarios.
func sortedCopy(scenarios []*simulation.Scenario, less func(a, b *simulation.Scenario) bool) []*simulation.Scenario {
	out := slices.Clone(scenarios)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func countWhere(scenarios []*simulation.Scenario, pred func(*simulation.Scenario) bool) int {
	n := 0
	for _, s := range scenarios {
		if pred(s) {
			n++
		}
	}
	return n
}
