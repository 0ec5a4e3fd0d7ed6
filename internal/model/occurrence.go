package model

import "time"

// Occurrence is one concrete dated instance of a task template. Occurrences
// are created fresh each run by the expander and consumed once by the
// assignment engine; only their aggregate effects on State persist.
type Occurrence struct {
	TaskKey      string
	TaskLabel    string
	Deck         string
	Category     Category
	PeopleNeeded int
	DueAt        time.Time
	WeekIndex    int

	// Weight is the per-slot cost (severity x effort multiplier). The total
	// weight of the occurrence is Weight x PeopleNeeded; the assignment
	// engine charges Weight to each assigned person so a two-person task is
	// split, not duplicated.
	Weight float64
}

// TotalWeight is the full cost of the occurrence across all slots.
func (o Occurrence) TotalWeight() float64 {
	return o.Weight * float64(o.PeopleNeeded)
}

// ScheduleItem is the stable output contract between the engine and its
// collaborators (CSV/JSON writers, terminal renderer, Discord bot).
type ScheduleItem struct {
	TaskKey      string   `json:"task_key"`
	TaskLabel    string   `json:"task"`
	Deck         string   `json:"deck"`
	Category     Category `json:"category"`
	Due          string   `json:"due"` // "2006-01-02 15:04"
	PeopleNeeded int      `json:"people_needed"`
	Assigned     []string `json:"assigned"`
	WeightTotal  float64  `json:"weight_total"`
}
