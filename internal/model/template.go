// Package model defines the data structures for houseduty's catalog,
// schedule, constraints, configuration, and persistent state.
package model

// Category is the fixed set of chore categories. Bans, preferences, due
// times, and bonus priority are all keyed by category.
type Category string

const (
	CategoryKM        Category = "k&m"
	CategoryBathrooms Category = "bathrooms"
	CategoryFloors    Category = "floors"
	CategoryLaundry   Category = "laundry"
	CategoryCommon    Category = "common"
	CategoryOther     Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryKM,
	CategoryBathrooms,
	CategoryFloors,
	CategoryLaundry,
	CategoryCommon,
	CategoryOther,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryKM, CategoryBathrooms, CategoryFloors, CategoryLaundry, CategoryCommon, CategoryOther:
		return true
	default:
		return false
	}
}

// Cadence determines how a template expands into dated occurrences.
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceNPerWeek Cadence = "n_per_week"
)

func (c Cadence) IsValid() bool {
	switch c {
	case CadenceWeekly, CadenceBiweekly, CadenceNPerWeek:
		return true
	default:
		return false
	}
}

// TaskTemplate defines one recurring chore. Templates are immutable once the
// catalog is built; Key is the stable identifier used for cross-run history
// and must never be reused for a different task meaning.
type TaskTemplate struct {
	Key          string
	Label        string
	Deck         string
	Category     Category
	PeopleNeeded int
	Cadence      Cadence

	// DaysOfWeek drives weekly/biweekly cadence. 0=Sunday .. 6=Saturday.
	// Empty means Saturday only.
	DaysOfWeek []int

	// TimesPerWeek and PreferredDays drive n_per_week cadence;
	// PreferredDays[:TimesPerWeek] forms the base occurrences.
	TimesPerWeek  int
	PreferredDays []int

	Severity         int     // 1-5
	EffortMultiplier float64 // > 0

	// Flexible23x marks the template eligible for the rotating bonus
	// occurrence when the house is large enough.
	Flexible23x bool
}

// Weight is the per-slot fairness cost of one occurrence of this template.
func (t TaskTemplate) Weight() float64 {
	return float64(t.Severity) * t.EffortMultiplier
}
