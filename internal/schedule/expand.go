// Package schedule expands the chore catalog into dated occurrences and
// assigns people to them under constraints and fairness scoring.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"houseduty/internal/bonus"
	"houseduty/internal/calendar"
	"houseduty/internal/model"
)

// BonusLabelSuffix marks bonus-induced occurrences in their display label.
// The task key is left untouched so history stays keyed correctly.
const BonusLabelSuffix = " [BONUS]"

// ExpandParams carries everything occurrence expansion needs beyond the
// catalog itself.
type ExpandParams struct {
	AnchorSunday time.Time
	StartSunday  time.Time
	NumWeeks     int

	HouseSize       int
	RosterSignature string
	BonusCounts     map[string]int
	Bonus           bonus.Params
	BonusDay        int // day-of-week for the extra occurrence, default Friday

	DueTimes map[model.Category]calendar.TimeOfDay
}

// Expand turns templates into the ordered occurrence list for the whole
// window. It returns the occurrences and the bonus counters after all
// per-week selections; the input counters are not mutated.
func Expand(templates []model.TaskTemplate, p ExpandParams) ([]model.Occurrence, map[string]int, error) {
	counts := make(map[string]int, len(p.BonusCounts))
	for k, v := range p.BonusCounts {
		counts[k] = v
	}

	var occs []model.Occurrence
	for w := 0; w < p.NumWeeks; w++ {
		weekStart := calendar.WeekStart(p.StartSunday, w)
		weekIndex := calendar.WeekIndexFromAnchor(p.AnchorSunday, weekStart)

		var bonusKeys map[string]bool
		bonusKeys, counts = bonus.Choose(
			templates, p.HouseSize, p.AnchorSunday, weekStart, p.RosterSignature, counts, p.Bonus,
		)

		for _, tmpl := range templates {
			dueTime, ok := p.DueTimes[tmpl.Category]
			if !ok {
				dueTime = calendar.TimeOfDay{Hour: 23, Minute: 59}
			}

			switch tmpl.Cadence {
			case model.CadenceWeekly, model.CadenceBiweekly:
				if tmpl.Cadence == model.CadenceBiweekly && weekIndex%2 != 0 {
					continue
				}
				days := tmpl.DaysOfWeek
				if len(days) == 0 {
					days = []int{6}
				}
				for _, d := range calendar.UniqueSortedDays(days) {
					occs = append(occs, occurrenceFor(tmpl, tmpl.Label, weekStart, d, dueTime, weekIndex))
				}

			case model.CadenceNPerWeek:
				times := tmpl.TimesPerWeek
				if times > len(tmpl.PreferredDays) {
					times = len(tmpl.PreferredDays)
				}
				baseDays := calendar.UniqueSortedDays(tmpl.PreferredDays[:times])
				for _, d := range baseDays {
					occs = append(occs, occurrenceFor(tmpl, tmpl.Label, weekStart, d, dueTime, weekIndex))
				}
				if bonusKeys[tmpl.Key] && !containsDay(baseDays, p.BonusDay) {
					occs = append(occs, occurrenceFor(tmpl, tmpl.Label+BonusLabelSuffix, weekStart, p.BonusDay, dueTime, weekIndex))
				}

			default:
				return nil, nil, fmt.Errorf("template %s: unknown cadence %q", tmpl.Key, tmpl.Cadence)
			}
		}
	}

	// Deterministic order: the assignment scoring is path-dependent, so the
	// engine must always see the same sequence for the same inputs.
	sort.SliceStable(occs, func(i, j int) bool {
		a, b := occs[i], occs[j]
		if !a.DueAt.Equal(b.DueAt) {
			return a.DueAt.Before(b.DueAt)
		}
		if a.TotalWeight() != b.TotalWeight() {
			return a.TotalWeight() > b.TotalWeight()
		}
		if a.Deck != b.Deck {
			return a.Deck < b.Deck
		}
		if a.TaskLabel != b.TaskLabel {
			return a.TaskLabel < b.TaskLabel
		}
		return a.TaskKey < b.TaskKey
	})

	return occs, counts, nil
}

func occurrenceFor(tmpl model.TaskTemplate, label string, weekStart time.Time, day int, dueTime calendar.TimeOfDay, weekIndex int) model.Occurrence {
	return model.Occurrence{
		TaskKey:      tmpl.Key,
		TaskLabel:    label,
		Deck:         tmpl.Deck,
		Category:     tmpl.Category,
		PeopleNeeded: tmpl.PeopleNeeded,
		DueAt:        calendar.On(weekStart, day, dueTime),
		WeekIndex:    weekIndex,
		Weight:       tmpl.Weight(),
	}
}

func containsDay(days []int, d int) bool {
	for _, v := range days {
		if v == d {
			return true
		}
	}
	return false
}
