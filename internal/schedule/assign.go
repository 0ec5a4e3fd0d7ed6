package schedule

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"houseduty/internal/calendar"
	"houseduty/internal/model"
	"houseduty/internal/roster"
)

// jitterScale keeps the tie-break noise strictly below the smallest
// meaningful penalty increment so randomness never overrides fairness.
const jitterScale = 0.01

// AssignParams carries the assignment knobs and the run's identity.
type AssignParams struct {
	Fairness      model.FairnessConfig
	RandomSeed    int64
	CurrentSunday time.Time
}

// Assign staffs every occurrence in order, maintaining running fairness
// counters, and returns the schedule plus the evolved state snapshot. The
// input state is not mutated. An occurrence that cannot be fully staffed
// aborts the run.
func Assign(
	occs []model.Occurrence,
	names []string,
	cons model.Constraints,
	groups model.Groups,
	state model.State,
	p AssignParams,
) ([]model.ScheduleItem, model.State, error) {
	exempt := toSet(cons.ExemptAll)
	onCall := toSet(cons.OnCallOnly)
	actives := toSet(groups.Actives)

	var normalPool, onCallPool []string
	for _, n := range names {
		if exempt[n] {
			continue
		}
		if onCall[n] {
			onCallPool = append(onCallPool, n)
		} else {
			normalPool = append(normalPool, n)
		}
	}
	if len(normalPool)+len(onCallPool) == 0 {
		return nil, model.State{}, fmt.Errorf("every person is exempted: remove someone from exempt_all")
	}

	rng := rand.New(rand.NewSource(p.RandomSeed))

	loads := make(map[string]float64)
	dayCounts := make(map[string]map[string]int) // person -> date -> count
	runTaskCounts := make(map[string]map[string]int)
	runWeekCounts := make(map[string]int)

	underCaps := func(person string, day string) bool {
		if cons.MaxPerWeek != nil && runWeekCounts[person] >= *cons.MaxPerWeek {
			return false
		}
		if cons.MaxPerDay != nil && dayCounts[person][day] >= *cons.MaxPerDay {
			return false
		}
		return true
	}

	banned := func(person string, occ model.Occurrence) bool {
		for _, c := range cons.CategoryBans[person] {
			if c == occ.Category {
				return true
			}
		}
		for _, k := range cons.TaskBans[person] {
			if k == occ.TaskKey {
				return true
			}
		}
		return false
	}

	items := make([]model.ScheduleItem, 0, len(occs))
	for _, occ := range occs {
		day := calendar.Midnight(occ.DueAt).Format("2006-01-02")
		chosen := make(map[string]bool, occ.PeopleNeeded)
		assigned := make([]string, 0, occ.PeopleNeeded)

		// Shared hard filters for every pool tier.
		eligible := func(person string, withCaps bool) bool {
			if chosen[person] || banned(person, occ) {
				return false
			}
			if roster.IsUnavailable(cons, person, occ.DueAt) {
				return false
			}
			if withCaps && !underCaps(person, day) {
				return false
			}
			return true
		}
		collect := func(pool []string, withCaps bool) []string {
			var out []string
			for _, person := range pool {
				if eligible(person, withCaps) {
					out = append(out, person)
				}
			}
			return out
		}

		for slot := 0; slot < occ.PeopleNeeded; slot++ {
			candidates := collect(normalPool, true)
			if len(candidates) == 0 {
				candidates = collect(onCallPool, true)
			}
			if len(candidates) == 0 {
				// Escape valve: someone must do it, caps no longer apply.
				candidates = collect(append(append([]string{}, normalPool...), onCallPool...), false)
			}
			if len(candidates) == 0 {
				return nil, model.State{}, fmt.Errorf(
					"no eligible person for %s (%s) due %s: check constraints",
					occ.TaskKey, occ.TaskLabel, occ.DueAt.Format("2006-01-02"),
				)
			}

			// Multi-person tasks get one active in the first slot when the
			// house tracks an actives group and one is eligible.
			if slot == 0 && occ.PeopleNeeded >= 2 && len(actives) > 0 {
				var activeCandidates []string
				for _, person := range candidates {
					if actives[person] {
						activeCandidates = append(activeCandidates, person)
					}
				}
				if len(activeCandidates) > 0 {
					candidates = activeCandidates
				}
			}

			best := ""
			bestScore := 0.0
			for _, person := range candidates {
				histCount := state.HistoryCount(person, occ.TaskKey) + runTaskCounts[person][occ.TaskKey]
				score := loads[person] +
					float64(histCount)*p.Fairness.RepeatTaskPenalty +
					float64(state.LastWeekCount(person, occ.TaskKey))*p.Fairness.RecentWeekPenalty +
					float64(dayCounts[person][day])*p.Fairness.SameDayStackPenalty +
					preference(cons, person, occ.Category, p.Fairness.PreferenceBonus) +
					rng.Float64()*jitterScale
				if best == "" || score < bestScore {
					best = person
					bestScore = score
				}
			}

			chosen[best] = true
			assigned = append(assigned, best)
			loads[best] += occ.Weight
			incr(dayCounts, best, day)
			incr(runTaskCounts, best, occ.TaskKey)
			runWeekCounts[best]++
		}

		items = append(items, model.ScheduleItem{
			TaskKey:      occ.TaskKey,
			TaskLabel:    occ.TaskLabel,
			Deck:         occ.Deck,
			Category:     occ.Category,
			Due:          occ.DueAt.Format("2006-01-02 15:04"),
			PeopleNeeded: occ.PeopleNeeded,
			Assigned:     assigned,
			WeightTotal:  round2(occ.TotalWeight()),
		})
	}

	next := state.Clone()
	if next.TaskCounts == nil {
		next.TaskCounts = make(map[string]map[string]int)
	}
	next.LastWeekTasks = make(map[string]map[string]int, len(runTaskCounts))
	for person, counts := range runTaskCounts {
		if next.TaskCounts[person] == nil {
			next.TaskCounts[person] = make(map[string]int, len(counts))
		}
		week := make(map[string]int, len(counts))
		for key, n := range counts {
			next.TaskCounts[person][key] += n
			week[key] = n
		}
		next.LastWeekTasks[person] = week
	}
	next.LastRunSunday = p.CurrentSunday.Format("2006-01-02")

	return items, next, nil
}

func preference(cons model.Constraints, person string, cat model.Category, bonusValue float64) float64 {
	for _, c := range cons.PreferredCategories[person] {
		if c == cat {
			return bonusValue
		}
	}
	return 0
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, v := range list {
		set[v] = true
	}
	return set
}

func incr(m map[string]map[string]int, person, key string) {
	if m[person] == nil {
		m[person] = make(map[string]int)
	}
	m[person][key]++
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
