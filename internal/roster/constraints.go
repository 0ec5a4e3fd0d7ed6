package roster

import (
	"fmt"
	"log"
	"time"

	"houseduty/internal/calendar"
	"houseduty/internal/model"
)

// LoadConstraints reads constraints.json. A missing file yields the zero
// constraints (everything allowed, no caps).
func LoadConstraints(path string, logger *log.Logger) (model.Constraints, error) {
	var cons model.Constraints
	found, err := loadJSON(path, &cons)
	if err != nil {
		return model.Constraints{}, err
	}
	if !found && logger != nil {
		logger.Printf("INFO constraints file missing, using defaults path=%s", path)
	}
	return cons, nil
}

// LoadGroups reads brother_categories.json. A missing file yields empty
// groups.
func LoadGroups(path string, logger *log.Logger) (model.Groups, error) {
	var groups model.Groups
	found, err := loadJSON(path, &groups)
	if err != nil {
		return model.Groups{}, err
	}
	if !found && logger != nil {
		logger.Printf("INFO categories file missing, using empty groups path=%s", path)
	}
	return groups, nil
}

// ValidateConstraints cross-checks the constraints against the roster and
// the catalog's template keys. Unknown people and categories are hard
// errors; bans naming unknown task keys are only warned about.
func ValidateConstraints(cons model.Constraints, names []string, taskKeys map[string]bool, logger *log.Logger) error {
	people := make(map[string]bool, len(names))
	for _, n := range names {
		people[n] = true
	}

	checkPeople := func(field string, listed []string) error {
		for _, p := range listed {
			if !people[p] {
				return fmt.Errorf("%s: %q is not in the roster", field, p)
			}
		}
		return nil
	}
	if err := checkPeople("exempt_all", cons.ExemptAll); err != nil {
		return err
	}
	if err := checkPeople("on_call_only", cons.OnCallOnly); err != nil {
		return err
	}
	if len(cons.ExemptAll) >= len(names) {
		exempt := make(map[string]bool, len(cons.ExemptAll))
		for _, p := range cons.ExemptAll {
			exempt[p] = true
		}
		remaining := 0
		for _, n := range names {
			if !exempt[n] {
				remaining++
			}
		}
		if remaining == 0 {
			return fmt.Errorf("exempt_all covers the whole roster: nobody left to assign")
		}
	}

	if cons.MaxPerWeek != nil && *cons.MaxPerWeek < 1 {
		return fmt.Errorf("max_per_brother_per_week must be >= 1, got %d", *cons.MaxPerWeek)
	}
	if cons.MaxPerDay != nil && *cons.MaxPerDay < 1 {
		return fmt.Errorf("max_per_brother_per_day must be >= 1, got %d", *cons.MaxPerDay)
	}

	for person, cats := range cons.CategoryBans {
		if !people[person] {
			return fmt.Errorf("brother_category_bans: %q is not in the roster", person)
		}
		for _, c := range cats {
			if !c.IsValid() {
				return fmt.Errorf("brother_category_bans: %q: unknown category %q", person, c)
			}
		}
	}
	for person, cats := range cons.PreferredCategories {
		if !people[person] {
			return fmt.Errorf("brother_preferred_categories: %q is not in the roster", person)
		}
		for _, c := range cats {
			if !c.IsValid() {
				return fmt.Errorf("brother_preferred_categories: %q: unknown category %q", person, c)
			}
		}
	}
	for person, keys := range cons.TaskBans {
		if !people[person] {
			return fmt.Errorf("brother_task_bans: %q is not in the roster", person)
		}
		if logger != nil && taskKeys != nil {
			for _, k := range keys {
				if !taskKeys[k] {
					logger.Printf("WARN ban references unknown task person=%s task=%q", person, k)
				}
			}
		}
	}
	for person := range cons.UnavailableDates {
		if !people[person] {
			return fmt.Errorf("brother_unavailable_dates: %q is not in the roster", person)
		}
	}
	return nil
}

// ValidateGroups checks that every grouped name appears in the roster.
func ValidateGroups(groups model.Groups, names []string) error {
	people := make(map[string]bool, len(names))
	for _, n := range names {
		people[n] = true
	}
	for _, set := range [][]string{groups.Actives, groups.JuniorActives} {
		for _, p := range set {
			if !people[p] {
				return fmt.Errorf("categories file: %q is not in the roster", p)
			}
		}
	}
	return nil
}

// IsUnavailable reports whether person is unavailable on the given due date.
// Bare entries match exactly one date; ranges are inclusive on both ends.
// Malformed entries are skipped, treating the person as available.
func IsUnavailable(cons model.Constraints, person string, due time.Time) bool {
	day := calendar.Midnight(due)
	for _, entry := range cons.UnavailableDates[person] {
		if entry.Date != "" {
			d, err := calendar.ParseDate(entry.Date)
			if err != nil {
				continue
			}
			if day.Equal(calendar.Midnight(d)) {
				return true
			}
			continue
		}
		start, err := calendar.ParseDate(entry.Start)
		if err != nil {
			continue
		}
		end, err := calendar.ParseDate(entry.End)
		if err != nil {
			continue
		}
		if !day.Before(calendar.Midnight(start)) && !day.After(calendar.Midnight(end)) {
			return true
		}
	}
	return false
}
