package catalog

import (
	"fmt"

	"houseduty/internal/model"
)

// Validate enforces the catalog invariants: unique keys, known categories
// and cadences, day indices in range, and cadence-specific fields present.
// Violations are configuration errors and abort the run.
func Validate(templates []model.TaskTemplate) error {
	if len(templates) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		if t.Key == "" {
			return fmt.Errorf("template %q: key must be non-empty", t.Label)
		}
		if seen[t.Key] {
			return fmt.Errorf("duplicate template key %q", t.Key)
		}
		seen[t.Key] = true

		if t.Label == "" {
			return fmt.Errorf("template %s: label must be non-empty", t.Key)
		}
		if t.Deck == "" {
			return fmt.Errorf("template %s: deck must be non-empty", t.Key)
		}
		if !t.Category.IsValid() {
			return fmt.Errorf("template %s: unknown category %q", t.Key, t.Category)
		}
		if t.PeopleNeeded < 1 {
			return fmt.Errorf("template %s: people_needed must be >= 1, got %d", t.Key, t.PeopleNeeded)
		}
		if !t.Cadence.IsValid() {
			return fmt.Errorf("template %s: unknown cadence %q", t.Key, t.Cadence)
		}
		if t.Severity < 1 || t.Severity > 5 {
			return fmt.Errorf("template %s: severity must be 1-5, got %d", t.Key, t.Severity)
		}
		if t.EffortMultiplier <= 0 {
			return fmt.Errorf("template %s: effort_multiplier must be positive, got %g", t.Key, t.EffortMultiplier)
		}

		switch t.Cadence {
		case model.CadenceWeekly, model.CadenceBiweekly:
			for _, d := range t.DaysOfWeek {
				if d < 0 || d > 6 {
					return fmt.Errorf("template %s: day %d out of range 0-6", t.Key, d)
				}
			}
		case model.CadenceNPerWeek:
			if t.TimesPerWeek < 1 || t.TimesPerWeek > 7 {
				return fmt.Errorf("template %s: times_per_week must be 1-7, got %d", t.Key, t.TimesPerWeek)
			}
			if len(t.PreferredDays) == 0 {
				return fmt.Errorf("template %s: preferred_days required for n_per_week cadence", t.Key)
			}
			for _, d := range t.PreferredDays {
				if d < 0 || d > 6 {
					return fmt.Errorf("template %s: day %d out of range 0-6", t.Key, d)
				}
			}
		}

		if t.Flexible23x && t.Cadence != model.CadenceNPerWeek {
			return fmt.Errorf("template %s: flexible_2_3x only applies to n_per_week cadence", t.Key)
		}
	}
	return nil
}
