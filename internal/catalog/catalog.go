// Package catalog holds the declarative chore catalog and its
// construction-time validation.
package catalog

import (
	"houseduty/internal/model"
)

// Build assembles the full task catalog. Cadence choices, severity
// overrides, and the base 2x days come from configuration; everything else
// is fixed data. Callers must run Validate on the result before using it.
func Build(cfg model.Config) []model.TaskTemplate {
	base2x := cfg.Bonus.Base2xDays
	overrides := cfg.SeverityOverrides

	var templates []model.TaskTemplate
	add := func(t model.TaskTemplate) {
		if t.Severity == 0 {
			t.Severity = DefaultSeverity(t.Label, t.Category)
		}
		if sev, ok := overrides[t.Key]; ok {
			t.Severity = sev
		} else if sev, ok := overrides[t.Label]; ok {
			t.Severity = sev
		}
		if t.EffortMultiplier == 0 {
			t.EffortMultiplier = 1.0
		}
		templates = append(templates, t)
	}

	// -------- Zero Deck --------
	add(model.TaskTemplate{
		Key: "ZD_RATSKELLER_FLOOR", Deck: "Zero Deck", Label: "Ratskeller Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, EffortMultiplier: 1.1, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "ZD_GAMEX_FLOOR", Deck: "Zero Deck", Label: "Game Room + X-Room Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, EffortMultiplier: 1.1, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "ZD_LAUNDRY", Deck: "Zero Deck", Label: "Laundry Room Clean",
		Category: model.CategoryLaundry, PeopleNeeded: 1, Cadence: model.CadenceWeekly,
		DaysOfWeek: []int{6},
	})

	// -------- First Deck --------
	add(model.TaskTemplate{
		Key: "FD_KM_SUN", Deck: "First Deck", Label: "k&m", Category: model.CategoryKM,
		PeopleNeeded: 3, Cadence: model.CadenceWeekly, DaysOfWeek: []int{0}, EffortMultiplier: 1.2,
	})
	for _, km := range []struct {
		key string
		day int
	}{
		{"FD_KM_MON", 1}, {"FD_KM_TUE", 2}, {"FD_KM_WED", 3}, {"FD_KM_THU", 4},
	} {
		add(model.TaskTemplate{
			Key: km.key, Deck: "First Deck", Label: "k&m", Category: model.CategoryKM,
			PeopleNeeded: 2, Cadence: model.CadenceWeekly, DaysOfWeek: []int{km.day},
			EffortMultiplier: 1.1,
		})
	}
	add(model.TaskTemplate{
		Key: "FD_LIVING_FLOOR", Deck: "First Deck", Label: "Living Room Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, EffortMultiplier: 1.05, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "FD_DINING_FLOOR", Deck: "First Deck", Label: "Dining Room Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, EffortMultiplier: 1.05, Flexible23x: true,
	})

	// -------- Second Deck --------
	add(model.TaskTemplate{
		Key: "SD_HALL_FLOOR", Deck: "Second Deck", Label: "Hallway Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "SD_SINKS", Deck: "Second Deck", Label: "Sinks Clean/Sweep Bathroom",
		Category: model.CategoryBathrooms, PeopleNeeded: 1, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "SD_TOILETS", Deck: "Second Deck", Label: "Toilets Clean/Mop Bathroom",
		Category: model.CategoryBathrooms, PeopleNeeded: 1, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "SD_SHOWERS", Deck: "Second Deck", Label: "Showers Clean",
		Category: model.CategoryBathrooms, PeopleNeeded: 2, Cadence: model.CadenceWeekly,
		DaysOfWeek: []int{6}, EffortMultiplier: 1.2,
	})
	add(model.TaskTemplate{
		Key: "SD_STAIRS_FLOOR", Deck: "Second Deck", Label: "Stairs Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, EffortMultiplier: 1.1, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "SD_LROOM", Deck: "Second Deck", Label: "L-Room Clean",
		Category: model.CategoryCommon, PeopleNeeded: 1, Cadence: model.CadenceWeekly,
		DaysOfWeek: []int{6},
	})
	add(model.TaskTemplate{
		Key: "SD_LIBRARY", Deck: "Second Deck", Label: "Library Clean",
		Category: model.CategoryCommon, PeopleNeeded: 1, Cadence: model.CadenceWeekly,
		DaysOfWeek: []int{6},
	})
	add(model.TaskTemplate{
		Key: "SD_BRASSO", Deck: "Second Deck", Label: "Brasso", Category: model.CategoryOther,
		PeopleNeeded: 1, Cadence: cfg.Cadences.BrassoSecondDeck, DaysOfWeek: []int{6}, Severity: 3,
	})
	add(model.TaskTemplate{
		Key: "SD_BLUE", Deck: "Second Deck", Label: "Blue", Category: model.CategoryOther,
		PeopleNeeded: 1, Cadence: model.CadenceBiweekly, DaysOfWeek: []int{6}, Severity: 3,
	})

	// -------- Third Deck --------
	add(model.TaskTemplate{
		Key: "TD_HALL_FLOOR", Deck: "Third Deck", Label: "Hallway Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "TD_SINKS", Deck: "Third Deck", Label: "Sinks Clean/Sweep Bathroom",
		Category: model.CategoryBathrooms, PeopleNeeded: 1, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "TD_TOILETS", Deck: "Third Deck", Label: "Toilets Clean/Mop Bathroom",
		Category: model.CategoryBathrooms, PeopleNeeded: 1, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "TD_SHOWERS", Deck: "Third Deck", Label: "Showers Clean",
		Category: model.CategoryBathrooms, PeopleNeeded: 2, Cadence: model.CadenceWeekly,
		DaysOfWeek: []int{6}, EffortMultiplier: 1.2,
	})
	add(model.TaskTemplate{
		Key: "TD_STAIRS_FLOOR", Deck: "Third Deck", Label: "Stairs Sweep+Mop",
		Category: model.CategoryFloors, PeopleNeeded: 2, Cadence: model.CadenceNPerWeek,
		TimesPerWeek: 2, PreferredDays: base2x, EffortMultiplier: 1.1, Flexible23x: true,
	})
	add(model.TaskTemplate{
		Key: "TD_BRASSO", Deck: "Third Deck", Label: "Brasso", Category: model.CategoryOther,
		PeopleNeeded: 1, Cadence: cfg.Cadences.BrassoThirdDeck, DaysOfWeek: []int{6}, Severity: 3,
	})
	add(model.TaskTemplate{
		Key: "TD_BLUE", Deck: "Third Deck", Label: "Blue", Category: model.CategoryOther,
		PeopleNeeded: 1, Cadence: model.CadenceBiweekly, DaysOfWeek: []int{6}, Severity: 3,
	})

	return templates
}

// DefaultSeverity infers a 1-5 severity from the task's label and category
// when the catalog entry does not set one explicitly.
func DefaultSeverity(label string, category model.Category) int {
	if label == "k&m" {
		return 5
	}
	switch category {
	case model.CategoryBathrooms:
		return 4
	case model.CategoryFloors:
		return 3
	case model.CategoryLaundry:
		return 2
	case model.CategoryCommon:
		return 3
	default:
		return 3
	}
}
