package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseduty/internal/catalog"
	"houseduty/internal/config"
	"houseduty/internal/model"
)

func TestRun_EndToEnd(t *testing.T) {
	roster := []string{"Alex", "Bob", "Charlie", "Dave"}
	templates := []model.TaskTemplate{{
		Key: "T1", Label: "Floors", Deck: "Other", Category: model.CategoryFloors,
		PeopleNeeded: 1, Cadence: model.CadenceWeekly, DaysOfWeek: []int{0},
		Severity: 3, EffortMultiplier: 1.0,
	}}

	in := Inputs{
		Config:      config.Default(),
		Templates:   templates,
		Names:       roster,
		State:       model.State{},
		StartSunday: time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC),
		NumWeeks:    1,
		RandomSeed:  42,
	}

	res, err := Run(in, nil)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, "T1", item.TaskKey)
	assert.Equal(t, "2026-01-18 23:59", item.Due)
	require.Len(t, item.Assigned, 1)
	assert.Contains(t, roster, item.Assigned[0])

	// First run adopts the start Sunday as anchor and records the history.
	assert.Equal(t, "2026-01-18", res.State.AnchorSunday)
	assert.Equal(t, "2026-01-18", res.State.LastRunSunday)
	assert.Equal(t, 1, res.State.TaskCounts[item.Assigned[0]]["T1"])
}

func TestRun_Idempotent(t *testing.T) {
	in := Inputs{
		Config:      config.Default(),
		Templates:   nil,
		Names:       []string{"Alex", "Bob", "Charlie", "Dave", "Eve", "Frank"},
		State:       model.State{},
		StartSunday: time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC),
		NumWeeks:    2,
		RandomSeed:  7,
	}
	in.Templates = append(in.Templates,
		model.TaskTemplate{
			Key: "W1", Label: "k&m", Deck: "First Deck", Category: model.CategoryKM,
			PeopleNeeded: 2, Cadence: model.CadenceWeekly, DaysOfWeek: []int{1, 4},
			Severity: 5, EffortMultiplier: 1.1,
		},
		model.TaskTemplate{
			Key: "B1", Label: "Brasso", Deck: "Second Deck", Category: model.CategoryOther,
			PeopleNeeded: 1, Cadence: model.CadenceBiweekly, DaysOfWeek: []int{6},
			Severity: 3, EffortMultiplier: 1.0,
		},
		model.TaskTemplate{
			Key: "N1", Label: "Hallway", Deck: "Third Deck", Category: model.CategoryFloors,
			PeopleNeeded: 2, Cadence: model.CadenceNPerWeek, TimesPerWeek: 2,
			PreferredDays: []int{2, 4}, Severity: 3, EffortMultiplier: 1.1, Flexible23x: true,
		},
	)

	first, err := Run(in, nil)
	require.NoError(t, err)
	second, err := Run(in, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.State, second.State)
}

func TestRun_AnchorStableAcrossRuns(t *testing.T) {
	in := Inputs{
		Config: config.Default(),
		Templates: []model.TaskTemplate{{
			Key: "B1", Label: "Blue", Deck: "Second Deck", Category: model.CategoryOther,
			PeopleNeeded: 1, Cadence: model.CadenceBiweekly, DaysOfWeek: []int{6},
			Severity: 3, EffortMultiplier: 1.0,
		}},
		Names:       []string{"Alex", "Bob"},
		State:       model.State{},
		StartSunday: time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC),
		NumWeeks:    1,
		RandomSeed:  42,
	}

	week0, err := Run(in, nil)
	require.NoError(t, err)
	require.Len(t, week0.Items, 1, "anchor week is even, biweekly task runs")

	// Next weekly run starts one week later but keeps the original anchor,
	// so the biweekly task skips.
	in.State = week0.State
	in.StartSunday = in.StartSunday.AddDate(0, 0, 7)
	week1, err := Run(in, nil)
	require.NoError(t, err)
	assert.Empty(t, week1.Items)
	assert.Equal(t, "2026-01-18", week1.State.AnchorSunday)

	in.State = week1.State
	in.StartSunday = in.StartSunday.AddDate(0, 0, 7)
	week2, err := Run(in, nil)
	require.NoError(t, err)
	assert.Len(t, week2.Items, 1)
}

func TestRun_BonusThresholdCountsWholeHouse(t *testing.T) {
	names := []string{
		"Alex", "Bob", "Charlie", "Dave", "Eve", "Frank", "Grace",
		"Heidi", "Ivan", "Judy", "Ken", "Laura", "Mallory", "Nick",
	}

	in := Inputs{
		Config: config.Default(),
		Templates: []model.TaskTemplate{{
			Key: "N1", Label: "Hallway", Deck: "Second Deck", Category: model.CategoryFloors,
			PeopleNeeded: 1, Cadence: model.CadenceNPerWeek, TimesPerWeek: 2,
			PreferredDays: []int{2, 4}, Severity: 3, EffortMultiplier: 1.0, Flexible23x: true,
		}},
		Names: names,
		// Exemptions shrink who can work, not how big the house is; a
		// 14-person house stays at the default bonus threshold.
		Constraints: model.Constraints{ExemptAll: []string{"Mallory", "Nick"}},
		State:       model.State{},
		StartSunday: time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC),
		NumWeeks:    1,
		RandomSeed:  42,
	}

	res, err := Run(in, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.State.BonusCounts["N1"])
	require.Len(t, res.Items, 3)

	bonus := 0
	for _, item := range res.Items {
		if item.TaskLabel == "Hallway [BONUS]" {
			bonus++
		}
	}
	assert.Equal(t, 1, bonus)
}

func TestRun_FullCatalogWindow(t *testing.T) {
	cfg := config.Default()
	names := []string{
		"Alex", "Bob", "Charlie", "Dave", "Eve", "Frank", "Grace", "Heidi",
		"Ivan", "Judy", "Ken", "Laura", "Mallory", "Nick", "Olivia", "Peggy",
	}

	in := Inputs{
		Config:      cfg,
		Names:       names,
		State:       model.State{},
		StartSunday: time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC),
		NumWeeks:    1,
		RandomSeed:  42,
	}
	in.Templates = catalog.Build(cfg)

	res, err := Run(in, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	assert.Equal(t, res.Occurrences, len(res.Items))

	// Every occurrence fully staffed with distinct people.
	for _, item := range res.Items {
		assert.Len(t, item.Assigned, item.PeopleNeeded, "task %s", item.TaskKey)
		seen := map[string]bool{}
		for _, p := range item.Assigned {
			assert.False(t, seen[p])
			seen[p] = true
		}
	}

	// Bonus rotation ran: house of 16 is above the default threshold.
	total := 0
	for _, n := range res.State.BonusCounts {
		total += n
	}
	assert.Greater(t, total, 0)
}
