package roster

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseduty/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "brothers.txt", `
# roster
Alex
Bob

Charlie
Bob
  Dave
`)
	names, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex", "Bob", "Charlie", "Dave"}, names)
}

func TestLoad_EmptyRoster(t *testing.T) {
	path := writeFile(t, "brothers.txt", "# only comments\n\n")
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing roster file")
}

func TestSignature_OrderIndependent(t *testing.T) {
	a := Signature([]string{"Charlie", "Alex", "Bob"})
	b := Signature([]string{"Bob", "Charlie", "Alex"})
	assert.Equal(t, a, b)
	assert.Equal(t, "Alex,Bob,Charlie", a)
}

func TestLoadConstraints(t *testing.T) {
	path := writeFile(t, "constraints.json", `{
		"exempt_all": ["Alex"],
		"max_per_brother_per_day": 2,
		"brother_category_bans": {"Bob": ["bathrooms"]},
		"brother_unavailable_dates": {
			"Charlie": ["2026-01-27", {"start": "2026-02-15", "end": "2026-02-22"}]
		}
	}`)
	cons, err := LoadConstraints(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alex"}, cons.ExemptAll)
	require.NotNil(t, cons.MaxPerDay)
	assert.Equal(t, 2, *cons.MaxPerDay)
	assert.Nil(t, cons.MaxPerWeek)
	assert.Equal(t, []model.Category{model.CategoryBathrooms}, cons.CategoryBans["Bob"])
	require.Len(t, cons.UnavailableDates["Charlie"], 2)
	assert.Equal(t, "2026-01-27", cons.UnavailableDates["Charlie"][0].Date)
	assert.Equal(t, "2026-02-15", cons.UnavailableDates["Charlie"][1].Start)
}

func TestLoadConstraints_MissingFile(t *testing.T) {
	cons, err := LoadConstraints(filepath.Join(t.TempDir(), "nope.json"), nil)
	require.NoError(t, err)
	assert.Empty(t, cons.ExemptAll)
	assert.Nil(t, cons.MaxPerDay)
}

func TestValidateConstraints(t *testing.T) {
	names := []string{"Alex", "Bob"}
	one := 1
	zero := 0

	testCases := []struct {
		name    string
		cons    model.Constraints
		wantErr string
	}{
		{"empty ok", model.Constraints{}, ""},
		{"caps ok", model.Constraints{MaxPerWeek: &one, MaxPerDay: &one}, ""},
		{"unknown exempt", model.Constraints{ExemptAll: []string{"Zed"}}, "exempt_all"},
		{"whole roster exempt", model.Constraints{ExemptAll: []string{"Alex", "Bob"}}, "whole roster"},
		{"zero week cap", model.Constraints{MaxPerWeek: &zero}, "max_per_brother_per_week"},
		{
			"unknown ban category",
			model.Constraints{CategoryBans: map[string][]model.Category{"Alex": {"garage"}}},
			"unknown category",
		},
		{
			"unknown preference person",
			model.Constraints{PreferredCategories: map[string][]model.Category{"Zed": {"floors"}}},
			"not in the roster",
		},
		{
			"unknown unavailable person",
			model.Constraints{UnavailableDates: map[string][]model.UnavailableEntry{"Zed": {}}},
			"not in the roster",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConstraints(tc.cons, names, nil, nil)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidateGroups(t *testing.T) {
	names := []string{"Alex", "Bob"}
	assert.NoError(t, ValidateGroups(model.Groups{Actives: []string{"Alex"}}, names))
	assert.Error(t, ValidateGroups(model.Groups{Actives: []string{"Zed"}}, names))
}

func TestIsUnavailable_SingleDate(t *testing.T) {
	cons := model.Constraints{
		UnavailableDates: map[string][]model.UnavailableEntry{
			"John": {{Date: "2026-01-27"}},
		},
	}
	due := time.Date(2026, 1, 27, 23, 59, 0, 0, time.UTC)

	assert.True(t, IsUnavailable(cons, "John", due))
	assert.False(t, IsUnavailable(cons, "John", due.AddDate(0, 0, 1)))
	assert.False(t, IsUnavailable(cons, "Jane", due))
}

func TestIsUnavailable_Range(t *testing.T) {
	cons := model.Constraints{
		UnavailableDates: map[string][]model.UnavailableEntry{
			"Sarah": {{Start: "2026-02-15", End: "2026-02-22"}},
		},
	}
	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 0, 0, time.UTC)
	}

	assert.False(t, IsUnavailable(cons, "Sarah", at(2026, 2, 14)))
	assert.True(t, IsUnavailable(cons, "Sarah", at(2026, 2, 15)))
	assert.True(t, IsUnavailable(cons, "Sarah", at(2026, 2, 18)))
	assert.True(t, IsUnavailable(cons, "Sarah", at(2026, 2, 22)))
	assert.False(t, IsUnavailable(cons, "Sarah", at(2026, 2, 23)))
}

func TestIsUnavailable_MalformedEntriesIgnored(t *testing.T) {
	cons := model.Constraints{
		UnavailableDates: map[string][]model.UnavailableEntry{
			"Tom": {
				{Date: "never"},
				{Start: "2026-02-30", End: "also bad"},
				{Date: "2026-03-01"},
			},
		},
	}
	assert.True(t, IsUnavailable(cons, "Tom", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.False(t, IsUnavailable(cons, "Tom", time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC)))
}
