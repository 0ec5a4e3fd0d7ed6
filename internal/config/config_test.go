package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseduty/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
scheduling:
  weeks_to_generate: 2
  random_seed: 7
fairness:
  repeat_task_penalty: 2.0
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Scheduling.WeeksToGenerate)
	assert.Equal(t, int64(7), cfg.Scheduling.RandomSeed)
	assert.Equal(t, 2.0, cfg.Fairness.RepeatTaskPenalty)

	// Untouched sections keep defaults.
	assert.Equal(t, 14, cfg.Scheduling.BonusMinRoster)
	assert.Equal(t, 0.60, cfg.Fairness.RecentWeekPenalty)
	assert.Equal(t, model.CadenceBiweekly, cfg.Cadences.BrassoSecondDeck)
	assert.Equal(t, "23:59", cfg.DueTimes["bathrooms"])
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "scheduling: [not a map")
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*model.Config)
		wantErr string
	}{
		{"valid defaults", func(c *model.Config) {}, ""},
		{"zero weeks", func(c *model.Config) { c.Scheduling.WeeksToGenerate = 0 }, "weeks_to_generate"},
		{"share above one", func(c *model.Config) { c.Scheduling.BonusMaxTaskShare = 1.5 }, "max_task_share"},
		{"bad brasso cadence", func(c *model.Config) { c.Cadences.BrassoThirdDeck = model.CadenceNPerWeek }, "brasso_third_deck"},
		{"bad due time", func(c *model.Config) { c.DueTimes["floors"] = "25:00" }, "floors"},
		{"unknown due time category", func(c *model.Config) { c.DueTimes["garage"] = "23:59" }, "garage"},
		{"bonus day out of range", func(c *model.Config) { c.Bonus.BonusDay = 7 }, "bonus_3rd_day"},
		{"base day out of range", func(c *model.Config) { c.Bonus.Base2xDays = []int{2, 9} }, "base_2x_days"},
		{"bad log level", func(c *model.Config) { c.Logging.Level = "trace" }, "logging level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := Validate(cfg, nil)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestDueTimes(t *testing.T) {
	times, err := DueTimes(Default())
	require.NoError(t, err)
	require.Len(t, times, 6)
	for _, tod := range times {
		assert.Equal(t, 23, tod.Hour)
		assert.Equal(t, 59, tod.Minute)
	}
}
