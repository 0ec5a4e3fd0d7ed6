// Package config loads and validates config.yaml, merging it over the
// compiled defaults.
package config

import (
	"fmt"
	"log"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"houseduty/internal/calendar"
	"houseduty/internal/model"
)

// Default returns the compiled default configuration.
func Default() model.Config {
	return model.Config{
		Files: model.FilesConfig{
			Roster:      "config/brothers.txt",
			Constraints: "config/constraints.json",
			Categories:  "config/brother_categories.json",
			State:       "data/chore_state.json",
			OutputCSV:   "data/schedule.csv",
			OutputJSON:  "data/schedule.json",
			Archive:     "data/history.db",
		},
		Scheduling: model.SchedulingConfig{
			StartSunday:       "",
			WeeksToGenerate:   1,
			BonusMinRoster:    14,
			BonusMaxTaskShare: 0.50,
			RandomSeed:        42,
		},
		Cadences: model.CadenceConfig{
			BrassoSecondDeck: model.CadenceBiweekly,
			BrassoThirdDeck:  model.CadenceBiweekly,
		},
		DueTimes: map[string]string{
			"k&m":       "23:59",
			"bathrooms": "23:59",
			"floors":    "23:59",
			"laundry":   "23:59",
			"common":    "23:59",
			"other":     "23:59",
		},
		Bonus: model.BonusConfig{
			Base2xDays: []int{2, 4}, // Tue, Thu
			BonusDay:   5,           // Fri
			Priority: map[string]int{
				"bathrooms": 3,
				"floors":    2,
				"common":    1,
				"laundry":   0,
				"k&m":       0,
				"other":     0,
			},
		},
		Fairness: model.FairnessConfig{
			RepeatTaskPenalty:   1.50,
			RecentWeekPenalty:   0.60,
			SameDayStackPenalty: 0.75,
			PreferenceBonus:     -0.35,
		},
		Display: model.DisplayConfig{
			DeckOrder: []string{"Zero Deck", "First Deck", "Second Deck", "Third Deck", "Other"},
		},
		Logging: model.LoggingConfig{
			Level: "info",
			File:  "houseduty.log",
		},
		SeverityOverrides: map[string]int{},
	}
}

// Load reads path and merges it over the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string, logger *log.Logger) (model.Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if logger != nil {
			logger.Printf("INFO config file missing, using defaults path=%s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return model.Config{}, fmt.Errorf("read config: %w", err)
	}

	// Unmarshalling over the prefilled struct keeps defaults for any keys
	// the file omits.
	if err := yamlv3.Unmarshal(content, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := Validate(cfg, logger); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// Validate enforces the hard configuration invariants and logs soft warnings
// for configuration smells.
func Validate(cfg model.Config, logger *log.Logger) error {
	s := cfg.Scheduling
	if s.WeeksToGenerate < 1 {
		return fmt.Errorf("weeks_to_generate must be >= 1, got %d", s.WeeksToGenerate)
	}
	if s.BonusMinRoster < 1 {
		return fmt.Errorf("bonus_third_cleaning_min_roster must be >= 1, got %d", s.BonusMinRoster)
	}
	if s.BonusMaxTaskShare < 0.0 || s.BonusMaxTaskShare > 1.0 {
		return fmt.Errorf("bonus_third_cleaning_max_task_share must be in [0.0, 1.0], got %g", s.BonusMaxTaskShare)
	}

	for name, c := range map[string]model.Cadence{
		"brasso_second_deck": cfg.Cadences.BrassoSecondDeck,
		"brasso_third_deck":  cfg.Cadences.BrassoThirdDeck,
	} {
		if c != model.CadenceWeekly && c != model.CadenceBiweekly {
			return fmt.Errorf("invalid cadence %q for %s: must be weekly or biweekly", c, name)
		}
	}

	for category, raw := range cfg.DueTimes {
		if !model.Category(category).IsValid() {
			return fmt.Errorf("due_times: unknown category %q", category)
		}
		if _, err := calendar.ParseTimeOfDay(raw); err != nil {
			return fmt.Errorf("due_times: category %q: %w", category, err)
		}
	}

	for _, d := range cfg.Bonus.Base2xDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("base_2x_days must contain values 0-6 (Sun-Sat), got %d", d)
		}
	}
	if cfg.Bonus.BonusDay < 0 || cfg.Bonus.BonusDay > 6 {
		return fmt.Errorf("bonus_3rd_day must be 0-6 (Sun-Sat), got %d", cfg.Bonus.BonusDay)
	}
	for category := range cfg.Bonus.Priority {
		if !model.Category(category).IsValid() {
			return fmt.Errorf("bonus priority: unknown category %q", category)
		}
	}

	if logger != nil {
		f := cfg.Fairness
		if f.RepeatTaskPenalty < 0 {
			logger.Printf("WARN repeat_task_penalty is negative value=%g", f.RepeatTaskPenalty)
		}
		if f.RecentWeekPenalty < 0 {
			logger.Printf("WARN recent_week_penalty is negative value=%g", f.RecentWeekPenalty)
		}
		if f.SameDayStackPenalty < 0 {
			logger.Printf("WARN same_day_stack_penalty is negative value=%g", f.SameDayStackPenalty)
		}
		if f.PreferenceBonus > 0 {
			logger.Printf("WARN preference_bonus is positive, preferred categories will be avoided value=%g", f.PreferenceBonus)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}

	return nil
}

// DueTimes converts the configured due time strings into parsed values,
// keyed by category. Validate has already checked the formats.
func DueTimes(cfg model.Config) (map[model.Category]calendar.TimeOfDay, error) {
	out := make(map[model.Category]calendar.TimeOfDay, len(cfg.DueTimes))
	for category, raw := range cfg.DueTimes {
		t, err := calendar.ParseTimeOfDay(raw)
		if err != nil {
			return nil, fmt.Errorf("due time for %q: %w", category, err)
		}
		out[model.Category(category)] = t
	}
	return out, nil
}
