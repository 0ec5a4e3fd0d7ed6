package model

type Config struct {
	Files      FilesConfig       `yaml:"files"`
	Scheduling SchedulingConfig  `yaml:"scheduling"`
	Cadences   CadenceConfig     `yaml:"cadence"`
	DueTimes   map[string]string `yaml:"due_times"`
	Bonus      BonusConfig       `yaml:"bonus"`
	Fairness   FairnessConfig    `yaml:"fairness"`
	Display    DisplayConfig     `yaml:"display"`
	Logging    LoggingConfig     `yaml:"logging"`

	// SeverityOverrides overrides catalog severity by template key or label.
	SeverityOverrides map[string]int `yaml:"severity_overrides"`
}

type FilesConfig struct {
	Roster      string `yaml:"roster"`
	Constraints string `yaml:"constraints"`
	Categories  string `yaml:"categories"`
	State       string `yaml:"state"`
	OutputCSV   string `yaml:"output_csv"`
	OutputJSON  string `yaml:"output_json"`
	Archive     string `yaml:"archive"`
}

type SchedulingConfig struct {
	StartSunday       string  `yaml:"start_sunday"` // empty = auto-detect
	WeeksToGenerate   int     `yaml:"weeks_to_generate"`
	BonusMinRoster    int     `yaml:"bonus_third_cleaning_min_roster"`
	BonusMaxTaskShare float64 `yaml:"bonus_third_cleaning_max_task_share"`
	RandomSeed        int64   `yaml:"random_seed"`
}

type CadenceConfig struct {
	BrassoSecondDeck Cadence `yaml:"brasso_second_deck"`
	BrassoThirdDeck  Cadence `yaml:"brasso_third_deck"`
}

type BonusConfig struct {
	Base2xDays []int          `yaml:"base_2x_days"`
	BonusDay   int            `yaml:"bonus_3rd_day"`
	Priority   map[string]int `yaml:"priority"`
}

type FairnessConfig struct {
	RepeatTaskPenalty   float64 `yaml:"repeat_task_penalty"`
	RecentWeekPenalty   float64 `yaml:"recent_week_penalty"`
	SameDayStackPenalty float64 `yaml:"same_day_stack_penalty"`
	PreferenceBonus     float64 `yaml:"preference_bonus"`
}

type DisplayConfig struct {
	DeckOrder []string `yaml:"deck_order"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// CategoryPriority returns the bonus priority for a category, 0 if unmapped.
func (b BonusConfig) CategoryPriority(c Category) int {
	return b.Priority[string(c)]
}
