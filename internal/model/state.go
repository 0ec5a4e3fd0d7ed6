package model

// State is the persistent cross-run document. It accumulates monotonically
// except LastWeekTasks, which is fully replaced each run. Exactly one writer
// per run is assumed; the CLI enforces that with a file lock.
type State struct {
	// AnchorSunday fixes biweekly parity and week-index numbering. Set once
	// on the first run and never recomputed.
	AnchorSunday string `json:"anchor_sunday,omitempty"`

	// BonusCounts counts how many times each flexible task key has received
	// a bonus occurrence, driving least-recently-boosted rotation.
	BonusCounts map[string]int `json:"bonus_counts,omitempty"`

	// TaskCounts is the all-time per-person per-task-key assignment history.
	TaskCounts map[string]map[string]int `json:"brother_task_counts,omitempty"`

	// LastWeekTasks holds only the most recent run's per-person per-task-key
	// counts, for the one-week recency penalty.
	LastWeekTasks map[string]map[string]int `json:"brother_last_week_tasks,omitempty"`

	// LastRunSunday is an audit marker of the most recently processed week.
	LastRunSunday string `json:"last_run_sunday,omitempty"`
}

// Clone returns a deep copy. Engine functions operate on snapshots and
// return new state; callers persist the result only after a successful run.
func (s State) Clone() State {
	out := State{
		AnchorSunday:  s.AnchorSunday,
		LastRunSunday: s.LastRunSunday,
	}
	if s.BonusCounts != nil {
		out.BonusCounts = make(map[string]int, len(s.BonusCounts))
		for k, v := range s.BonusCounts {
			out.BonusCounts[k] = v
		}
	}
	out.TaskCounts = cloneNested(s.TaskCounts)
	out.LastWeekTasks = cloneNested(s.LastWeekTasks)
	return out
}

func cloneNested(m map[string]map[string]int) map[string]map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]int, len(m))
	for person, counts := range m {
		inner := make(map[string]int, len(counts))
		for k, v := range counts {
			inner[k] = v
		}
		out[person] = inner
	}
	return out
}

// HistoryCount returns the all-time assignment count for a person and task.
func (s State) HistoryCount(person, taskKey string) int {
	return s.TaskCounts[person][taskKey]
}

// LastWeekCount returns last run's assignment count for a person and task.
func (s State) LastWeekCount(person, taskKey string) int {
	return s.LastWeekTasks[person][taskKey]
}
