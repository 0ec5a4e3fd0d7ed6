package schedule

import (
	"fmt"
	"log"
	"time"

	"houseduty/internal/bonus"
	"houseduty/internal/calendar"
	"houseduty/internal/config"
	"houseduty/internal/model"
	"houseduty/internal/roster"
)

// Inputs bundles everything one run consumes.
type Inputs struct {
	Config      model.Config
	Templates   []model.TaskTemplate
	Names       []string
	Constraints model.Constraints
	Groups      model.Groups
	State       model.State

	StartSunday time.Time
	NumWeeks    int
	RandomSeed  int64
}

// Result is one complete run: the schedule and the state snapshot to
// persist. Occurrences is retained for logging and archive metadata.
type Result struct {
	Items        []model.ScheduleItem
	State        model.State
	AnchorSunday time.Time
	Occurrences  int
}

// Run executes one full scheduling pass: anchor resolution, occurrence
// expansion with bonus rotation, and fairness assignment. The input state is
// treated as an immutable snapshot; Result.State is the evolved copy the
// caller may persist.
func Run(in Inputs, logger *log.Logger) (Result, error) {
	anchor, err := resolveAnchor(in.State, in.StartSunday)
	if err != nil {
		return Result{}, err
	}

	dueTimes, err := config.DueTimes(in.Config)
	if err != nil {
		return Result{}, err
	}

	// The bonus threshold keys off the whole house, exemptions included:
	// an exempt brother still lives here, and the policy is about house
	// size, not staffing capacity.
	houseSize := len(in.Names)
	occs, bonusCounts, err := Expand(in.Templates, ExpandParams{
		AnchorSunday:    anchor,
		StartSunday:     in.StartSunday,
		NumWeeks:        in.NumWeeks,
		HouseSize:       houseSize,
		RosterSignature: roster.Signature(in.Names),
		BonusCounts:     in.State.BonusCounts,
		Bonus: bonus.Params{
			MinRoster: in.Config.Scheduling.BonusMinRoster,
			MaxShare:  in.Config.Scheduling.BonusMaxTaskShare,
			BaseSeed:  in.RandomSeed,
			Priority:  in.Config.Bonus,
		},
		BonusDay: in.Config.Bonus.BonusDay,
		DueTimes: dueTimes,
	})
	if err != nil {
		return Result{}, err
	}
	if logger != nil {
		logger.Printf("INFO expanded occurrences=%d weeks=%d anchor=%s house_size=%d",
			len(occs), in.NumWeeks, anchor.Format("2006-01-02"), houseSize)
	}

	items, next, err := Assign(occs, in.Names, in.Constraints, in.Groups, in.State, AssignParams{
		Fairness:      in.Config.Fairness,
		RandomSeed:    in.RandomSeed,
		CurrentSunday: in.StartSunday,
	})
	if err != nil {
		return Result{}, err
	}

	next.AnchorSunday = anchor.Format("2006-01-02")
	next.BonusCounts = bonusCounts

	return Result{
		Items:        items,
		State:        next,
		AnchorSunday: anchor,
		Occurrences:  len(occs),
	}, nil
}

// resolveAnchor returns the persisted anchor Sunday, or adopts the run's
// start Sunday as the epoch on a first run.
func resolveAnchor(state model.State, startSunday time.Time) (time.Time, error) {
	if state.AnchorSunday == "" {
		return startSunday, nil
	}
	anchor, err := calendar.ParseDate(state.AnchorSunday)
	if err != nil {
		return time.Time{}, fmt.Errorf("state anchor_sunday: %w", err)
	}
	return anchor, nil
}
