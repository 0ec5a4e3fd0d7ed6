package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"houseduty/internal/model"
)

// csvHeader is a stable export contract; downstream sheets key on these
// column names.
var csvHeader = []string{
	"due", "deck", "task_key", "task", "category",
	"people_needed", "assigned", "weight_total",
}

// WriteCSV exports the schedule sorted by deck then due time. Assignees are
// joined with "; " so a row stays one row regardless of crew size.
func WriteCSV(w io.Writer, items []model.ScheduleItem) error {
	sorted := make([]model.ScheduleItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Deck != sorted[j].Deck {
			return sorted[i].Deck < sorted[j].Deck
		}
		if sorted[i].Due != sorted[j].Due {
			return sorted[i].Due < sorted[j].Due
		}
		return sorted[i].TaskKey < sorted[j].TaskKey
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, it := range sorted {
		row := []string{
			it.Due,
			it.Deck,
			it.TaskKey,
			it.TaskLabel,
			string(it.Category),
			strconv.Itoa(it.PeopleNeeded),
			strings.Join(it.Assigned, "; "),
			strconv.FormatFloat(it.WeightTotal, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON exports the schedule as an indented JSON array in engine order.
func WriteJSON(w io.Writer, items []model.ScheduleItem) error {
	if items == nil {
		items = []model.ScheduleItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode schedule json: %w", err)
	}
	return nil
}
