package model

import "encoding/json"

// Constraints holds the hard assignment rules loaded from constraints.json.
// The JSON field names are the established external contract.
type Constraints struct {
	ExemptAll  []string `json:"exempt_all"`
	OnCallOnly []string `json:"on_call_only"`

	// Nil means uncapped.
	MaxPerWeek *int `json:"max_per_brother_per_week"`
	MaxPerDay  *int `json:"max_per_brother_per_day"`

	CategoryBans        map[string][]Category `json:"brother_category_bans"`
	TaskBans            map[string][]string   `json:"brother_task_bans"`
	PreferredCategories map[string][]Category `json:"brother_preferred_categories"`

	// UnavailableDates maps a person to bare ISO dates and/or inclusive
	// {start,end} ranges. Malformed entries are ignored.
	UnavailableDates map[string][]UnavailableEntry `json:"brother_unavailable_dates"`
}

// UnavailableEntry is either a single ISO date or an inclusive range.
type UnavailableEntry struct {
	Date  string
	Start string
	End   string
}

// UnmarshalJSON accepts both the bare-string and {start,end} forms.
func (u *UnavailableEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u.Date = s
		return nil
	}
	var r struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	u.Start = r.Start
	u.End = r.End
	return nil
}

func (u UnavailableEntry) MarshalJSON() ([]byte, error) {
	if u.Date != "" {
		return json.Marshal(u.Date)
	}
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{u.Start, u.End})
}

// Groups is the roster grouping file (brother_categories.json). The actives
// group feeds the multi-person pairing rule.
type Groups struct {
	Actives       []string `json:"actives"`
	JuniorActives []string `json:"junior_actives"`
}
