// Package bonus implements the rotating selection of extra occurrences for
// flexible n_per_week tasks in large houses.
package bonus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"houseduty/internal/calendar"
	"houseduty/internal/model"
)

// Params collects the tuning knobs for one selection.
type Params struct {
	MinRoster int     // below this house size no bonuses at all
	MaxShare  float64 // fraction of flexible tasks that may be boosted per week
	BaseSeed  int64
	Priority  model.BonusConfig
}

// Choose selects which flexible tasks receive a bonus occurrence in the week
// starting at currentSunday. The selection is deterministic for a fixed
// (anchor, week, roster signature, seed) tuple but rotates across weeks.
//
// The input counts map is never mutated; the returned map reflects the
// post-selection counters, with every flexible key present.
func Choose(
	templates []model.TaskTemplate,
	houseSize int,
	anchorSunday, currentSunday time.Time,
	rosterSignature string,
	counts map[string]int,
	p Params,
) (map[string]bool, map[string]int) {
	flex := make([]model.TaskTemplate, 0, len(templates))
	for _, t := range templates {
		if t.Flexible23x {
			flex = append(flex, t)
		}
	}

	updated := make(map[string]int, len(counts)+len(flex))
	for k, v := range counts {
		updated[k] = v
	}
	for _, t := range flex {
		if _, ok := updated[t.Key]; !ok {
			updated[t.Key] = 0
		}
	}

	if len(flex) == 0 || houseSize < p.MinRoster {
		return map[string]bool{}, updated
	}

	maxBonus := int(math.Round(float64(len(flex)) * p.MaxShare))
	if maxBonus <= 0 {
		return map[string]bool{}, updated
	}

	// Rank ascending: fewest past bonuses first, then highest category
	// priority, then highest severity.
	type ranked struct {
		count    int
		catPrio  int
		severity int
		key      string
	}
	scored := make([]ranked, 0, len(flex))
	for _, t := range flex {
		scored = append(scored, ranked{
			count:    updated[t.Key],
			catPrio:  p.Priority.CategoryPriority(t.Category),
			severity: t.Severity,
			key:      t.Key,
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.count != b.count {
			return a.count < b.count
		}
		if a.catPrio != b.catPrio {
			return a.catPrio > b.catPrio
		}
		if a.severity != b.severity {
			return a.severity > b.severity
		}
		return a.key < b.key
	})

	// Widen to 2x before the seeded shuffle so the rotation varies
	// week-to-week without abandoning the fairness ranking.
	poolSize := maxBonus * 2
	if poolSize > len(scored) {
		poolSize = len(scored)
	}
	pool := make([]string, 0, poolSize)
	for _, r := range scored[:poolSize] {
		pool = append(pool, r.key)
	}

	weekIndex := calendar.WeekIndexFromAnchor(anchorSunday, currentSunday)
	seed := stableSeed(
		anchorSunday.Format("2006-01-02"),
		strconv.Itoa(weekIndex),
		rosterSignature,
		strconv.FormatInt(p.BaseSeed, 10),
	)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if maxBonus > len(pool) {
		maxBonus = len(pool)
	}
	selected := make(map[string]bool, maxBonus)
	for _, k := range pool[:maxBonus] {
		selected[k] = true
		updated[k]++
	}
	return selected, updated
}

// stableSeed derives a reproducible RNG seed from its string parts. sha256
// is used purely for stable mixing, not security; the first 12 hex digits
// fit an int64.
func stableSeed(parts ...string) int64 {
	sum := sha256.Sum256([]byte(strings.Join(parts, "||")))
	digest := hex.EncodeToString(sum[:])
	v, err := strconv.ParseInt(digest[:12], 16, 64)
	if err != nil {
		// Unreachable: 12 hex digits always parse.
		panic(fmt.Sprintf("bonus: parse seed digest: %v", err))
	}
	return v
}
