// Package output renders a generated schedule for people and for machines:
// a deck-grouped terminal view, a CSV export, and a JSON export.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"houseduty/internal/model"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cWarn    = lipgloss.Color("214") // orange
	cMuted   = lipgloss.Color("244") // gray
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	deckStyle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	dueStyle   = lipgloss.NewStyle().Foreground(cMuted)
	bonusStyle = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	ruleStyle  = lipgloss.NewStyle().Foreground(cMuted)
)

// RenderByDeck writes a human-readable schedule grouped by deck in the
// configured order, with each deck's items sorted by due time then label.
// Decks missing from deckOrder trail in alphabetical order.
func RenderByDeck(w io.Writer, items []model.ScheduleItem, deckOrder []string) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, titleStyle.Render("No duties scheduled for this window."))
		return err
	}

	byDeck := make(map[string][]model.ScheduleItem)
	for _, it := range items {
		byDeck[it.Deck] = append(byDeck[it.Deck], it)
	}

	decks := orderedDecks(byDeck, deckOrder)

	if _, err := fmt.Fprintln(w, titleStyle.Render("House Duty Schedule")); err != nil {
		return err
	}

	for _, deck := range decks {
		group := byDeck[deck]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Due != group[j].Due {
				return group[i].Due < group[j].Due
			}
			return group[i].TaskLabel < group[j].TaskLabel
		})

		header := fmt.Sprintf("%s (%d)", deck, len(group))
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", deckStyle.Render(header), ruleStyle.Render(strings.Repeat("-", len(header)))); err != nil {
			return err
		}

		for _, it := range group {
			label := it.TaskLabel
			if strings.HasSuffix(label, "[BONUS]") {
				label = bonusStyle.Render(label)
			}
			line := fmt.Sprintf("  %s  %-34s %s",
				dueStyle.Render(it.Due), label, strings.Join(it.Assigned, ", "))
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func orderedDecks(byDeck map[string][]model.ScheduleItem, deckOrder []string) []string {
	seen := make(map[string]bool, len(byDeck))
	decks := make([]string, 0, len(byDeck))
	for _, deck := range deckOrder {
		if _, ok := byDeck[deck]; ok && !seen[deck] {
			decks = append(decks, deck)
			seen[deck] = true
		}
	}

	var rest []string
	for deck := range byDeck {
		if !seen[deck] {
			rest = append(rest, deck)
		}
	}
	sort.Strings(rest)
	return append(decks, rest...)
}
