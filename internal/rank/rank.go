// Package rank filters and orders scored decklists under a criteria object.
package rank

import (
	"sort"
	"strings"

	"deckcheck/internal/collection"
	"deckcheck/internal/deck"
	"deckcheck/internal/match"
)

// SortKey selects the ordering of ranked results.
type SortKey string

const (
	SortPercent    SortKey = "percent"
	SortOwned      SortKey = "owned"
	SortMissing    SortKey = "missing"
	SortPopularity SortKey = "popularity"
)

// colorAlphabet is the full color identity alphabet in WUBRG order.
var colorAlphabet = []string{"W", "U", "B", "R", "G"}

// Criteria narrows and orders the scored decks. Selecting no colors and
// selecting all five are equivalent: both mean "no color restriction".
type Criteria struct {
	Colors           []string
	MinPercent       int
	SortBy           SortKey
	RequireCommander bool
}

// Scored pairs a reference deck with its match result.
type Scored struct {
	Deck  deck.Deck    `json:"deck"`
	Match match.Result `json:"match"`
}

// colorSet folds a symbol list into a set of known color symbols.
func colorSet(colors []string) map[string]struct{} {
	set := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		c = strings.ToUpper(strings.TrimSpace(c))
		for _, known := range colorAlphabet {
			if c == known {
				set[c] = struct{}{}
			}
		}
	}
	return set
}

// matchesColors reports whether a deck's color identity satisfies the
// criterion: an empty or complete selection restricts nothing, otherwise the
// deck's identity must contain every selected color.
func matchesColors(deckColors []string, selected map[string]struct{}) bool {
	if len(selected) == 0 || len(selected) == len(colorAlphabet) {
		return true
	}
	have := colorSet(deckColors)
	for c := range selected {
		if _, ok := have[c]; !ok {
			return false
		}
	}
	return true
}

// Rank drops decks that fail the criteria, then stable-sorts the remainder
// by the selected key. Ties keep their input order.
func Rank(items []Scored, c Criteria) []Scored {
	selected := colorSet(c.Colors)

	kept := make([]Scored, 0, len(items))
	for _, it := range items {
		if !matchesColors(it.Deck.ColorIdentity, selected) {
			continue
		}
		if c.RequireCommander && !it.Match.HasCommander {
			continue
		}
		if it.Match.Percent < c.MinPercent {
			continue
		}
		kept = append(kept, it)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		switch c.SortBy {
		case SortOwned:
			return a.Match.Owned > b.Match.Owned
		case SortMissing:
			return a.Match.Missing < b.Match.Missing
		case SortPopularity:
			return a.Deck.NumDecks > b.Deck.NumDecks
		default:
			return a.Match.Percent > b.Match.Percent
		}
	})
	return kept
}

// Evaluate is the full recomputation pipeline: score every reference deck
// against the collection, then filter and sort. It is a pure function of its
// inputs; callers re-run it wholesale whenever the collection, the criteria
// or the reference set changes.
func Evaluate(owned collection.Quantities, decks []deck.Deck, c Criteria) []Scored {
	scored := make([]Scored, 0, len(decks))
	for _, d := range decks {
		scored = append(scored, Scored{
			Deck:  d,
			Match: match.Calculate(d.Cards, owned, d.Name),
		})
	}
	return Rank(scored, c)
}
