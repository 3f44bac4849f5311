// Package match computes ownership statistics for one decklist against a
// collection quantity map.
package match

import (
	"math"

	"deckcheck/internal/collection"
	"deckcheck/internal/deck"
	"deckcheck/internal/normalize"
)

// Entry is one required card with how much of it the collection covers.
type Entry struct {
	Name     string `json:"name"`
	Required int    `json:"required"`
	Owned    int    `json:"owned"`
}

// Result summarizes how buildable a decklist is from a collection. A
// partially covered entry appears in both OwnedCards and MissingCards so a
// caller can present it in either context; Owned and Missing still count
// each copy exactly once.
type Result struct {
	Percent      int     `json:"percent"`
	Owned        int     `json:"owned"`
	Total        int     `json:"total"`
	Missing      int     `json:"missing"`
	OwnedCards   []Entry `json:"ownedCards"`
	MissingCards []Entry `json:"missingCards"`
	HasCommander bool    `json:"hasCommander"`
}

// Calculate compares a decklist's required cards against owned quantities.
// commander is the deck's namesake card; an empty commander never counts as
// owned.
func Calculate(required []deck.CardRequirement, owned collection.Quantities, commander string) Result {
	total := 0
	for _, req := range required {
		total += req.Quantity
	}
	if total == 0 {
		return Result{}
	}

	res := Result{Total: total}

	for _, req := range required {
		have := owned[normalize.Name(req.Name)]
		if have > req.Quantity {
			have = req.Quantity
		}
		res.Owned += have
		res.Missing += req.Quantity - have

		entry := Entry{Name: req.Name, Required: req.Quantity, Owned: have}
		if have > 0 {
			res.OwnedCards = append(res.OwnedCards, entry)
		}
		if have < req.Quantity {
			res.MissingCards = append(res.MissingCards, entry)
		}
	}

	// round half away from zero
	res.Percent = int(math.Round(100 * float64(res.Owned) / float64(total)))

	if key := normalize.Name(commander); key != "" {
		res.HasCommander = owned[key] > 0
	}
	return res
}
