package collection

import (
	"encoding/json"
	"log/slog"
	"sort"

	"deckcheck/internal/store"
)

// storageKey is the fixed key the saved collection lives under.
const storageKey = "deckcheck:collection"

type savedCard struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Save persists the quantity map, replacing any previous record. Persistence
// is best-effort: a write failure is logged and otherwise ignored so it can
// never block the caller.
func Save(s store.Store, q Quantities) {
	cards := make([]savedCard, 0, len(q))
	for name, qty := range q {
		cards = append(cards, savedCard{Name: name, Quantity: qty})
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Name < cards[j].Name })

	b, err := json.Marshal(cards)
	if err != nil {
		slog.Warn("encode collection record", "error", err)
		return
	}
	if err := s.Set(storageKey, b); err != nil {
		slog.Warn("save collection record", "error", err)
	}
}

// Load restores the persisted quantity map. A missing or corrupt record
// yields an empty map.
func Load(s store.Store) Quantities {
	out := make(Quantities)

	b, ok, err := s.Get(storageKey)
	if err != nil || !ok {
		return out
	}

	var cards []savedCard
	if err := json.Unmarshal(b, &cards); err != nil {
		slog.Warn("decode collection record", "error", err)
		return out
	}
	for _, c := range cards {
		if c.Name == "" || c.Quantity <= 0 {
			continue
		}
		out[c.Name] += c.Quantity
	}
	return out
}

// Clear removes the persisted record entirely.
func Clear(s store.Store) {
	if err := s.Delete(storageKey); err != nil {
		slog.Warn("clear collection record", "error", err)
	}
}
