// Package importcache time-boxes deck imports from the external provider so
// repeated imports of the same deck skip the network.
package importcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"deckcheck/internal/archidekt"
	"deckcheck/internal/store"
)

// TTL is the maximum age of a cached import before it is refreshed.
const TTL = 24 * time.Hour

const keyPrefix = "deckcheck:import:"

// Record is the persisted cache entry, one per source identifier.
type Record struct {
	FetchedAt time.Time                `json:"fetchedAt"`
	SourceID  string                   `json:"sourceId"`
	Cards     []archidekt.CardQuantity `json:"cards"`
}

// Fetcher is the network side of an import.
type Fetcher interface {
	FetchDeck(ctx context.Context, id string) ([]archidekt.CardQuantity, error)
}

type Cache struct {
	store  store.Store
	client Fetcher
	ttl    time.Duration
	now    func() time.Time
}

func New(s store.Store, client Fetcher) *Cache {
	return &Cache{store: s, client: client, ttl: TTL, now: time.Now}
}

// SetTTL overrides the default expiry window.
func (c *Cache) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		c.ttl = ttl
	}
}

func key(sourceID string) string {
	return keyPrefix + sourceID
}

// Fetch returns the cards for sourceID, from the cache when a fresh entry
// exists, from the network otherwise. An expired entry is evicted before the
// network call; a corrupt entry counts as a miss. Concurrent calls for the
// same sourceID are not deduplicated: both hit the network.
func (c *Cache) Fetch(ctx context.Context, sourceID string) ([]archidekt.CardQuantity, error) {
	if rec, ok := c.lookup(sourceID); ok {
		slog.Debug("import served from cache", "source_id", sourceID, "fetched_at", rec.FetchedAt)
		return rec.Cards, nil
	}

	cards, err := c.client.FetchDeck(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", sourceID, err)
	}

	c.persist(Record{FetchedAt: c.now(), SourceID: sourceID, Cards: cards})
	return cards, nil
}

// lookup returns a valid cached record, evicting expired ones on the way.
func (c *Cache) lookup(sourceID string) (Record, bool) {
	b, ok, err := c.store.Get(key(sourceID))
	if err != nil || !ok {
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		// corrupt entry: treat as a miss
		slog.Warn("corrupt import cache entry", "source_id", sourceID, "error", err)
		return Record{}, false
	}

	if c.now().Sub(rec.FetchedAt) > c.ttl {
		if err := c.store.Delete(key(sourceID)); err != nil {
			slog.Warn("evict expired import", "source_id", sourceID, "error", err)
		}
		return Record{}, false
	}
	return rec, true
}

// persist writes the record best-effort; a failed write only costs a future
// network call.
func (c *Cache) persist(rec Record) {
	b, err := json.Marshal(rec)
	if err != nil {
		slog.Warn("encode import cache entry", "source_id", rec.SourceID, "error", err)
		return
	}
	if err := c.store.Set(key(rec.SourceID), b); err != nil {
		slog.Warn("save import cache entry", "source_id", rec.SourceID, "error", err)
	}
}

// AsText renders fetched cards in the canonical "N Name" line format so the
// import path reuses the collection parser as the single source of truth for
// quantity semantics. Commas are dropped from names: a comma would switch
// the line onto the parser's CSV path, and canonical names never contain
// one anyway.
func AsText(cards []archidekt.CardQuantity) string {
	var b strings.Builder
	for _, card := range cards {
		fmt.Fprintf(&b, "%d %s\n", card.Quantity, strings.ReplaceAll(card.Name, ",", ""))
	}
	return b.String()
}
