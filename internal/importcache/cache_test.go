package importcache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckcheck/internal/archidekt"
	"deckcheck/internal/collection"
	"deckcheck/internal/store"
)

type fakeFetcher struct {
	cards []archidekt.CardQuantity
	err   error
	calls int
}

func (f *fakeFetcher) FetchDeck(ctx context.Context, id string) ([]archidekt.CardQuantity, error) {
	f.calls++
	return f.cards, f.err
}

var sampleCards = []archidekt.CardQuantity{
	{Name: "Sol Ring", Quantity: 1},
	{Name: "Mountain", Quantity: 30},
}

func newCache(f *fakeFetcher) (*Cache, *store.Memory) {
	s := store.NewMemory()
	return New(s, f), s
}

func TestFetchMissHitsNetworkAndPersists(t *testing.T) {
	f := &fakeFetcher{cards: sampleCards}
	c, s := newCache(f)

	cards, err := c.Fetch(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, sampleCards, cards)
	assert.Equal(t, 1, f.calls)

	b, ok, err := s.Get("deckcheck:import:42")
	require.NoError(t, err)
	require.True(t, ok)

	var rec Record
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "42", rec.SourceID)
	assert.Equal(t, sampleCards, rec.Cards)
	assert.WithinDuration(t, time.Now(), rec.FetchedAt, time.Minute)
}

func TestFetchFreshEntrySkipsNetwork(t *testing.T) {
	f := &fakeFetcher{cards: sampleCards}
	c, _ := newCache(f)

	_, err := c.Fetch(context.Background(), "42")
	require.NoError(t, err)

	cards, err := c.Fetch(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, sampleCards, cards)
	assert.Equal(t, 1, f.calls, "second fetch must not hit the network")
}

func TestFetchExpiryBoundary(t *testing.T) {
	f := &fakeFetcher{cards: sampleCards}
	c, s := newCache(f)

	base := time.Now()

	t.Run("just inside TTL", func(t *testing.T) {
		f.calls = 0
		c.now = func() time.Time { return base }
		_, err := c.Fetch(context.Background(), "a")
		require.NoError(t, err)

		c.now = func() time.Time { return base.Add(TTL - time.Second) }
		_, err = c.Fetch(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, 1, f.calls)
	})

	t.Run("just past TTL", func(t *testing.T) {
		f.calls = 0
		c.now = func() time.Time { return base }
		_, err := c.Fetch(context.Background(), "b")
		require.NoError(t, err)

		c.now = func() time.Time { return base.Add(TTL + time.Second) }
		_, err = c.Fetch(context.Background(), "b")
		require.NoError(t, err)
		assert.Equal(t, 2, f.calls, "expired entry must trigger a refetch")
	})

	t.Run("expired entry is evicted even if refetch fails", func(t *testing.T) {
		c.now = func() time.Time { return base }
		_, err := c.Fetch(context.Background(), "c")
		require.NoError(t, err)

		f.err = errors.New("down")
		c.now = func() time.Time { return base.Add(TTL + time.Second) }
		_, err = c.Fetch(context.Background(), "c")
		require.Error(t, err)

		_, ok, _ := s.Get("deckcheck:import:c")
		assert.False(t, ok)
	})
}

func TestFetchCorruptEntryIsAMiss(t *testing.T) {
	f := &fakeFetcher{cards: sampleCards}
	c, s := newCache(f)

	require.NoError(t, s.Set("deckcheck:import:42", []byte("{not json")))

	cards, err := c.Fetch(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, sampleCards, cards)
	assert.Equal(t, 1, f.calls)
}

func TestFetchNetworkFailurePropagates(t *testing.T) {
	f := &fakeFetcher{err: archidekt.ErrNotFound}
	c, _ := newCache(f)

	_, err := c.Fetch(context.Background(), "42")
	assert.ErrorIs(t, err, archidekt.ErrNotFound)
}

func TestAsTextRoundTripsThroughParser(t *testing.T) {
	text := AsText(sampleCards)
	assert.Equal(t, "1 Sol Ring\n30 Mountain\n", text)

	got := collection.Parse(text)
	assert.Equal(t, collection.Quantities{"solring": 1, "mountain": 30}, got)
}

func TestAsTextDropsCommasFromNames(t *testing.T) {
	// A comma in a rendered line would be reparsed as a CSV row and lose the
	// name's tail; the comma-free form normalizes to the same key.
	text := AsText([]archidekt.CardQuantity{{Name: "Krenko, Mob Boss", Quantity: 1}})
	assert.Equal(t, "1 Krenko Mob Boss\n", text)

	got := collection.Parse(text)
	assert.Equal(t, collection.Quantities{"krenkomobboss": 1}, got)
}
