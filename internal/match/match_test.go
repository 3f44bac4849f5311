package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckcheck/internal/collection"
	"deckcheck/internal/deck"
)

func req(name string, qty int) deck.CardRequirement {
	return deck.CardRequirement{Name: name, Quantity: qty}
}

func TestCalculateEmptyDecklist(t *testing.T) {
	got := Calculate(nil, collection.Quantities{"solring": 1}, "")
	assert.Equal(t, Result{}, got)
}

func TestCalculateFullyOwned(t *testing.T) {
	owned := collection.Quantities{"solring": 1, "forest": 10}
	got := Calculate([]deck.CardRequirement{req("Sol Ring", 1), req("Forest", 5)}, owned, "")

	assert.Equal(t, 100, got.Percent)
	assert.Equal(t, 6, got.Owned)
	assert.Equal(t, 6, got.Total)
	assert.Equal(t, 0, got.Missing)
	assert.Len(t, got.OwnedCards, 2)
	assert.Empty(t, got.MissingCards)
}

func TestCalculatePartialEntryListedOnBothSides(t *testing.T) {
	owned := collection.Quantities{"forest": 5}
	got := Calculate([]deck.CardRequirement{req("Forest", 10)}, owned, "")

	require.Len(t, got.OwnedCards, 1)
	require.Len(t, got.MissingCards, 1)
	assert.Equal(t, Entry{Name: "Forest", Required: 10, Owned: 5}, got.OwnedCards[0])
	assert.Equal(t, got.OwnedCards[0], got.MissingCards[0])
	assert.Equal(t, 5, got.Owned)
	assert.Equal(t, 5, got.Missing)
	assert.Equal(t, 50, got.Percent)
}

func TestCalculateExcessCopiesClamped(t *testing.T) {
	owned := collection.Quantities{"solring": 4}
	got := Calculate([]deck.CardRequirement{req("Sol Ring", 1)}, owned, "")
	assert.Equal(t, 1, got.Owned)
	assert.Equal(t, 100, got.Percent)
}

func TestCalculateRounding(t *testing.T) {
	owned := collection.Quantities{"solring": 1}
	got := Calculate(
		[]deck.CardRequirement{req("Sol Ring", 1), req("Forest", 2)},
		owned, "",
	)
	// 1 of 3: rounds down to 33, not up
	assert.Equal(t, 33, got.Percent)

	got = Calculate([]deck.CardRequirement{req("Sol Ring", 1), req("Forest", 7)}, owned, "")
	// 1 of 8 is 12.5: the half rounds away from zero
	assert.Equal(t, 13, got.Percent)
}

func TestCalculateCommander(t *testing.T) {
	owned := collection.Quantities{"krenkomobboss": 1, "mountain": 3}
	reqs := []deck.CardRequirement{req("Mountain", 30)}

	assert.True(t, Calculate(reqs, owned, "Krenko, Mob Boss").HasCommander)
	assert.False(t, Calculate(reqs, owned, "Atraxa, Praetors' Voice").HasCommander)
	assert.False(t, Calculate(reqs, owned, "").HasCommander)
}

func TestCalculateNameMatchingIsCanonical(t *testing.T) {
	owned := collection.Quantities{"fireice": 2}
	got := Calculate([]deck.CardRequirement{req("Fire // Ice", 1)}, owned, "")
	assert.Equal(t, 100, got.Percent)
}
