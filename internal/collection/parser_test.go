package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckcheck/internal/store"
)

func TestParseEquivalentFormats(t *testing.T) {
	// The same intent expressed in every supported shape.
	inputs := []string{
		"4 Lightning Bolt",
		"4x Lightning Bolt",
		"4X Lightning Bolt",
		"4,Lightning Bolt,LEA",
		"Lightning Bolt,4",
		`"4","Lightning Bolt"`,
	}
	for _, in := range inputs {
		assert.Equal(t, Quantities{"lightningbolt": 4}, Parse(in), "input %q", in)
	}
}

func TestParseBareNameDefaultsToOne(t *testing.T) {
	assert.Equal(t, Quantities{"solring": 1}, Parse("Sol Ring"))
}

func TestParseAccumulates(t *testing.T) {
	got := Parse("2 Lightning Bolt\n3x Lightning Bolt")
	assert.Equal(t, Quantities{"lightningbolt": 5}, got)
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	got := Parse("# a comment\nSol Ring\n\n   \n// another comment\nArcane Signet")
	assert.Equal(t, Quantities{"solring": 1, "arcanesignet": 1}, got)
}

func TestParseCSVHeaderRowDiscarded(t *testing.T) {
	tests := []struct {
		in   string
		want Quantities
	}{
		{"Count,Name\n4,Sol Ring", Quantities{"solring": 4}},
		{"\"Name\",\"Quantity\"\nSol Ring,4", Quantities{"solring": 4}},
		{"card,set\nSol Ring,LEA", Quantities{"solring": 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "input %q", tt.in)
	}
}

func TestParseCSVMetadataColumns(t *testing.T) {
	// name, set code, then a count somewhere in the tail
	assert.Equal(t, Quantities{"solring": 3}, Parse("Sol Ring,C21,3"))
	// no plausible count column: default one copy
	assert.Equal(t, Quantities{"solring": 1}, Parse("Sol Ring,C21,foil"))
	// counts outside (0,1000) are treated as metadata, not quantity
	assert.Equal(t, Quantities{"solring": 1}, Parse("Sol Ring,C21,2021"))
}

func TestParseCSVBothColumnsNumericFirstWins(t *testing.T) {
	assert.Equal(t, Quantities{"7": 4}, Parse("4,7"))
}

func TestParseCSVNumericNonPositiveFirstColumnDropped(t *testing.T) {
	// a numeric first column that is not a positive integer fits no layout
	assert.Empty(t, Parse("0,Sol Ring"))
	assert.Empty(t, Parse("2.5,Sol Ring"))
	assert.Empty(t, Parse("-3,Sol Ring"))
}

func TestParseDropsUnresolvableLines(t *testing.T) {
	got := Parse("???\n!!!\n0 Sol Ring\nSol Ring")
	// "0 Sol Ring" misses the quantity-prefix rule (zero count) and falls
	// back to being a name in its own right.
	assert.Equal(t, Quantities{"solring": 1, "0solring": 1}, got)
}

func TestParseZeroXPrefixNotQuantity(t *testing.T) {
	// quantity prefix only applies with a positive count
	assert.NotContains(t, Parse("0x Mountain"), "mountain")
}

func TestRecordRoundTrip(t *testing.T) {
	s := store.NewMemory()

	Save(s, Quantities{"solring": 2, "lightningbolt": 4})
	got := Load(s)
	require.Equal(t, Quantities{"solring": 2, "lightningbolt": 4}, got)

	Clear(s)
	assert.Empty(t, Load(s))
}

func TestLoadCorruptRecordYieldsEmpty(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set("deckcheck:collection", []byte("{not json")))
	assert.Empty(t, Load(s))
}

func TestMerge(t *testing.T) {
	dst := Quantities{"solring": 1}
	Merge(dst, Quantities{"solring": 2, "mountain": 3})
	assert.Equal(t, Quantities{"solring": 3, "mountain": 3}, dst)
}
