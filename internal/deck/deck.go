// Package deck holds the reference decklist model and the commander dataset
// loaded from the generated commanders.json document.
package deck

// CardRequirement is one required entry of a decklist.
type CardRequirement struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Deck is one reference decklist: the average deck for a single commander.
// ColorIdentity is a subset of the five color symbols W, U, B, R, G in WUBRG
// order; NumDecks is the popularity counter from the source data.
type Deck struct {
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	ColorIdentity []string          `json:"colorIdentity"`
	NumDecks      int               `json:"numDecks"`
	Cards         []CardRequirement `json:"cards"`
}
