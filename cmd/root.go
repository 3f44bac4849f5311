package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"deckcheck/internal/collection"
	"deckcheck/internal/config"
	"deckcheck/internal/deck"
	"deckcheck/internal/rank"
	"deckcheck/internal/store"
)

var (
	cfgFile        string
	collectionFile string
	colorsFlag     string
	minPercentFlag int
	sortFlag       string
	commanderFlag  bool
	limitFlag      int
)

var rootCmd = &cobra.Command{
	Use:   "deckcheck",
	Short: "Rank commander decklists by how buildable they are from your collection",
	Long: `deckcheck compares a card collection against several thousand reference
commander decklists and reports how much of each deck you already own.

The collection file accepts one card per line: a bare name, "4 Name",
"4x Name", or CSV rows in either column order. Lines starting with # or //
are comments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file")

	rootCmd.Flags().StringVarP(&collectionFile, "collection", "i", "", "path to collection file (omit to use the saved collection)")
	rootCmd.Flags().StringVar(&colorsFlag, "colors", "", "required color identity, e.g. WUB (empty or WUBRG: no restriction)")
	rootCmd.Flags().IntVar(&minPercentFlag, "min", 0, "minimum buildability percent")
	rootCmd.Flags().StringVar(&sortFlag, "sort", "percent", "sort key: percent, owned, missing or popularity")
	rootCmd.Flags().BoolVar(&commanderFlag, "require-commander", false, "only show decks whose commander you own")
	rootCmd.Flags().IntVar(&limitFlag, "limit", 25, "max results to print (0 = all)")
}

// openStore picks sqlite when a path is configured, memory otherwise.
func openStore(cfg config.Config) (store.Store, func(), error) {
	if cfg.StorePath == "" {
		return store.NewMemory(), func() {}, nil
	}
	s, err := store.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return s, func() { s.Close() }, nil
}

func criteriaFromFlags() rank.Criteria {
	c := rank.Criteria{
		MinPercent:       minPercentFlag,
		SortBy:           rank.SortKey(sortFlag),
		RequireCommander: commanderFlag,
	}
	for _, sym := range strings.ReplaceAll(colorsFlag, ",", "") {
		c.Colors = append(c.Colors, string(sym))
	}
	return c
}

func runCheck() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	s, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var owned collection.Quantities
	if collectionFile != "" {
		b, err := os.ReadFile(collectionFile)
		if err != nil {
			return fmt.Errorf("read collection: %w", err)
		}
		owned = collection.Parse(string(b))
		collection.Save(s, owned)
	} else {
		owned = collection.Load(s)
	}

	if len(owned) == 0 {
		return fmt.Errorf("collection is empty: pass --collection or import a deck first")
	}
	fmt.Printf("Collection: %d cards, %d copies.\n", len(owned), owned.Total())

	dataset := deck.NewDataset(cfg.DataPath)
	decks, err := dataset.Decks()
	if err != nil {
		return err
	}
	fmt.Printf("Checking against %d commander decks (dataset %s).\n\n", len(decks), dataset.UpdatedAt())

	results := rank.Evaluate(owned, decks, criteriaFromFlags())
	if len(results) == 0 {
		fmt.Println("No decks match the given criteria.")
		return nil
	}

	shown := results
	if limitFlag > 0 && len(shown) > limitFlag {
		shown = shown[:limitFlag]
	}

	fmt.Printf("%-4s %-42s %-7s %7s %7s %7s\n", "#", "COMMANDER", "COLORS", "PCT", "OWNED", "MISSING")
	for i, r := range shown {
		fmt.Printf("%-4d %-42s %-7s %6d%% %7d %7d\n",
			i+1,
			truncate(r.Deck.Name, 42),
			strings.Join(r.Deck.ColorIdentity, ""),
			r.Match.Percent,
			r.Match.Owned,
			r.Match.Missing,
		)
	}
	if len(results) > len(shown) {
		fmt.Printf("\n(%d more; raise --limit to see them)\n", len(results)-len(shown))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
