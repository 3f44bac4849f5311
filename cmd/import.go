package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"deckcheck/internal/archidekt"
	"deckcheck/internal/collection"
	"deckcheck/internal/config"
	"deckcheck/internal/importcache"
)

var replaceFlag bool

var importCmd = &cobra.Command{
	Use:   "import <deck-id>",
	Short: "Import a deck from Archidekt into the saved collection",
	Long: `Fetches the deck with the given numeric Archidekt identifier and merges
its cards into the saved collection. Results are cached for a day, so
re-importing the same deck does not hit the network.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&replaceFlag, "replace", false, "replace the saved collection instead of merging")
}

func runImport(id string) error {
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return fmt.Errorf("deck id must be numeric, got %q", id)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	s, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := archidekt.NewClient()
	if cfg.ProviderBaseURL != "" {
		client.SetBaseURL(cfg.ProviderBaseURL)
	}
	cache := importcache.New(s, client)
	cache.SetTTL(cfg.ImportTTL)

	fmt.Printf("--- Importing deck %s ---\n", id)

	cards, err := cache.Fetch(context.Background(), id)
	switch {
	case errors.Is(err, archidekt.ErrNotFound):
		return fmt.Errorf("deck %s was not found; it may be private", id)
	case errors.Is(err, archidekt.ErrNetwork):
		return fmt.Errorf("could not reach the deck provider: %w", err)
	case err != nil:
		return err
	}

	imported := collection.Parse(importcache.AsText(cards))
	fmt.Printf("Got %d cards.\n", len(imported))

	q := imported
	if !replaceFlag {
		q = collection.Load(s)
		collection.Merge(q, imported)
	}
	collection.Save(s, q)

	fmt.Printf("Collection now has %d cards, %d copies.\n", len(q), q.Total())
	return nil
}
