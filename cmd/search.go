package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"deckcheck/internal/config"
	"deckcheck/internal/deck"
)

var searchLimitFlag int

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Find commanders by name, tolerating typos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 10, "max results to print")
}

func runSearch(query string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	dataset := deck.NewDataset(cfg.DataPath)
	decks, err := dataset.Search(query, searchLimitFlag)
	if err != nil {
		return err
	}

	if len(decks) == 0 {
		fmt.Printf("No commander matches %q.\n", query)
		return nil
	}

	for _, d := range decks {
		fmt.Printf("%-42s %-6s %8d decks\n",
			truncate(d.Name, 42),
			strings.Join(d.ColorIdentity, ""),
			d.NumDecks,
		)
	}
	return nil
}
