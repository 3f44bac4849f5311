package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"deckcheck/internal/archidekt"
	"deckcheck/internal/config"
	"deckcheck/internal/deck"
	"deckcheck/internal/importcache"
	"deckcheck/web"
	"deckcheck/web/backend"
)

var listenFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API the buildability UI consumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "listen address (overrides config)")
}

func runServe() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if listenFlag != "" {
		cfg.ListenAddr = listenFlag
	}

	s, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	dataset := deck.NewDataset(cfg.DataPath)
	if err := dataset.Load(); err != nil {
		return err
	}

	client := archidekt.NewClient()
	if cfg.ProviderBaseURL != "" {
		client.SetBaseURL(cfg.ProviderBaseURL)
	}
	cache := importcache.New(s, client)
	cache.SetTTL(cfg.ImportTTL)

	api := backend.NewAPI(s, dataset, cache)

	mux := http.NewServeMux()
	web.Handle(mux, api)

	return web.RunServer(cfg.ListenAddr, mux)
}
