// Package web serves the JSON API the buildability UI consumes.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"deckcheck/web/backend"
)

func Handle(mux *http.ServeMux, api *backend.API) {
	mux.HandleFunc("/api/collection", api.HandleCollection)
	mux.HandleFunc("/api/decks", api.HandleDecks)
	mux.HandleFunc("/api/search", api.HandleSearch)
	mux.HandleFunc("/api/import", api.HandleImport)
}

// RunServer serves mux on addr until interrupted, then shuts down
// gracefully.
func RunServer(addr string, mux *http.ServeMux) error {
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
