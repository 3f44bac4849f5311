package backend

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"deckcheck/internal/archidekt"
	"deckcheck/internal/collection"
	"deckcheck/internal/deck"
	"deckcheck/internal/importcache"
	"deckcheck/internal/rank"
	"deckcheck/internal/store"
)

// maxCollectionBytes caps uploaded collection text.
const maxCollectionBytes = 4 << 20

// API is the JSON surface the UI talks to. All computation is synchronous;
// only the deck import reaches the network.
type API struct {
	store   store.Store
	dataset *deck.Dataset
	imports *importcache.Cache

	// mu serializes collection read-modify-write cycles (upload, clear,
	// import-merge). Pure evaluation does not need it.
	mu sync.Mutex
}

func NewAPI(s store.Store, dataset *deck.Dataset, imports *importcache.Cache) *API {
	return &API{store: s, dataset: dataset, imports: imports}
}

type collectionSummary struct {
	Cards  int `json:"cards"`
	Copies int `json:"copies"`
}

func summarize(q collection.Quantities) collectionSummary {
	return collectionSummary{Cards: len(q), Copies: q.Total()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// HandleCollection implements GET (current contents), PUT/POST (replace from
// raw text) and DELETE (clear) on the stored collection.
func (api *API) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := collection.Load(api.store)
		writeJSON(w, http.StatusOK, map[string]any{
			"summary": summarize(q),
			"cards":   q,
		})

	case http.MethodPut, http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxCollectionBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "read body")
			return
		}
		q := collection.Parse(string(body))

		api.mu.Lock()
		collection.Save(api.store, q)
		api.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{"summary": summarize(q)})

	case http.MethodDelete:
		api.mu.Lock()
		collection.Clear(api.store)
		api.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// HandleDecks evaluates the stored collection against every reference deck
// under the criteria in the query string and returns the ranked results.
// Recognized parameters: colors (WUB or W,U,B), min (percent floor), sort
// (percent|owned|missing|popularity), commander=true (require the namesake),
// limit.
func (api *API) HandleDecks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	decks, err := api.dataset.Decks()
	if err != nil {
		slog.Error("load dataset", "error", err)
		writeError(w, http.StatusInternalServerError, "reference dataset unavailable")
		return
	}

	criteria := criteriaFromQuery(r)
	owned := collection.Load(api.store)
	results := rank.Evaluate(owned, decks, criteria)

	total := len(results)
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 && n < total {
		results = results[:n]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updatedAt": api.dataset.UpdatedAt(),
		"total":     total,
		"results":   results,
	})
}

func criteriaFromQuery(r *http.Request) rank.Criteria {
	q := r.URL.Query()

	c := rank.Criteria{
		SortBy:           rank.SortKey(q.Get("sort")),
		RequireCommander: q.Get("commander") == "true",
	}
	if n, err := strconv.Atoi(q.Get("min")); err == nil {
		c.MinPercent = n
	}
	for _, sym := range strings.ReplaceAll(q.Get("colors"), ",", "") {
		c.Colors = append(c.Colors, string(sym))
	}
	return c
}

// HandleSearch finds commanders by (possibly misspelled) name.
func (api *API) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query().Get("q")
	limit := 20
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}

	decks, err := api.dataset.Search(query, limit)
	if err != nil {
		slog.Error("search dataset", "error", err)
		writeError(w, http.StatusInternalServerError, "reference dataset unavailable")
		return
	}

	type hit struct {
		Name          string   `json:"name"`
		Slug          string   `json:"slug"`
		ColorIdentity []string `json:"colorIdentity"`
		NumDecks      int      `json:"numDecks"`
	}
	hits := make([]hit, 0, len(decks))
	for _, d := range decks {
		hits = append(hits, hit{Name: d.Name, Slug: d.Slug, ColorIdentity: d.ColorIdentity, NumDecks: d.NumDecks})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": hits})
}

// HandleImport fetches an external deck through the import cache and merges
// its cards into the stored collection.
func (api *API) HandleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.URL.Query().Get("id")
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		writeError(w, http.StatusBadRequest, "id must be a numeric deck identifier")
		return
	}

	reqID := uuid.New().String()
	log := slog.With("request_id", reqID, "source_id", id)

	cards, err := api.imports.Fetch(r.Context(), id)
	if err != nil {
		log.Warn("deck import failed", "error", err)
		switch {
		case errors.Is(err, archidekt.ErrNotFound):
			writeError(w, http.StatusNotFound, "deck not found or private")
		case errors.Is(err, archidekt.ErrNetwork):
			writeError(w, http.StatusBadGateway, "provider unreachable")
		default:
			writeError(w, http.StatusInternalServerError, "import failed")
		}
		return
	}

	imported := collection.Parse(importcache.AsText(cards))

	api.mu.Lock()
	q := collection.Load(api.store)
	collection.Merge(q, imported)
	collection.Save(api.store, q)
	api.mu.Unlock()

	log.Info("deck imported", "cards", len(imported))
	writeJSON(w, http.StatusOK, map[string]any{
		"imported": summarize(imported),
		"summary":  summarize(q),
	})
}
