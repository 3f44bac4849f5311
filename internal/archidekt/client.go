// Package archidekt fetches deck lists from the Archidekt API.
package archidekt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL   = "https://archidekt.com/api"
	userAgent = "deckcheck/0.1"
)

const (
	rateLimitRequests = 2
	rateLimitDuration = time.Second
)

// Failure classification happens here, at the fetch boundary; callers use
// errors.Is instead of inspecting message text.
var (
	// ErrNotFound means the deck does not exist or is private.
	ErrNotFound = errors.New("deck not found or private")
	// ErrNetwork wraps transport-level failures.
	ErrNetwork = errors.New("network failure")
)

// CardQuantity is one (name, quantity) pair from a fetched deck.
type CardQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Archidekt API client.
func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDuration/time.Duration(rateLimitRequests)), rateLimitRequests),
	}
}

// SetBaseURL overrides the API endpoint, mainly for tests and config.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// deckResponse mirrors the provider's deck document; only the card names and
// counts are of interest.
type deckResponse struct {
	Cards []struct {
		Quantity int `json:"quantity"`
		Card     struct {
			OracleCard struct {
				Name string `json:"name"`
			} `json:"oracleCard"`
		} `json:"card"`
	} `json:"cards"`
}

// FetchDeck retrieves the card list of one deck by its numeric identifier.
func (c *Client) FetchDeck(ctx context.Context, id string) ([]CardQuantity, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/decks/"+id+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: deck %s", ErrNotFound, id)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))
	}

	var dr deckResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("decode deck %s: %w", id, err)
	}

	cards := make([]CardQuantity, 0, len(dr.Cards))
	for _, entry := range dr.Cards {
		name := entry.Card.OracleCard.Name
		if name == "" || entry.Quantity <= 0 {
			continue
		}
		cards = append(cards, CardQuantity{Name: name, Quantity: entry.Quantity})
	}
	return cards, nil
}
