package jackett

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the Jackett aggregate API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Indexer is one entry of the Jackett indexer listing. Only the fields the
// registry cares about are decoded.
type Indexer struct {
	ID         string `json:"id"`
	Configured bool   `json:"configured"`
}

// RawResult is a single search result as Jackett returns it. Every field is
// optional on the wire, so everything is a pointer; nil means the indexer
// did not report the field.
type RawResult struct {
	Title     *string `json:"Title"`
	Link      *string `json:"Link"`
	MagnetURI *string `json:"MagnetUri"`
	InfoHash  *string `json:"InfoHash"`
	Size      *int64  `json:"Size"`
	Seeders   *int    `json:"Seeders"`
	Leechers  *int    `json:"Leechers"`
	Tracker   *string `json:"Tracker"`
	Year      *int    `json:"Year"`
	Details   *string `json:"Details"`
}

// APIError is a non-200 answer from Jackett itself. The status code is kept
// so callers can relay it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ConfiguredIndexers fetches the full indexer listing and returns the ids of
// the entries marked configured, preserving Jackett's order.
func (c *Client) ConfiguredIndexers(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Add("apikey", c.apiKey)

	listURL := fmt.Sprintf("%s/api/v2.0/indexers?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error connecting to Jackett API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Jackett API Error: %d - %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	var indexers []Indexer
	if err := json.NewDecoder(resp.Body).Decode(&indexers); err != nil {
		return nil, fmt.Errorf("failed to decode Jackett indexer list: %w", err)
	}

	configured := make([]string, 0, len(indexers))
	for _, indexer := range indexers {
		if indexer.Configured {
			configured = append(configured, indexer.ID)
		}
	}
	return configured, nil
}

// Search queries one indexer through Jackett. A non-200 answer comes back as
// *APIError; transport failures (including timeouts) are returned wrapped.
func (c *Client) Search(ctx context.Context, indexerID, query string) ([]RawResult, error) {
	params := url.Values{}
	params.Add("apikey", c.apiKey)
	params.Add("Query", query)

	searchURL := fmt.Sprintf("%s/api/v2.0/indexers/%s/results?%s", c.baseURL, url.PathEscape(indexerID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search indexer %s: %w", indexerID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("indexer %s returned status %d", indexerID, resp.StatusCode),
		}
	}

	var body struct {
		Results []RawResult `json:"Results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode results from indexer %s: %w", indexerID, err)
	}

	// A missing Results array is an empty answer, not an error.
	if body.Results == nil {
		return []RawResult{}, nil
	}
	return body.Results, nil
}
