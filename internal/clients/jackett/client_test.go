package jackett

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "testkey", 5*time.Second)
}

func TestConfiguredIndexersFiltersAndPreservesOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.0/indexers", r.URL.Path)
		assert.Equal(t, "testkey", r.URL.Query().Get("apikey"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "zeta", "configured": true},
			{"id": "alpha", "configured": false},
			{"id": "mid", "configured": true},
		})
	})

	ids, err := client.ConfiguredIndexers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "mid"}, ids)
}

func TestConfiguredIndexersMissingFlagMeansUnconfigured(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "noflag"},
			{"id": "yes", "configured": true},
		})
	})

	ids, err := client.ConfiguredIndexers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"yes"}, ids)
}

func TestConfiguredIndexersStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := client.ConfiguredIndexers(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Jackett API Error: 403")
}

func TestSearchParsesResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.0/indexers/acme/results", r.URL.Path)
		assert.Equal(t, "testkey", r.URL.Query().Get("apikey"))
		assert.Equal(t, "ubuntu", r.URL.Query().Get("Query"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Results": []map[string]interface{}{
				{
					"Title":     "Ubuntu 24.04 ISO",
					"Tracker":   "acme",
					"MagnetUri": "magnet:?xt=urn:btih:cafe",
					"Seeders":   12,
				},
				{
					"Title": "Ubuntu 22.04 ISO",
				},
			},
		})
	})

	results, err := client.Search(context.Background(), "acme", "ubuntu")
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.NotNil(t, results[0].MagnetURI)
	assert.Equal(t, "magnet:?xt=urn:btih:cafe", *results[0].MagnetURI)
	assert.Equal(t, 12, *results[0].Seeders)
	assert.Nil(t, results[0].InfoHash)

	assert.Nil(t, results[1].MagnetURI)
	assert.Nil(t, results[1].Seeders)
}

func TestSearchMissingResultsKeyMeansEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{})
	})

	results, err := client.Search(context.Background(), "acme", "ubuntu")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.Search(context.Background(), "acme", "ubuntu")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "testkey", time.Second)
	_, err := client.Search(context.Background(), "acme", "ubuntu")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSearchTimeoutIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.Search(context.Background(), "acme", "ubuntu")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSearchEscapesIndexerID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"Results": []map[string]interface{}{}})
	})

	_, err := client.Search(context.Background(), "odd id", "q")
	require.NoError(t, err)
}

func TestMalformedBodyIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Search(context.Background(), "acme", "ubuntu")
	assert.Error(t, err)

	_, err = client.ConfiguredIndexers(context.Background())
	assert.Error(t, err)
}
