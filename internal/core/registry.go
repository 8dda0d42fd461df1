package core

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"driftnet/internal/clients/jackett"
)

const snapshotKey = "configured-indexers"

// Registry caches the set of configured indexer ids so the search path does
// not hit Jackett's indexer listing on every query. The in-memory snapshot
// is authoritative within the TTL; the JSON file is a durable copy written
// on every refresh. A restart always starts stale.
type Registry struct {
	client *jackett.Client
	cache  *gocache.Cache
	logger *logrus.Logger
	file   string

	mu sync.Mutex // serializes snapshot file writes
}

func NewRegistry(client *jackett.Client, file string, ttl time.Duration, logger *logrus.Logger) *Registry {
	return &Registry{
		client: client,
		cache:  gocache.New(ttl, 10*time.Minute),
		logger: logger,
		file:   file,
	}
}

// Current returns the configured indexer ids, refreshing from Jackett only
// when the snapshot has expired. An upstream failure during a refresh is a
// hard error; there is no stale fallback.
func (r *Registry) Current(ctx context.Context) ([]string, error) {
	if v, ok := r.cache.Get(snapshotKey); ok {
		return v.([]string), nil
	}

	r.logger.Info("Indexer cache is stale or empty, fetching configured indexers from Jackett")
	return r.Refresh(ctx)
}

// Refresh always queries Jackett, ignoring the TTL. Used by the /indexers
// path, which wants current truth rather than a cached list.
func (r *Registry) Refresh(ctx context.Context) ([]string, error) {
	indexers, err := r.client.ConfiguredIndexers(ctx)
	if err != nil {
		r.logger.Errorf("Failed to fetch configured indexers: %v", err)
		return nil, err
	}

	r.persist(indexers)
	r.cache.Set(snapshotKey, indexers, gocache.DefaultExpiration)
	return indexers, nil
}

// persist writes the durable copy. Failure is logged and otherwise ignored;
// the in-memory snapshot keeps serving the fresh window.
func (r *Registry) persist(indexers []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(indexers)
	if err != nil {
		r.logger.Errorf("Error encoding cache file: %v", err)
		return
	}
	if err := os.WriteFile(r.file, data, 0644); err != nil {
		r.logger.Errorf("Error saving cache file: %v", err)
	}
}
