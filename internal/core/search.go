package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"driftnet/internal/clients/jackett"
)

// StreamEntry is one element of the search stream: a NormalizedResult or an
// ErrorRecord.
type StreamEntry any

// Searcher fans a query out to every configured indexer and streams the
// answers back in completion order.
type Searcher struct {
	registry *Registry
	client   *jackett.Client
	logger   *logrus.Logger
}

func NewSearcher(registry *Registry, client *jackett.Client, logger *logrus.Logger) *Searcher {
	return &Searcher{
		registry: registry,
		client:   client,
		logger:   logger,
	}
}

// Search launches one concurrent query per configured indexer and returns a
// channel carrying every indexer's entries as that indexer completes. The
// channel closes once all indexers have been drained; an empty registry
// yields an immediately closed channel. The only error returned here is a
// failure to establish the registry itself — per-indexer failures arrive
// inline as ErrorRecord entries. Cancelling ctx abandons in-flight calls.
func (s *Searcher) Search(ctx context.Context, query string) (<-chan StreamEntry, error) {
	indexers, err := s.registry.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan StreamEntry)
	var wg sync.WaitGroup

	for _, id := range indexers {
		wg.Add(1)
		go func(indexerID string) {
			defer wg.Done()
			for _, entry := range s.queryIndexer(ctx, indexerID, query) {
				select {
				case out <- entry:
				case <-ctx.Done():
					return
				}
			}
		}(id)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

// queryIndexer is one leg of the fan-out: a single attempt against a single
// indexer, with failures degraded to a one-element error batch so they never
// propagate past this indexer.
func (s *Searcher) queryIndexer(ctx context.Context, indexerID, query string) []StreamEntry {
	s.logger.Debugf("Starting query for indexer %s", indexerID)
	start := time.Now()

	results, err := s.client.Search(ctx, indexerID, query)
	elapsed := time.Since(start)

	if err != nil {
		var apiErr *jackett.APIError
		if errors.As(err, &apiErr) {
			msg := fmt.Sprintf("Error fetching from indexer %s: %d", indexerID, apiErr.StatusCode)
			s.logger.Error(msg)
			return []StreamEntry{ErrorRecord{Error: msg}}
		}
		msg := fmt.Sprintf("Exception fetching from indexer %s: %v", indexerID, err)
		s.logger.Error(msg)
		return []StreamEntry{ErrorRecord{Error: msg}}
	}

	s.logger.Infof("Indexer %s returned %d results. Time taken: %.2f seconds", indexerID, len(results), elapsed.Seconds())

	batch := make([]StreamEntry, 0, len(results))
	for _, raw := range results {
		batch = append(batch, Normalize(raw))
	}
	return batch
}
