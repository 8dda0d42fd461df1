package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/mem"
	"github.com/sirupsen/logrus"

	"driftnet/internal/clients/jackett"
	"driftnet/internal/core"
)

type APIHandler struct {
	searcher *core.Searcher
	registry *core.Registry
	logger   *logrus.Logger
	started  time.Time
}

func NewAPIHandler(searcher *core.Searcher, registry *core.Registry, logger *logrus.Logger) *APIHandler {
	return &APIHandler{
		searcher: searcher,
		registry: registry,
		logger:   logger,
		started:  time.Now(),
	}
}

// A helper function to respond with JSON
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to respond with a JSON error
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondUpstreamError relays Jackett's own status code when it answered
// with one, and falls back to 500 for transport failures.
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *jackett.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// Search streams results from every configured indexer as server-sent
// events, one event per result, in whatever order the indexers answer.
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	stream, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		h.logger.Errorf("Search failed before fan-out: %v", err)
		respondUpstreamError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for entry := range stream {
		data, err := json.Marshal(entry)
		if err != nil {
			h.logger.Errorf("Failed to encode stream entry: %v", err)
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}

// Indexers always refreshes from Jackett; callers of this endpoint want the
// current list, not a cached one.
func (h *APIHandler) Indexers(w http.ResponseWriter, r *http.Request) {
	indexers, err := h.registry.Refresh(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"indexers": indexers})
}

// Root serves the greeting.
func (h *APIHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Hello freeloader!!, feel free to use /search and /indexers",
	})
}

// Status reports a small process/system snapshot.
func (h *APIHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_used_percent"] = vm.UsedPercent
	} else {
		h.logger.Errorf("Failed to read system memory: %v", err)
	}

	respondJSON(w, http.StatusOK, status)
}
