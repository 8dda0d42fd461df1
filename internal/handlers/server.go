package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"driftnet/internal/config"
	"driftnet/internal/core"
)

type Server struct {
	config     *config.Config
	logger     *logrus.Logger
	httpServer *http.Server
	apiHandler *APIHandler
}

func NewServer(cfg *config.Config, searcher *core.Searcher, registry *core.Registry, logger *logrus.Logger) *Server {
	return &Server{
		config:     cfg,
		logger:     logger,
		apiHandler: NewAPIHandler(searcher, registry, logger),
	}
}

// Handler assembles the full middleware/router stack.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/search", s.apiHandler.Search).Methods("GET")
	router.HandleFunc("/indexers", s.apiHandler.Indexers).Methods("GET")
	router.HandleFunc("/status", s.apiHandler.Status).Methods("GET")
	router.HandleFunc("/", s.apiHandler.Root).Methods("GET")

	handler := cors.AllowAll().Handler(router)
	return requestLogger(s.logger, handler)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.App.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: /search holds the connection open while the
		// fan-out streams.
	}

	s.logger.Infof("Starting server on port %d", s.config.App.Port)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
