package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/pixelquest/pkg/api/handlers"
	"github.com/cbodonnell/pixelquest/pkg/api/middleware"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/workers"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
}

type NewAPIServerOptions struct {
	// Host is the interface to bind to. Empty means localhost.
	Host string
	Port int
	Game *host.Host
	// SaveRequests feeds the save worker. Nil disables POST /saves.
	SaveRequests chan<- workers.SaveRequest
}

// NewAPIServer creates a new http.Server exposing the status and control API
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	addr := opts.Host
	if addr == "" {
		addr = "localhost"
	}
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, opts.Port),
		Handler: NewRouter(opts.Game, opts.SaveRequests),
	}
	return &APIServer{
		server: server,
	}
}

// NewRouter registers every API route for h.
func NewRouter(h *host.Host, saveRequests chan<- workers.SaveRequest) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.NewLoggingMiddleware(), middleware.NewCORSMiddleware())

	router.HandleFunc("/status", handlers.HandleStatus(h)).Methods(http.MethodGet)
	router.HandleFunc("/config", handlers.HandleGetConfig(h)).Methods(http.MethodGet)
	router.HandleFunc("/config/physics", handlers.HandlePatchPhysics(h)).Methods(http.MethodPatch)
	router.HandleFunc("/state", handlers.HandleGetState(h)).Methods(http.MethodGet)
	router.HandleFunc("/state", handlers.HandlePatchState(h)).Methods(http.MethodPatch)
	router.HandleFunc("/scenes/{key}/{action}", handlers.HandleSceneAction(h)).Methods(http.MethodPost)
	router.HandleFunc("/debug", handlers.HandlePutDebug(h)).Methods(http.MethodPut)
	router.HandleFunc("/events/stream", handlers.HandleEventStream(h)).Methods(http.MethodGet)
	router.HandleFunc("/events/{name}", handlers.HandleEmitEvent(h)).Methods(http.MethodPost)
	router.HandleFunc("/saves", handlers.HandleListSaves(h)).Methods(http.MethodGet)
	router.HandleFunc("/saves", handlers.HandleSave(h, saveRequests)).Methods(http.MethodPost)

	return router
}

// Handler returns the server's root handler
func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address
func (s *APIServer) Addr() string {
	return s.server.Addr
}

// Start starts the APIServer and blocks until it is stopped
func (s *APIServer) Start() {
	log.Info("API server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
