package backend

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/logger"
	"github.com/relabs-tech/pagemap/core/metrics"
	"github.com/relabs-tech/pagemap/core/store"
)

// Backend is the REST facade over the project store
type Backend struct {
	store    store.Store
	notifier core.Notifier
	router   *mux.Router
	metrics  *metrics.Metrics
}

// Builder is a builder helper for the Backend
type Builder struct {
	// Store is the data store. This is mandatory.
	Store store.Store
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// Notifier receives a notification after every successful mutation. This is optional.
	Notifier core.Notifier
}

// New realizes the actual backend. It installs the middleware and adds all
// routes to the router.
func New(bb *Builder) *Backend {
	if bb.Store == nil {
		panic("Store is missing")
	}

	if bb.Router == nil {
		panic("Router is missing")
	}

	b := &Backend{
		store:    bb.Store,
		notifier: bb.Notifier,
		router:   bb.Router,
		metrics:  metrics.New(),
	}

	b.router.Use(handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger.Default()),
		handlers.PrintRecoveryStack(true),
	))
	logger.AddRequestID(b.router)
	b.router.Use(b.metrics.Middleware)
	b.handleCORS()
	b.handleCompression()

	b.handleRoutes(b.router)
	return b
}

// Router returns the router of this backend
func (b *Backend) Router() *mux.Router {
	return b.router
}

// Metrics returns the request metrics of this backend
func (b *Backend) Metrics() *metrics.Metrics {
	return b.metrics
}

// handleRoutes adds all necessary handlers
func (b *Backend) handleRoutes(router *mux.Router) {
	nillog := logger.Default()
	nillog.Debugln("backend: HandleRoutes")

	b.handleProjects(router)
	b.handlePages(router)
	b.handleElements(router)

	b.handleVersion(router)
	b.handleHealth(router)
	b.handleMetrics(router)
}

func (b *Backend) handleMetrics(router *mux.Router) {
	logger.Default().Debugln("  handle metrics route: /metrics GET")
	router.Handle("/metrics", b.metrics.Handler()).Methods(http.MethodOptions, http.MethodGet)
}
