package backend

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/pagemap/core/logger"
)

func (b *Backend) handleHealth(router *mux.Router) {
	logger.Default().Debugln("  handle health route: /healthz GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := b.store.Ping(r.Context()); err != nil {
			logger.FromContext(r.Context()).WithError(err).Warnln("health check failed")
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodOptions, http.MethodGet)
}
