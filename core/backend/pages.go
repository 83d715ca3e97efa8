package backend

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/logger"
	"github.com/relabs-tech/pagemap/core/store"
)

const resourcePage = "page"

// pages have no list route, they are read as part of GET /projects
func (b *Backend) handlePages(router *mux.Router) {
	nillog := logger.Default()
	nillog.Debugln("pages")
	nillog.Debugln("  handle page routes: /pages POST")
	nillog.Debugln("  handle page routes: /pages/{id} PUT,DELETE")

	router.HandleFunc("/pages", func(w http.ResponseWriter, r *http.Request) {
		var in store.PageInput
		if err := decodeBody(r, &in); err != nil {
			b.storeError(w, r, resourcePage, core.OperationCreate, err)
			return
		}
		page, err := b.store.CreatePage(r.Context(), in)
		respondRow(b, w, r, resourcePage, core.OperationCreate, page, err)
	}).Methods(http.MethodOptions, http.MethodPost)

	router.HandleFunc("/pages/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in store.PageInput
		if err := decodeBody(r, &in); err != nil {
			b.storeError(w, r, resourcePage, core.OperationUpdate, err)
			return
		}
		page, err := b.store.UpdatePage(r.Context(), mux.Vars(r)["id"], in)
		respondRow(b, w, r, resourcePage, core.OperationUpdate, page, err)
	}).Methods(http.MethodOptions, http.MethodPut)

	router.HandleFunc("/pages/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		deleted, err := b.store.DeletePage(r.Context(), id)
		b.respondDeleted(w, r, resourcePage, id, "Page deleted successfully", deleted, err)
	}).Methods(http.MethodOptions, http.MethodDelete)
}
