package backend

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/logger"
	"github.com/relabs-tech/pagemap/core/store"
)

const resourceElement = "element"

func (b *Backend) handleElements(router *mux.Router) {
	nillog := logger.Default()
	nillog.Debugln("elements")
	nillog.Debugln("  handle element routes: /elements POST")
	nillog.Debugln("  handle element routes: /elements/{id} PUT,DELETE")

	router.HandleFunc("/elements", func(w http.ResponseWriter, r *http.Request) {
		var in store.ElementInput
		if err := decodeBody(r, &in); err != nil {
			b.storeError(w, r, resourceElement, core.OperationCreate, err)
			return
		}
		element, err := b.store.CreateElement(r.Context(), in)
		respondRow(b, w, r, resourceElement, core.OperationCreate, element, err)
	}).Methods(http.MethodOptions, http.MethodPost)

	router.HandleFunc("/elements/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in store.ElementInput
		if err := decodeBody(r, &in); err != nil {
			b.storeError(w, r, resourceElement, core.OperationUpdate, err)
			return
		}
		element, err := b.store.UpdateElement(r.Context(), mux.Vars(r)["id"], in)
		respondRow(b, w, r, resourceElement, core.OperationUpdate, element, err)
	}).Methods(http.MethodOptions, http.MethodPut)

	router.HandleFunc("/elements/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		deleted, err := b.store.DeleteElement(r.Context(), id)
		b.respondDeleted(w, r, resourceElement, id, "Element deleted successfully", deleted, err)
	}).Methods(http.MethodOptions, http.MethodDelete)
}
