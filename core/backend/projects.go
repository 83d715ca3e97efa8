package backend

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/logger"
	"github.com/relabs-tech/pagemap/core/store"
)

const resourceProject = "project"

func (b *Backend) handleProjects(router *mux.Router) {
	nillog := logger.Default()
	nillog.Debugln("projects")
	nillog.Debugln("  handle project routes: /projects GET,POST")
	nillog.Debugln("  handle project routes: /projects/{id} PUT,DELETE")

	router.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		projects, err := b.store.ListProjects(r.Context())
		if err != nil {
			b.storeError(w, r, resourceProject, core.OperationList, err)
			return
		}
		writeJSON(w, http.StatusOK, projects)
	}).Methods(http.MethodOptions, http.MethodGet)

	router.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		var in store.ProjectInput
		if err := decodeBody(r, &in); err != nil {
			b.storeError(w, r, resourceProject, core.OperationCreate, err)
			return
		}
		project, err := b.store.CreateProject(r.Context(), in)
		respondRow(b, w, r, resourceProject, core.OperationCreate, project, err)
	}).Methods(http.MethodOptions, http.MethodPost)

	router.HandleFunc("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in store.ProjectInput
		if err := decodeBody(r, &in); err != nil {
			b.storeError(w, r, resourceProject, core.OperationUpdate, err)
			return
		}
		project, err := b.store.UpdateProject(r.Context(), mux.Vars(r)["id"], in)
		respondRow(b, w, r, resourceProject, core.OperationUpdate, project, err)
	}).Methods(http.MethodOptions, http.MethodPut)

	router.HandleFunc("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		deleted, err := b.store.DeleteProject(r.Context(), id)
		b.respondDeleted(w, r, resourceProject, id, "Project deleted successfully", deleted, err)
	}).Methods(http.MethodOptions, http.MethodDelete)
}
