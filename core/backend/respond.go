package backend

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError reports any failure as 500 with the raw error message
func writeError(w http.ResponseWriter, err error) {
	data, _ := json.Marshal(errorResponse{Error: err.Error()})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(data)
}

// decodeBody reads a JSON request body into v. Bodies that are empty or not
// declared as application/json leave v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (b *Backend) storeError(w http.ResponseWriter, r *http.Request, resource string, operation core.Operation, err error) {
	rlog := logger.FromContext(r.Context())
	rlog.WithError(err).Errorf("%s %s failed", operation, resource)
	b.metrics.RecordStoreError(resource, string(operation))
	writeError(w, err)
}

func (b *Backend) notify(r *http.Request, resource string, operation core.Operation, payload []byte) {
	if b.notifier == nil {
		return
	}
	logger.FromContext(r.Context()).Debugf("notify %s %s", operation, resource)
	b.notifier.Notify(resource, operation, payload)
}

// respondRow writes the row returned by a create or update. A nil row means the
// update matched nothing, which is answered with null.
func respondRow[T any](b *Backend, w http.ResponseWriter, r *http.Request, resource string, operation core.Operation, row *T, err error) {
	if err == nil && row == nil && operation == core.OperationCreate {
		err = errors.New("no row returned")
	}
	if err != nil {
		b.storeError(w, r, resource, operation, err)
		return
	}
	if row == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	data, err := json.Marshal(row)
	if err != nil {
		b.storeError(w, r, resource, operation, err)
		return
	}
	b.notify(r, resource, operation, data)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// respondDeleted writes the success message of a delete. The message is the same
// whether a row was deleted or not, only an actual delete is notified.
func (b *Backend) respondDeleted(w http.ResponseWriter, r *http.Request, resource, id, message string, deleted int64, err error) {
	if err != nil {
		b.storeError(w, r, resource, core.OperationDelete, err)
		return
	}
	if deleted > 0 {
		payload, _ := json.Marshal(map[string]string{"id": id})
		b.notify(r, resource, core.OperationDelete, payload)
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}
