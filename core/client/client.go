/*
Package client provides easy and fast access to the pagemap REST api

Instead of marshalling HTTP, the client can talk directly to the mux router. This
is perfectly suited for unit tests. With NewWithURL the same client talks to a
running service over HTTP.
*/
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/pagemap/core/store"
)

// Client provides easy access to the REST API.
type Client struct {
	router     *mux.Router
	httpClient *http.Client
	url        string
	ctx        context.Context

	defaultHeaders map[string]string
}

// Message is the response of a delete
type Message struct {
	Message string `json:"message"`
}

// NewWithRouter creates a client to make pseudo-REST requests to the backend,
// through the mux router
//
// WithContext() specifies a different base context all together.
func NewWithRouter(router *mux.Router) Client {
	return Client{
		router:         router,
		defaultHeaders: map[string]string{},
	}
}

// NewWithURL creates a client to make REST requests to the backend
func NewWithURL(url string) Client {
	return Client{
		url:            strings.TrimSuffix(url, "/"),
		httpClient:     &http.Client{Timeout: 20 * time.Second},
		defaultHeaders: map[string]string{},
	}
}

// WithHeader returns a new client with a default header added
func (c Client) WithHeader(key string, value string) Client {
	headers := make(map[string]string, len(c.defaultHeaders)+1)
	for k, v := range c.defaultHeaders {
		headers[k] = v
	}
	headers[key] = value
	c.defaultHeaders = headers
	return c
}

// WithContext returns a new client with specific request context
func (c Client) WithContext(ctx context.Context) Client {
	c.ctx = ctx
	return c
}

// Context returns the request context of the client
func (c Client) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// ListProjects returns all projects with their pages and elements
func (c Client) ListProjects() ([]store.ProjectTree, error) {
	var projects []store.ProjectTree
	_, err := c.RawGet("/projects", &projects)
	return projects, err
}

// CreateProject creates a project
func (c Client) CreateProject(in store.ProjectInput) (*store.Project, error) {
	var project *store.Project
	_, err := c.RawPost("/projects", &in, &project)
	return project, err
}

// UpdateProject updates a project. The returned project is nil if id did not exist.
func (c Client) UpdateProject(id string, in store.ProjectInput) (*store.Project, error) {
	var project *store.Project
	_, err := c.RawPut("/projects/"+id, &in, &project)
	return project, err
}

// DeleteProject deletes a project
func (c Client) DeleteProject(id string) (string, error) {
	return c.deleteWithMessage("/projects/" + id)
}

// CreatePage creates a page
func (c Client) CreatePage(in store.PageInput) (*store.Page, error) {
	var page *store.Page
	_, err := c.RawPost("/pages", &in, &page)
	return page, err
}

// UpdatePage updates a page. The returned page is nil if id did not exist.
func (c Client) UpdatePage(id string, in store.PageInput) (*store.Page, error) {
	var page *store.Page
	_, err := c.RawPut("/pages/"+id, &in, &page)
	return page, err
}

// DeletePage deletes a page
func (c Client) DeletePage(id string) (string, error) {
	return c.deleteWithMessage("/pages/" + id)
}

// CreateElement creates an element
func (c Client) CreateElement(in store.ElementInput) (*store.Element, error) {
	var element *store.Element
	_, err := c.RawPost("/elements", &in, &element)
	return element, err
}

// UpdateElement updates an element. The returned element is nil if id did not exist.
func (c Client) UpdateElement(id string, in store.ElementInput) (*store.Element, error) {
	var element *store.Element
	_, err := c.RawPut("/elements/"+id, &in, &element)
	return element, err
}

// DeleteElement deletes an element
func (c Client) DeleteElement(id string) (string, error) {
	return c.deleteWithMessage("/elements/" + id)
}

func (c Client) deleteWithMessage(path string) (string, error) {
	var msg Message
	_, err := c.RawDelete(path, &msg)
	return msg.Message, err
}

// RawGet gets the resource from path. Expects http.StatusOK as response, otherwise it will
// flag an error. Returns the actual http status code.
//
// result can also be a raw *[]byte, or nil.
func (c Client) RawGet(path string, result interface{}) (int, error) {
	return c.do(http.MethodGet, path, nil, result)
}

// RawPost posts a resource to path. Expects http.StatusOK as response, otherwise it will
// flag an error. Returns the actual http status code.
//
// body can also be a []byte, result can also be raw *[]byte.
// result can be nil.
func (c Client) RawPost(path string, body interface{}, result interface{}) (int, error) {
	return c.do(http.MethodPost, path, body, result)
}

// RawPut puts a resource to path. Expects http.StatusOK as response, otherwise it will
// flag an error. Returns the actual http status code.
//
// body can also be a []byte, result can also be raw *[]byte.
// result can be nil.
func (c Client) RawPut(path string, body interface{}, result interface{}) (int, error) {
	return c.do(http.MethodPut, path, body, result)
}

// RawDelete deletes the resource at path. Expects http.StatusOK as response, otherwise
// it will flag an error. Returns the actual http status code.
func (c Client) RawDelete(path string, result interface{}) (int, error) {
	return c.do(http.MethodDelete, path, nil, result)
}

func (c Client) do(method, path string, body interface{}, result interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		j, ok := body.([]byte)
		if !ok {
			var err error
			j, err = json.Marshal(body)
			if err != nil {
				return http.StatusBadRequest, fmt.Errorf("%s to %s: %w", method, path, err)
			}
		}
		reader = bytes.NewBuffer(j)
	}

	r, err := http.NewRequestWithContext(c.Context(), method, c.url+path, reader)
	if err != nil {
		return http.StatusBadRequest, fmt.Errorf("%s to %s: %w", method, path, err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.defaultHeaders {
		r.Header.Add(key, value)
	}

	var res *http.Response
	var resBody []byte
	if c.router != nil {
		rec := httptest.NewRecorder()
		c.router.ServeHTTP(rec, r)
		res = rec.Result()
		resBody = rec.Body.Bytes()
	} else {
		res, err = c.httpClient.Do(r)
		if err != nil {
			return http.StatusInternalServerError, err
		}
		defer res.Body.Close()
		resBody, _ = io.ReadAll(res.Body)
	}
	status := res.StatusCode
	if status != http.StatusOK {
		return status, fmt.Errorf("handler returned wrong status code: got %v want %v. Error: %s",
			status, http.StatusOK, strings.TrimSpace(string(resBody)))
	}

	if len(resBody) > 0 && result != nil {
		if raw, ok := result.(*[]byte); ok {
			*raw = resBody
		} else {
			err = json.Unmarshal(resBody, result)
		}
	}
	return status, err
}
