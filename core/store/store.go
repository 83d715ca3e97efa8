/*
Package store implements the data access for projects, pages and elements.

Every operation maps to exactly one SQL statement. Errors reported by the
database are returned unchanged, callers decide how to present them.
*/
package store

import (
	"context"
	"time"
)

// Project is one row of the projects table
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one row of the pages table
type Page struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ProjectID int64     `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Element is one row of the elements table. The selector and action
// columns are nullable.
type Element struct {
	ID            int64     `json:"id"`
	PageID        int64     `json:"page_id"`
	SelectorType  *string   `json:"selector_type"`
	SelectorValue *string   `json:"selector_value"`
	ActionType    *string   `json:"action_type"`
	ActionValue   *string   `json:"action_value"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProjectTree is a project with all its pages and their elements
type ProjectTree struct {
	Project
	Pages []PageTree `json:"pages"`
}

// PageTree is a page with all its elements
type PageTree struct {
	Page
	Elements []Element `json:"elements"`
}

// ProjectInput is the request body for creating or updating a project
type ProjectInput struct {
	Name Scalar `json:"name"`
}

// PageInput is the request body for creating or updating a page. ProjectID
// is ignored on update.
type PageInput struct {
	Name      Scalar    `json:"name"`
	ProjectID Reference `json:"project_id"`
}

// ElementInput is the request body for creating or updating an element. PageID
// is ignored on update.
type ElementInput struct {
	PageID        Reference `json:"page_id"`
	SelectorType  Scalar    `json:"selector_type"`
	SelectorValue Scalar    `json:"selector_value"`
	ActionType    Scalar    `json:"action_type"`
	ActionValue   Scalar    `json:"action_value"`
}

// Store is the data access contract of the facade. Identifiers are passed as
// strings and handed to the database unchecked.
//
// Update operations return a nil value and a nil error when no row matched the
// identifier. Delete operations return the number of deleted rows, which is zero
// for an unknown identifier.
type Store interface {
	ListProjects(ctx context.Context) ([]ProjectTree, error)
	CreateProject(ctx context.Context, in ProjectInput) (*Project, error)
	UpdateProject(ctx context.Context, id string, in ProjectInput) (*Project, error)
	DeleteProject(ctx context.Context, id string) (int64, error)

	CreatePage(ctx context.Context, in PageInput) (*Page, error)
	UpdatePage(ctx context.Context, id string, in PageInput) (*Page, error)
	DeletePage(ctx context.Context, id string) (int64, error)

	CreateElement(ctx context.Context, in ElementInput) (*Element, error)
	UpdateElement(ctx context.Context, id string, in ElementInput) (*Element, error)
	DeleteElement(ctx context.Context, id string) (int64, error)

	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error
}
