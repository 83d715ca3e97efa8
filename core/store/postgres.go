package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/relabs-tech/pagemap/core/csql"
)

// Postgres is the Store backed by a postgres database. The tables are resolved
// through the connection's search_path, see csql.Open.
type Postgres struct {
	db *csql.DB
}

var _ Store = (*Postgres)(nil)

// NewPostgres returns a store on top of db. The tables must exist, see csql.DB.Migrate.
func NewPostgres(db *csql.DB) *Postgres {
	return &Postgres{db: db}
}

const listProjectsQuery = `SELECT COALESCE(json_agg(json_build_object(
	'id', p.id,
	'name', p.name,
	'created_at', p.created_at,
	'pages', (
		SELECT COALESCE(json_agg(json_build_object(
			'id', pg.id,
			'name', pg.name,
			'project_id', pg.project_id,
			'created_at', pg.created_at,
			'elements', (
				SELECT COALESCE(json_agg(json_build_object(
					'id', e.id,
					'page_id', e.page_id,
					'selector_type', e.selector_type,
					'selector_value', e.selector_value,
					'action_type', e.action_type,
					'action_value', e.action_value,
					'created_at', e.created_at
				) ORDER BY e.id), '[]'::json)
				FROM elements e WHERE e.page_id = pg.id
			)
		) ORDER BY pg.id), '[]'::json)
		FROM pages pg WHERE pg.project_id = p.id
	)
) ORDER BY p.id), '[]'::json)
FROM projects p;`

const (
	projectColumns = `id, name, created_at`
	pageColumns    = `id, name, project_id, created_at`
	elementColumns = `id, page_id, selector_type, selector_value, action_type, action_value, created_at`
)

// ListProjects returns all projects with their pages and elements in one query
func (s *Postgres) ListProjects(ctx context.Context) ([]ProjectTree, error) {
	var data []byte
	if err := s.db.QueryRowContext(ctx, listProjectsQuery).Scan(&data); err != nil {
		return nil, err
	}
	projects := []ProjectTree{}
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("cannot decode projects: %w", err)
	}
	return projects, nil
}

// CreateProject inserts a project
func (s *Postgres) CreateProject(ctx context.Context, in ProjectInput) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO projects (name) VALUES ($1) RETURNING `+projectColumns+`;`, in.Name)
	return scanProject(row)
}

// UpdateProject updates the name of a project. An absent name keeps the current one.
func (s *Postgres) UpdateProject(ctx context.Context, id string, in ProjectInput) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE projects SET name = COALESCE($2, name) WHERE id = $1 RETURNING `+projectColumns+`;`, id, in.Name)
	return noRowsIsNil(scanProject(row))
}

// DeleteProject deletes a project. Pages and elements go with it if and only if
// the schema cascades.
func (s *Postgres) DeleteProject(ctx context.Context, id string) (int64, error) {
	return rowsAffected(s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id))
}

// CreatePage inserts a page
func (s *Postgres) CreatePage(ctx context.Context, in PageInput) (*Page, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO pages (name, project_id) VALUES ($1, $2) RETURNING `+pageColumns+`;`, in.Name, in.ProjectID)
	return scanPage(row)
}

// UpdatePage updates the name of a page. An absent name keeps the current one.
func (s *Postgres) UpdatePage(ctx context.Context, id string, in PageInput) (*Page, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE pages SET name = COALESCE($2, name) WHERE id = $1 RETURNING `+pageColumns+`;`, id, in.Name)
	return noRowsIsNil(scanPage(row))
}

// DeletePage deletes a page
func (s *Postgres) DeletePage(ctx context.Context, id string) (int64, error) {
	return rowsAffected(s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1;`, id))
}

// CreateElement inserts an element
func (s *Postgres) CreateElement(ctx context.Context, in ElementInput) (*Element, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO elements (page_id, selector_type, selector_value, action_type, action_value)
VALUES ($1, $2, $3, $4, $5) RETURNING `+elementColumns+`;`,
		in.PageID, in.SelectorType, in.SelectorValue, in.ActionType, in.ActionValue)
	return scanElement(row)
}

// UpdateElement updates selector and action of an element. Absent fields keep
// their current values.
func (s *Postgres) UpdateElement(ctx context.Context, id string, in ElementInput) (*Element, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE elements SET
selector_type = COALESCE($2, selector_type),
selector_value = COALESCE($3, selector_value),
action_type = COALESCE($4, action_type),
action_value = COALESCE($5, action_value)
WHERE id = $1 RETURNING `+elementColumns+`;`,
		id, in.SelectorType, in.SelectorValue, in.ActionType, in.ActionValue)
	return noRowsIsNil(scanElement(row))
}

// DeleteElement deletes an element
func (s *Postgres) DeleteElement(ctx context.Context, id string) (int64, error) {
	return rowsAffected(s.db.ExecContext(ctx, `DELETE FROM elements WHERE id = $1;`, id))
}

// Ping checks the database connection
func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

func scanProject(row *sql.Row) (*Project, error) {
	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPage(row *sql.Row) (*Page, error) {
	var p Page
	if err := row.Scan(&p.ID, &p.Name, &p.ProjectID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanElement(row *sql.Row) (*Element, error) {
	var e Element
	if err := row.Scan(&e.ID, &e.PageID, &e.SelectorType, &e.SelectorValue,
		&e.ActionType, &e.ActionValue, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// noRowsIsNil turns a zero-row update into a nil result without error
func noRowsIsNil[T any](v *T, err error) (*T, error) {
	if errors.Is(err, csql.ErrNoRows) {
		return nil, nil
	}
	return v, err
}
