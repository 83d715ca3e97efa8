package backend_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/store"
)

// memoryStore mimics the postgres store closely enough for handler tests:
// NOT NULL and foreign key violations, bigint id parsing, zero-row updates and
// cascading deletes.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	projects map[int64]store.Project
	pages    map[int64]store.Page
	elements map[int64]store.Element

	// fail makes every operation return this error
	fail    error
	lastIDs []string
}

var _ store.Store = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{
		projects: map[int64]store.Project{},
		pages:    map[int64]store.Page{},
		elements: map[int64]store.Element{},
	}
}

func (s *memoryStore) parseID(id string) (int64, error) {
	s.lastIDs = append(s.lastIDs, id)
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf(`pq: invalid input syntax for type bigint: "%s"`, id)
	}
	return n, nil
}

func (s *memoryStore) parseReference(ref store.Reference, column string) (int64, error) {
	v, err := ref.Value()
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf(`pq: null value in column "%s" violates not-null constraint`, column)
	}
	return s.parseID(v.(string))
}

// text is what postgres stores for a scalar in a text column
func text(v store.Scalar) *string {
	val, err := v.Value()
	if err != nil || val == nil {
		return nil
	}
	s := val.(string)
	return &s
}

func (s *memoryStore) ListProjects(ctx context.Context) ([]store.ProjectTree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	trees := []store.ProjectTree{}
	for _, p := range s.projects {
		tree := store.ProjectTree{Project: p, Pages: []store.PageTree{}}
		for _, pg := range s.pages {
			if pg.ProjectID != p.ID {
				continue
			}
			pageTree := store.PageTree{Page: pg, Elements: []store.Element{}}
			for _, e := range s.elements {
				if e.PageID == pg.ID {
					pageTree.Elements = append(pageTree.Elements, e)
				}
			}
			sort.Slice(pageTree.Elements, func(i, j int) bool { return pageTree.Elements[i].ID < pageTree.Elements[j].ID })
			tree.Pages = append(tree.Pages, pageTree)
		}
		sort.Slice(tree.Pages, func(i, j int) bool { return tree.Pages[i].ID < tree.Pages[j].ID })
		trees = append(trees, tree)
	}
	sort.Slice(trees, func(i, j int) bool { return trees[i].ID < trees[j].ID })
	return trees, nil
}

func (s *memoryStore) CreateProject(ctx context.Context, in store.ProjectInput) (*store.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	name := text(in.Name)
	if name == nil {
		return nil, errors.New(`pq: null value in column "name" violates not-null constraint`)
	}
	s.nextID++
	p := store.Project{ID: s.nextID, Name: *name, CreatedAt: time.Now().UTC()}
	s.projects[p.ID] = p
	return &p, nil
}

func (s *memoryStore) UpdateProject(ctx context.Context, id string, in store.ProjectInput) (*store.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	n, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	p, ok := s.projects[n]
	if !ok {
		return nil, nil
	}
	if name := text(in.Name); name != nil {
		p.Name = *name
	}
	s.projects[n] = p
	return &p, nil
}

func (s *memoryStore) DeleteProject(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	n, err := s.parseID(id)
	if err != nil {
		return 0, err
	}
	if _, ok := s.projects[n]; !ok {
		return 0, nil
	}
	delete(s.projects, n)
	for pid, pg := range s.pages {
		if pg.ProjectID == n {
			s.deletePageLocked(pid)
		}
	}
	return 1, nil
}

func (s *memoryStore) CreatePage(ctx context.Context, in store.PageInput) (*store.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	name := text(in.Name)
	if name == nil {
		return nil, errors.New(`pq: null value in column "name" violates not-null constraint`)
	}
	projectID, err := s.parseReference(in.ProjectID, "project_id")
	if err != nil {
		return nil, err
	}
	if _, ok := s.projects[projectID]; !ok {
		return nil, errors.New(`pq: insert or update on table "pages" violates foreign key constraint "pages_project_id_fkey"`)
	}
	s.nextID++
	p := store.Page{ID: s.nextID, Name: *name, ProjectID: projectID, CreatedAt: time.Now().UTC()}
	s.pages[p.ID] = p
	return &p, nil
}

func (s *memoryStore) UpdatePage(ctx context.Context, id string, in store.PageInput) (*store.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	n, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	p, ok := s.pages[n]
	if !ok {
		return nil, nil
	}
	if name := text(in.Name); name != nil {
		p.Name = *name
	}
	s.pages[n] = p
	return &p, nil
}

func (s *memoryStore) DeletePage(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	n, err := s.parseID(id)
	if err != nil {
		return 0, err
	}
	if _, ok := s.pages[n]; !ok {
		return 0, nil
	}
	s.deletePageLocked(n)
	return 1, nil
}

func (s *memoryStore) deletePageLocked(id int64) {
	delete(s.pages, id)
	for eid, e := range s.elements {
		if e.PageID == id {
			delete(s.elements, eid)
		}
	}
}

func (s *memoryStore) CreateElement(ctx context.Context, in store.ElementInput) (*store.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	pageID, err := s.parseReference(in.PageID, "page_id")
	if err != nil {
		return nil, err
	}
	if _, ok := s.pages[pageID]; !ok {
		return nil, errors.New(`pq: insert or update on table "elements" violates foreign key constraint "elements_page_id_fkey"`)
	}
	s.nextID++
	e := store.Element{
		ID:            s.nextID,
		PageID:        pageID,
		SelectorType:  text(in.SelectorType),
		SelectorValue: text(in.SelectorValue),
		ActionType:    text(in.ActionType),
		ActionValue:   text(in.ActionValue),
		CreatedAt:     time.Now().UTC(),
	}
	s.elements[e.ID] = e
	return &e, nil
}

func (s *memoryStore) UpdateElement(ctx context.Context, id string, in store.ElementInput) (*store.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	n, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	e, ok := s.elements[n]
	if !ok {
		return nil, nil
	}
	if v := text(in.SelectorType); v != nil {
		e.SelectorType = v
	}
	if v := text(in.SelectorValue); v != nil {
		e.SelectorValue = v
	}
	if v := text(in.ActionType); v != nil {
		e.ActionType = v
	}
	if v := text(in.ActionValue); v != nil {
		e.ActionValue = v
	}
	s.elements[n] = e
	return &e, nil
}

func (s *memoryStore) DeleteElement(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	n, err := s.parseID(id)
	if err != nil {
		return 0, err
	}
	if _, ok := s.elements[n]; !ok {
		return 0, nil
	}
	delete(s.elements, n)
	return 1, nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail
}

type notification struct {
	resource  string
	operation core.Operation
	payload   string
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notification
}

func (n *recordingNotifier) Notify(resource string, operation core.Operation, payload []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification{resource, operation, string(payload)})
}

func (n *recordingNotifier) all() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.notifications...)
}
