package rest

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/dmitrijs2005/cloudstack/internal/server/models"
)

// fakeAuthenticator accepts a single email/password pair.
type fakeAuthenticator struct {
	email, password string
	issue           func(string) (string, error)
	err             error
}

func (f *fakeAuthenticator) Login(_ context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if email != f.email || password != f.password {
		return "", common.ErrorUnauthorized
	}
	return f.issue(email)
}

// memItems is an owner-scoped in-memory ItemStore that counts calls.
type memItems struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Item
	calls  int
	err    error
}

func newMemItems() *memItems { return &memItems{rows: map[int64]models.Item{}} }

func (m *memItems) Create(_ context.Context, owner, name, description string) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	it := models.Item{ID: m.nextID, Name: name, Description: description, OwnerEmail: owner}
	m.rows[it.ID] = it
	return &it, nil
}

func (m *memItems) List(_ context.Context, owner string) ([]*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := []*models.Item{}
	for _, it := range m.rows {
		if it.OwnerEmail == owner {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memItems) Update(_ context.Context, owner string, id int64, name, description string) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	it, ok := m.rows[id]
	if !ok || it.OwnerEmail != owner {
		return nil, common.ErrorNotFound
	}
	it.Name, it.Description = name, description
	m.rows[id] = it
	return &it, nil
}

func (m *memItems) Delete(_ context.Context, owner string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	it, ok := m.rows[id]
	if !ok || it.OwnerEmail != owner {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memItems) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
