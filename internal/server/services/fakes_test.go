package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/dmitrijs2005/cloudstack/internal/cryptox"
	"github.com/dmitrijs2005/cloudstack/internal/dbx"
	"github.com/dmitrijs2005/cloudstack/internal/server/models"
	"github.com/dmitrijs2005/cloudstack/internal/server/repositories/items"
	"github.com/dmitrijs2005/cloudstack/internal/server/repositories/users"
)

// cheap argon2 parameters so tests stay fast
var testParams = cryptox.Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUser struct {
	hash   string
	active bool
}

// fakeUsersRepo emulates the users table in memory.
type fakeUsersRepo struct {
	mu          sync.Mutex
	tableExists bool
	rows        map[string]fakeUser

	createErr error
	insertErr error
	findErr   error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{rows: map[string]fakeUser{}}
}

func (f *fakeUsersRepo) CreateTable(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.tableExists = true
	return nil
}

func (f *fakeUsersRepo) InsertIfAbsent(_ context.Context, email, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if _, ok := f.rows[email]; ok {
		return false, nil
	}
	f.rows[email] = fakeUser{hash: hash, active: true}
	return true, nil
}

func (f *fakeUsersRepo) FindActiveCredential(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return "", f.findErr
	}
	u, ok := f.rows[email]
	if !ok || !u.active {
		return "", common.ErrorNotFound
	}
	return u.hash, nil
}

// fakeItemsRepo emulates the items table in memory, scoping every access by
// owner the same way the SQL does.
type fakeItemsRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Item

	err error
}

func newFakeItemsRepo() *fakeItemsRepo {
	return &fakeItemsRepo{rows: map[int64]models.Item{}}
}

func (f *fakeItemsRepo) CreateTable(context.Context) error { return f.err }

func (f *fakeItemsRepo) Create(_ context.Context, it *models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	row := *it
	row.ID = f.nextID
	f.rows[row.ID] = row
	out := row
	return &out, nil
}

func (f *fakeItemsRepo) ListByOwner(_ context.Context, owner string) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Item
	for _, r := range f.rows {
		if r.OwnerEmail == owner {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeItemsRepo) Update(_ context.Context, it *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	r, ok := f.rows[it.ID]
	if !ok || r.OwnerEmail != it.OwnerEmail {
		return common.ErrorNotFound
	}
	r.Name, r.Description = it.Name, it.Description
	f.rows[it.ID] = r
	return nil
}

func (f *fakeItemsRepo) Delete(_ context.Context, owner string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	r, ok := f.rows[id]
	if !ok || r.OwnerEmail != owner {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeItemsRepo
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.u }
func (m *fakeRepoManager) Items(dbx.DBTX) items.Repository { return m.i }

type fakeIssuer struct {
	subject string
	err     error
}

func (f *fakeIssuer) Issue(subject string) (string, error) {
	f.subject = subject
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + subject, nil
}
