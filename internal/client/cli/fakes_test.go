package cli

import (
	"bufio"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/dmitrijs2005/cloudstack/internal/client/client"
)

type fakeClient struct {
	mu sync.Mutex

	loginEmail, loginPass string
	loginErr              error
	loggedOut             int

	me    string
	meErr error

	items   []client.Item
	listErr error

	created   []client.Item
	createErr error

	updated   []client.Item
	updateErr error

	deleted   []int64
	deleteErr error

	pingErr error
	pings   int
}

func (f *fakeClient) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	return f.loginErr
}
func (f *fakeClient) Logout() { f.loggedOut++ }
func (f *fakeClient) Me(context.Context) (string, error) {
	return f.me, f.meErr
}
func (f *fakeClient) ListItems(context.Context) ([]client.Item, error) {
	return f.items, f.listErr
}
func (f *fakeClient) CreateItem(_ context.Context, name, description string) (*client.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	it := client.Item{ID: int64(len(f.created) + 1), Name: name, Description: description}
	f.created = append(f.created, it)
	return &it, nil
}
func (f *fakeClient) UpdateItem(_ context.Context, id int64, name, description string) (*client.Item, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	it := client.Item{ID: id, Name: name, Description: description}
	f.updated = append(f.updated, it)
	return &it, nil
}
func (f *fakeClient) DeleteItem(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeClient) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeClient) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

// stubInputs feeds answers to getSimpleText in order and returns password
// from getPassword.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		s := answers[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
