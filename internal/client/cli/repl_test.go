package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Me(ctx context.Context) error     { f.calls = append(f.calls, "me"); return nil }
func (f *fakeExec) List(ctx context.Context) error   { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Add(ctx context.Context) error    { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Edit(ctx context.Context) error   { f.calls = append(f.calls, "edit"); return nil }
func (f *fakeExec) Delete(ctx context.Context) error { f.calls = append(f.calls, "delete"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func run(t *testing.T, exec *fakeExec, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r, &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}
	out := run(t, exec,
		"help",
		"list",
		"login",
		"help",
		"me",
		"l",
		"add",
		"edit",
		"delete",
		"foobar",
		"logout",
		"add",
		"exit",
	)

	assert.Equal(t, []string{"login", "me", "list", "add", "edit", "delete", "logout"}, exec.calls)
	assert.Contains(t, out, "Available commands: login, exit")
	assert.Contains(t, out, "Please login first")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	run(t, exec, "list")

	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\n")), &out)
	assert.Empty(t, exec.calls)
}
