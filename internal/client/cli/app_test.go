package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMode_ChangesAndReportsOnce(t *testing.T) {
	a, out := newTestApp(&fakeClient{})

	a.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, a.Mode())
	assert.Contains(t, out.String(), "Switched to online mode")

	out.Reset()
	a.setMode(ModeOnline)
	assert.Empty(t, out.String(), "no output when mode does not change")

	a.setMode(ModeOffline)
	assert.Contains(t, out.String(), "Switched to offline mode")
}

func TestGetStatus(t *testing.T) {
	a, _ := newTestApp(&fakeClient{})
	assert.Equal(t, "", a.getStatus())

	a.mode = ModeOffline
	assert.Equal(t, "(offline)", a.getStatus())

	a.userName = "u@x"
	assert.Equal(t, "(u@x offline)", a.getStatus())
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	f := &fakeClient{}
	a, _ := newTestApp(f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	f.setPingErr(errors.New("down"))
	require.Eventually(t, func() bool { return a.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_LoginThenExit(t *testing.T) {
	f := &fakeClient{}
	a, out := newTestApp(f)
	a.config.OnlineCheckInterval = 0
	a.reader.Reset(strings.NewReader("me\nexit\n"))
	f.me = "demo@demo.com"
	stubInputs(t, "password", "demo@demo.com")

	a.Run(context.Background())

	assert.Equal(t, "demo@demo.com", f.loginEmail)
	assert.Contains(t, out.String(), "Signed in as demo@demo.com")
	assert.Contains(t, out.String(), "Bye!")
}
