package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, FormatText, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, FormatText, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, FormatText, slog.LevelInfo).With("module", "rest")

	log.Info(context.Background(), "hello", "k", "v")

	assert.Contains(t, buf.String(), "module=rest")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, FormatJSON, slog.LevelInfo)

	log.Info(context.Background(), "started", "addr", ":8000")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "started", line["msg"])
	assert.Equal(t, ":8000", line["addr"])
}

func TestNop(t *testing.T) {
	var l Logger = Nop{}
	assert.NotPanics(t, func() {
		l.With("a", 1).Info(context.TODO(), "ignored")
	})
}
