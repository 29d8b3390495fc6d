package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FanOut(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	infoHandler := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	errHandler := slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError})

	logger := slog.New(NewMultiHandler(infoHandler, errHandler))

	logger.Info("just info")
	logger.Error("something broke", "error", "boom")

	assert.Contains(t, infoBuf.String(), "just info")
	assert.Contains(t, infoBuf.String(), "something broke")
	assert.NotContains(t, errBuf.String(), "just info")
	assert.Contains(t, errBuf.String(), "boom")
}

func TestMultiHandler_Enabled(t *testing.T) {
	errHandler := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	m := NewMultiHandler(errHandler)
	require.NotNil(t, m)

	ctx := context.Background()
	assert.False(t, m.Enabled(ctx, slog.LevelInfo))
	assert.True(t, m.Enabled(ctx, slog.LevelError))
}
