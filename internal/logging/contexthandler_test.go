package logging_test

import (
	"bytes"
	"context"
	"github.com/myrjola/bayescalc/internal/logging"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
)

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil))).With(slog.String("source", "test"))

	ctx := logging.WithAttrs(context.Background(), slog.String("uri", "/report/pdf"))
	ctx = logging.WithAttrs(ctx, slog.Int("steps", 3))
	logger.InfoContext(ctx, "rendered report")

	out := buf.String()
	require.Contains(t, out, "source=test")
	require.Contains(t, out, "uri=/report/pdf")
	require.Contains(t, out, "steps=3")
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	_, err = logging.ParseLevel("chatty")
	require.Error(t, err)
}
