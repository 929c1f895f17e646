package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := context.Background()

	scoped := l.With("backend", "circl")
	scoped.Debug(ctx, "resolved", "parameter_set", "ML-KEM-512")
	scoped.Warn(ctx, "failed", logging.Redacted("secret"))

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "backend=circl")
	assert.Contains(t, out, "parameter_set=ML-KEM-512")
	assert.Contains(t, out, "secret="+logging.Placeholder())
}

func TestNewNilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	logging.New(nil).Info(context.Background(), "hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestDiscard(t *testing.T) {
	l := logging.Discard().With("k", "v")
	l.Error(context.Background(), "dropped")
	assert.NotNil(t, l)
}
