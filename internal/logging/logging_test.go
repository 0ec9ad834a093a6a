package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextAttrs_EmptyContextYieldsNoAttrs(t *testing.T) {
	t.Parallel()
	attrs := contextAttrs(context.Background())
	assert.Empty(t, attrs)
}

func TestContextAttrs_CollectsAllThreeKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ctx = WithComponent(ctx, "scope")
	ctx = WithAgent(ctx, "roo")
	ctx = WithInvocation(ctx, "inv-123")

	attrs := contextAttrs(ctx)
	assert.Len(t, attrs, 3)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("check", attrs...)
	out := buf.String()
	assert.Contains(t, out, `"component":"scope"`)
	assert.Contains(t, out, `"agent":"roo"`)
	assert.Contains(t, out, `"invocation_id":"inv-123"`)
}

func TestContextAttrs_IgnoresEmptyValues(t *testing.T) {
	t.Parallel()
	ctx := WithComponent(context.Background(), "")
	attrs := contextAttrs(ctx)
	assert.Empty(t, attrs)
}

func TestWithComponent_DoesNotMutateParentContext(t *testing.T) {
	t.Parallel()
	parent := context.Background()
	child := WithComponent(parent, "hooks")

	assert.Empty(t, contextAttrs(parent))
	assert.Len(t, contextAttrs(child), 1)
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("GOVGATE_LOG_LEVEL", tt.env)
			assert.Equal(t, tt.want, levelFromEnv())
		})
	}
}

func TestNewHandler_JSONWhenFormatForced(t *testing.T) {
	t.Setenv("GOVGATE_LOG_FORMAT", "json")
	h := newHandler(nil)
	_, isJSON := h.(*slog.JSONHandler)
	assert.True(t, isJSON)
}
