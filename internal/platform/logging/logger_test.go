package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestLogger_JSONFieldsAndTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf}).Named("enrich").With("run", "r1")

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.Debug("hidden")
	logger.InfoContext(ctx, "lookup failed", "key", "A|2000-01-01", "error", errors.New("boom"), "dangling")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug is below the configured level")

	var got map[string]any
	require.NoError(t, sonic.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "lookup failed", got["msg"])
	assert.Equal(t, "enrich", got["logger"])
	assert.Equal(t, "r1", got["run"])
	assert.Equal(t, "A|2000-01-01", got["key"])
	assert.Equal(t, "boom", got["error"])
	assert.Contains(t, got, "dangling")
	assert.Equal(t, traceID.String(), got["trace_id"])
	assert.Equal(t, spanID.String(), got["span_id"])
}

func TestLogger_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(Options{Level: LevelDebug, Format: "CONSOLE", Output: &buf}).Debug("hello", "count", 3)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), `"count": 3`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Level
		wantErr bool
	}{
		{raw: "debug", want: LevelDebug},
		{raw: " WARN ", want: LevelWarn},
		{raw: "", want: LevelInfo},
		{raw: "error", want: LevelError},
		{raw: "verbose", want: LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v wantErr=%v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q)=%v want=%v", tt.raw, got, tt.want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	assert.NotNil(t, logger.With("k", "v"))
	assert.NoError(t, logger.Sync())
}
