package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	for _, env := range []string{"dev", "prod", ""} {
		l, err := New(Config{Env: env, Level: "warn", ServiceName: "document-manager-api"})
		require.NoError(t, err)
		require.NotNil(t, l)

		assert.False(t, l.Core().Enabled(zapcore.InfoLevel), env)
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel), env)
	}
}

func TestFrom(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core).With(zap.String("request_id", "r-1"))
	fallback := zap.NewNop()

	assert.Same(t, fallback, From(context.Background(), fallback))

	ctx := ToContext(context.Background(), scoped)
	From(ctx, fallback).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "r-1", logs.All()[0].ContextMap()["request_id"])
}
