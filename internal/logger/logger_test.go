package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]*zapcore.Level{
		"debug":   levelPtr(zapcore.DebugLevel),
		"WARN":    levelPtr(zapcore.WarnLevel),
		" error ": levelPtr(zapcore.ErrorLevel),
		"verbose": nil,
		"":        levelPtr(zapcore.InfoLevel),
	}
	for in, want := range tests {
		got := parseLevel(in)
		if want == nil {
			assert.Nil(t, got, in)
			continue
		}
		require.NotNil(t, got, in)
		assert.Equal(t, *want, *got, in)
	}
}

func TestContextLogger(t *testing.T) {
	fallback := Nop()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	reqLog := fallback.With(String("request_id", "abc"))
	ctx := IntoContext(context.Background(), reqLog)
	assert.Same(t, reqLog, FromContext(ctx, fallback))
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
