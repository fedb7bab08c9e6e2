package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" warning "))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestFrom_FallsBackToSingleton(t *testing.T) {
	assert.Same(t, L(), From(context.Background()))

	scoped := zap.NewNop()
	ctx := ToContext(context.Background(), scoped)
	assert.Same(t, scoped, From(ctx))
}
