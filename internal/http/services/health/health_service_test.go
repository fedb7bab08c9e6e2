package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ok(context.Context) error   { return nil }
func fail(context.Context) error { return errors.New("boom") }

func TestCheck(t *testing.T) {
	ctx := context.Background()

	r := NewHealthService(Deps{DBCheck: ok, Version: "1.0"}).Check(ctx)
	assert.Equal(t, "ready", r.Status)
	assert.Equal(t, "disabled", r.Components["redis"].Status)
	assert.Equal(t, "1.0", r.Version)

	r = NewHealthService(Deps{DBCheck: ok, RedisCheck: fail}).Check(ctx)
	assert.Equal(t, "degraded", r.Status)

	r = NewHealthService(Deps{DBCheck: fail, RedisCheck: ok}).Check(ctx)
	assert.Equal(t, "unavailable", r.Status)
	assert.Equal(t, "unavailable", r.Components["store"].Message)

	r = NewHealthService(Deps{}).Check(ctx)
	assert.Equal(t, "unavailable", r.Status)
}
