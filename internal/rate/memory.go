package rate

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter es el fallback sin Redis: contadores de ventana fija en go-cache.
// Solo sirve para una instancia.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration
	c      *gocache.Cache
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: window,
		c:      gocache.New(window, 2*window),
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	// Add solo crea el contador si no existe; la expiración marca el fin de la ventana.
	_ = l.c.Add(key, int64(0), l.Window)
	hits, err := l.c.IncrementInt64(key, 1)
	if err != nil {
		// La entrada expiró entre Add e Increment: nueva ventana.
		l.c.Set(key, int64(1), l.Window)
		hits = 1
	}

	var ttl time.Duration
	if _, exp, ok := l.c.GetWithExpiration(key); ok && !exp.IsZero() {
		ttl = time.Until(exp)
	}
	return windowResult(hits, l.Max, ttl, l.Window), nil
}
