// Package memory implementa un adapter en memoria del store.
// Sirve para desarrollo local y tests; los datos se pierden al cerrar el proceso.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	"github.com/dropDatabas3/hellonotes/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

// Connect ignora DSN y pool: cada conexión es un store vacío e independiente.
func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	return New(), nil
}

// Connection es un store en memoria.
type Connection struct {
	mu      sync.RWMutex
	tenants map[string]*repository.Tenant
	users   map[string]*repository.User
	notes   map[string]*noteRecord
	seq     int64

	// locks por tenant: serializan CreateAdmitted y UpdatePlan.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

type noteRecord struct {
	note repository.Note
	seq  int64
}

// New crea un store en memoria vacío.
func New() *Connection {
	return &Connection{
		tenants: make(map[string]*repository.Tenant),
		users:   make(map[string]*repository.User),
		notes:   make(map[string]*noteRecord),
		locks:   make(map[string]*sync.Mutex),
		now:     time.Now,
	}
}

func (c *Connection) Name() string                   { return "memory" }
func (c *Connection) Ping(ctx context.Context) error { return nil }
func (c *Connection) Close() error                   { return nil }

func (c *Connection) Tenants() repository.TenantRepository { return &tenantRepo{c} }
func (c *Connection) Users() repository.UserRepository     { return &userRepo{c} }
func (c *Connection) Notes() repository.NoteRepository     { return &noteRepo{c} }

func (c *Connection) tenantLock(tenantID string) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	l, ok := c.locks[tenantID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[tenantID] = l
	}
	return l
}

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
