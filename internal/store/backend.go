// Package store implements the contact store on top of database/sql.
// A Backend owns exactly one database connection between Attach and Detach.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Compile-time interface check: Backend must implement ContactStore.
var _ types.ContactStore = (*Backend)(nil)

// Backend implements types.ContactStore for the configured driver.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dialect  *dialect
	db       *sql.DB
	log      *zap.Logger
}

// NewBackend creates a detached backend. A nil logger discards log output.
// Call Attach with a Config to connect.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{log: logger.Named("store")}
}

// Attach opens the database described by config, verifies the connection
// and creates the contacts table if needed. The pool is capped at a single
// connection that lives until Detach.
// Returns ErrAlreadyAttached if already attached. On failure nothing is
// left open.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	d, err := dialectFor(config.Driver)
	if err != nil {
		return err
	}

	dsn, err := d.dsn(config)
	if err != nil {
		return fmt.Errorf("building %s connection string: %w", config.Driver, err)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", config.Driver, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		b.log.Error("connect failed", zap.String("driver", config.Driver), zap.Error(err))
		return fmt.Errorf("connecting to %s database: %w", config.Driver, err)
	}

	b.db = db
	b.dialect = d
	if err := b.ensureSchema(); err != nil {
		db.Close()
		b.db = nil
		b.dialect = nil
		return err
	}

	b.attached = true
	b.log.Debug("attached", zap.String("driver", config.Driver))
	return nil
}

// Detach closes the connection. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	b.attached = false
	db := b.db
	b.db = nil
	b.dialect = nil

	if err := db.Close(); err != nil {
		b.log.Error("close failed", zap.Error(err))
		return fmt.Errorf("closing database: %w", err)
	}
	b.log.Debug("detached")
	return nil
}

// fail logs a failed operation and wraps err with the operation name.
func (b *Backend) fail(op string, err error) error {
	b.log.Error("operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}
