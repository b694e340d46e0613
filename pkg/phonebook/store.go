package phonebook

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/internal/store"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Store is a ContactStore with an explicit connection lifecycle.
type Store interface {
	types.ContactStore

	// Attach connects to the database described by config and creates the
	// contacts table if needed. Returns types.ErrAlreadyAttached if called
	// while attached.
	Attach(config types.Config) error

	// Detach releases the connection. Idempotent.
	Detach() error
}

// NewStore creates a detached contact store. A nil logger discards logs.
//
// Example:
//
//	s := phonebook.NewStore(nil)
//	err := s.Attach(types.Config{
//	    Driver: types.DriverSQLite,
//	    Params: map[string]string{"database": "phonebook.db"},
//	})
//	defer s.Detach()
func NewStore(logger *zap.Logger) Store {
	return store.NewBackend(logger)
}
