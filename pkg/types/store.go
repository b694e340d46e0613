package types

import "errors"

// ContactStore is the persistence boundary for contacts. Every operation
// commits on its own and reports failure to the caller; none retries.
type ContactStore interface {
	// EnsureSchema creates the contacts table if it does not exist.
	// Calling it again is a no-op.
	EnsureSchema() error

	// Insert stores a new contact and returns the identifier assigned to it.
	Insert(name, phone, email string) (int64, error)

	// Get returns the contact with the given ID, or ErrNotFound.
	Get(id int64) (*Contact, error)

	// List returns every contact ordered by ID. An empty store yields an
	// empty slice.
	List() ([]*Contact, error)

	// Search returns the contacts whose name contains substr, ignoring case.
	// No match is not an error.
	Search(substr string) ([]Match, error)

	// Update overwrites all fields of the contact with the given ID.
	// Returns ErrNotFound when no row has that ID.
	Update(id int64, name, phone, email string) error

	// Delete removes the contact with the given ID.
	// Returns ErrNotFound when no row has that ID.
	Delete(id int64) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
