// Contact operations for the Backend. Each one runs a single statement in
// autocommit mode and returns failures to the caller.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/internal/validate"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// EnsureSchema creates the contacts table if it does not exist.
func (b *Backend) EnsureSchema() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	return b.ensureSchema()
}

// ensureSchema runs the dialect DDL. The caller must hold b.mu.
func (b *Backend) ensureSchema() error {
	if _, err := b.db.Exec(b.dialect.createTable); err != nil {
		return b.fail("creating contacts table", err)
	}
	return nil
}

// Insert validates the fields and stores a new contact.
func (b *Backend) Insert(name, phone, email string) (int64, error) {
	if err := checkFields(name, phone, email); err != nil {
		return 0, fmt.Errorf("inserting contact: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	var id int64
	err := b.db.QueryRow(b.dialect.rebind(insertContact), name, phone, email).Scan(&id)
	if err != nil {
		return 0, b.fail("inserting contact", err)
	}
	b.log.Debug("contact inserted", zap.Int64("id", id))
	return id, nil
}

// Get retrieves a contact by ID.
func (b *Backend) Get(id int64) (*types.Contact, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var c types.Contact
	err := b.db.QueryRow(b.dialect.rebind(selectContact), id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, b.fail(fmt.Sprintf("getting contact %d", id), err)
	}
	return &c, nil
}

// List returns all contacts ordered by ID.
func (b *Backend) List() ([]*types.Contact, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(selectAll)
	if err != nil {
		return nil, b.fail("listing contacts", err)
	}
	defer rows.Close()

	contacts := []*types.Contact{}
	for rows.Next() {
		var c types.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, b.fail("scanning contact", err)
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, b.fail("listing contacts", err)
	}
	return contacts, nil
}

// Search returns the ID and name of every contact whose name contains
// substr, ignoring case. Wildcards in substr match literally.
func (b *Backend) Search(substr string) ([]types.Match, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	query := b.dialect.rebind(searchPrefix + b.dialect.nameMatch + searchSuffix)
	rows, err := b.db.Query(query, "%"+escapeLike(substr)+"%")
	if err != nil {
		return nil, b.fail("searching contacts", err)
	}
	defer rows.Close()

	matches := []types.Match{}
	for rows.Next() {
		var m types.Match
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, b.fail("scanning match", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, b.fail("searching contacts", err)
	}
	return matches, nil
}

// Update overwrites name, phone and email of the contact with the given ID.
// Returns ErrNotFound when no row matched.
func (b *Backend) Update(id int64, name, phone, email string) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	if err := checkFields(name, phone, email); err != nil {
		return fmt.Errorf("updating contact %d: %w", id, err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	op := fmt.Sprintf("updating contact %d", id)
	res, err := b.db.Exec(b.dialect.rebind(updateContact), name, phone, email, id)
	if err != nil {
		return b.fail(op, err)
	}
	return b.requireAffected(op, res)
}

// Delete removes the contact with the given ID.
// Returns ErrNotFound when no row matched.
func (b *Backend) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	op := fmt.Sprintf("deleting contact %d", id)
	res, err := b.db.Exec(b.dialect.rebind(deleteContact), id)
	if err != nil {
		return b.fail(op, err)
	}
	return b.requireAffected(op, res)
}

// requireAffected turns a zero-row result into ErrNotFound.
func (b *Backend) requireAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return b.fail(op, err)
	}
	if n == 0 {
		b.log.Debug("no rows affected", zap.String("op", op))
		return fmt.Errorf("%s: %w", op, types.ErrNotFound)
	}
	return nil
}

// checkFields enforces the write-time invariants on a contact.
func checkFields(name, phone, email string) error {
	switch {
	case !validate.Name(name):
		return types.ErrInvalidName
	case utf8.RuneCountInString(name) > types.MaxNameLen:
		return fmt.Errorf("name longer than %d characters: %w", types.MaxNameLen, types.ErrFieldTooLong)
	case !validate.Phone(phone):
		return types.ErrInvalidPhone
	case len(phone) > types.MaxPhoneLen:
		return fmt.Errorf("phone longer than %d characters: %w", types.MaxPhoneLen, types.ErrFieldTooLong)
	case !validate.Email(email):
		return types.ErrInvalidEmail
	case len(email) > types.MaxEmailLen:
		return fmt.Errorf("email longer than %d characters: %w", types.MaxEmailLen, types.ErrFieldTooLong)
	}
	return nil
}
