package types

import (
	"errors"
	"fmt"
)

// Contact is a single phonebook entry.
// ID is assigned by the store on insert and never changes afterwards.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// String renders the contact on one line for console output.
func (c Contact) String() string {
	return fmt.Sprintf("%d. %s, %s, %s", c.ID, c.Name, c.Phone, c.Email)
}

// Match is a search hit: the identifier and name of a contact.
type Match struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Column bounds of the contacts table.
const (
	MaxNameLen  = 100
	MaxPhoneLen = 20
	MaxEmailLen = 30
)

// Contact operation errors.
var (
	ErrNotFound     = errors.New("contact not found")
	ErrInvalidID    = errors.New("invalid contact ID")
	ErrInvalidName  = errors.New("name cannot be blank")
	ErrInvalidPhone = errors.New("invalid phone number format")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrFieldTooLong = errors.New("field exceeds column length")
)
