// Package types defines the Contact entity, the ContactStore interface,
// backend configuration, and the standard errors shared by the phonebook
// store and console.
package types
