// Package phonebook is the public entry point of the phonebook module: its
// version and a constructor for the contact store.
package phonebook

// Version is the phonebook release version.
const Version = "v0.1.0"
