package store

import _ "embed"

// Schema DDL for the contacts table, one file per dialect. Column bounds
// match types.Max*Len.
var (
	//go:embed schema_sqlite.sql
	createContactsSQLite string

	//go:embed schema_postgres.sql
	createContactsPostgres string
)

// Contact queries, written with ? placeholders.
const (
	insertContact = `INSERT INTO contacts (name, phone, email) VALUES (?, ?, ?) RETURNING id`
	selectContact = `SELECT id, name, phone, email FROM contacts WHERE id = ?`
	selectAll     = `SELECT id, name, phone, email FROM contacts ORDER BY id`
	updateContact = `UPDATE contacts SET name = ?, phone = ?, email = ? WHERE id = ?`
	deleteContact = `DELETE FROM contacts WHERE id = ?`
	searchPrefix  = `SELECT id, name FROM contacts WHERE `
	searchSuffix  = ` ORDER BY id`
)
