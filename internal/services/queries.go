package services

import (
	"github.com/jackc/pgx/v5"
)

// SQL statement builders for the table lifecycle steps. Identifiers are
// sanitized with pgx's quoting rules; schema and table names come straight
// from the command line and must never be interpolated raw.

// dropTableSQL returns the idempotent drop for the target table.
func dropTableSQL(schema, table string) string {
	return "DROP TABLE IF EXISTS " + pgx.Identifier{schema, table}.Sanitize()
}

// createSchemaSQL returns the idempotent create for the target schema.
func createSchemaSQL(schema string) string {
	return "CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{schema}.Sanitize()
}
