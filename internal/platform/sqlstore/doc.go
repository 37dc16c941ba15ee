// Package sqlstore keeps the vocabulary dataset in a relational database.
//
// It implements store.DatasetSource and store.DatasetWriter over database/sql,
// backed by PostgreSQL (through the pgx stdlib driver) or SQLite (through the
// pure Go modernc.org/sqlite driver). The schema is managed by goose using
// migrations embedded in the binary, so the same files serve both dialects.
package sqlstore
