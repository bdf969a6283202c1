// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, together with the
// embedded schema migrations. It handles query execution, mapping between
// domain entities and rows, and translation of PostgreSQL error codes into
// store errors.
package postgres
