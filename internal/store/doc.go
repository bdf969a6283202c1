// Package store declares the persistence contracts for accounts, API keys and
// tasks, the store-level sentinel errors, and the transaction helpers the
// Postgres implementations share. Services depend only on these interfaces.
package store
