// Package db opens the SQLite database that backs the credential store,
// applies the embedded schema migrations and serialises write transactions
// through a single Worker goroutine.
package db
