// Package postgres contains the PostgreSQL implementations of the store
// interfaces. A user aggregate spans two tables: the users row and its
// relationship rows, written together on every save.
package postgres
