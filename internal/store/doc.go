// Package store defines the persistence interfaces for the task manager's
// entities along with the error taxonomy shared by every implementation.
//
// Stores are expressed against the DBTX abstraction so the same code runs
// against a plain connection pool or inside a transaction, and multi-statement
// units of work compose through RunInTransaction.
package store
