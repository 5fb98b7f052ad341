// Package postgres contains the PostgreSQL implementations of the store
// interfaces. Database errors are translated into the store error taxonomy
// through MapError so callers only ever match on store sentinels.
package postgres
