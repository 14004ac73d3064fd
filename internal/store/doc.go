// Package store defines the persistence interfaces used by the
// application core along with a shared error taxonomy. Concrete
// implementations live in internal/platform/postgres; services depend
// only on these interfaces.
package store
