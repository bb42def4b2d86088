package database

import "context"

// Transactor runs a function inside a database transaction. Services depend
// on this interface so tests can substitute a pass-through implementation.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
