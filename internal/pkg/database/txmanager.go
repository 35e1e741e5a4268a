package database

import "context"

// TxManager runs a function within one storage transaction. The context
// passed to fn carries the transaction; repositories called through it join
// the same unit of work.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
