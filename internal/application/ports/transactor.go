package ports

import "context"

// Transactor runs fn in one transaction carried by the ctx passed to fn.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
