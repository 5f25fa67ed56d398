package registration

import "context"

type Repository interface {
	// Upsert replaces a pending registration with the same username.
	Upsert(ctx context.Context, r Registration) (*Registration, error)
	GetByUsername(ctx context.Context, username string) (*Registration, error)
	FindAll(ctx context.Context) ([]Registration, error)
	Delete(ctx context.Context, username string) error
}
