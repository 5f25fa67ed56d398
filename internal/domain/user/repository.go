package user

import (
	"context"

	"document-manager-api/internal/domain/criteria"
)

type Repository interface {
	Create(ctx context.Context, u User, requesterID string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetActiveByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u User, requesterID string) (*User, error)
	UpdatePassword(ctx context.Context, u User, requesterID string) error
	UpdateHashedPassword(ctx context.Context, u User) error
	UpdateQuota(ctx context.Context, u User) error
	UpdateOnboarding(ctx context.Context, u User) error
	Delete(ctx context.Context, username, requesterID string) error
	FindByCriteria(ctx context.Context, c Criteria, sort criteria.Sort) ([]Dto, error)
	GetGlobalStorageCurrent(ctx context.Context) (int64, error)
	GetActiveUserCount(ctx context.Context) (int64, error)
}
