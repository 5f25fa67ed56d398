package ports

import (
	"context"

	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/user"
)

type UserService interface {
	List(ctx context.Context, c user.Criteria, sort criteria.Sort) ([]user.Dto, error)
	Get(ctx context.Context, username string) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	Create(ctx context.Context, u user.User, requesterID string) (*user.User, error)
	Update(ctx context.Context, username string, p user.Patch, requesterID string) (*user.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	UpdateOnboarding(ctx context.Context, userID string, onboarding bool) error
	Delete(ctx context.Context, username, requesterID string) error
	Stats(ctx context.Context) (user.Stats, error)
	EnsureAdmin(ctx context.Context, password string) error
}
