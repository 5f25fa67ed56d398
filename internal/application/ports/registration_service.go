package ports

import (
	"context"

	"document-manager-api/internal/domain/registration"
	"document-manager-api/internal/domain/user"
)

type RegistrationService interface {
	// Submit stores or replaces a pending signup; password is plaintext.
	Submit(ctx context.Context, username, email, password string) (*registration.Registration, error)
	List(ctx context.Context) ([]registration.Registration, error)
	Approve(ctx context.Context, username, requesterID string) (*user.User, error)
	Reject(ctx context.Context, username string) error
}
