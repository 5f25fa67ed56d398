package ports

import (
	"context"

	"document-manager-api/internal/domain/user"
)

type Auth interface {
	// Authenticate returns nil without error when the username is unknown,
	// the account is disabled or the password does not match.
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
	GenerateToken(u *user.User) (string, error)
}
