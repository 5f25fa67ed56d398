package services

import (
	"context"
	"errors"
	"time"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/user"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type (
	PasswordVerifier interface {
		Verify(hash, plain string) bool
	}
	TokenIssuer interface {
		GenerateJWT(userID, username, role string, expiresIn time.Duration) (string, error)
	}
)

type AuthService struct {
	userRepository user.Repository
	verifier       PasswordVerifier
	issuer         TokenIssuer
	tokenTTL       time.Duration
}

func NewAuthService(
	userRepository user.Repository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	tokenTTL time.Duration,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		verifier:       verifier,
		issuer:         issuer,
		tokenTTL:       tokenTTL,
	}
}

func (as *AuthService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := as.userRepository.GetActiveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || u.IsDisabled() {
		return nil, nil
	}
	if !as.verifier.Verify(u.Password, password) {
		return nil, nil
	}

	return u, nil
}

func (as *AuthService) GenerateToken(u *user.User) (string, error) {
	token, err := as.issuer.GenerateJWT(u.ID, u.Username, u.RoleID, as.tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
