package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/registration"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/mq"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// RegistrationService holds self-service signups until an administrator
// turns them into users or drops them.
type RegistrationService struct {
	registrationRepository registration.Repository
	userRepository         user.Repository
	hasher                 PasswordHasher
	tx                     ports.Transactor
	events                 ports.EventPublisher
	mCounter               *prometheus.CounterVec
}

func NewRegistrationService(
	registrationRepository registration.Repository,
	userRepository user.Repository,
	hasher PasswordHasher,
	tx ports.Transactor,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.RegistrationService {
	return &RegistrationService{
		registrationRepository: registrationRepository,
		userRepository:         userRepository,
		hasher:                 hasher,
		tx:                     tx,
		events:                 events,
		mCounter:               mCounter,
	}
}

func (rs *RegistrationService) Submit(ctx context.Context, username, email, password string) (*registration.Registration, error) {
	existing, err := rs.userRepository.GetActiveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrAlreadyExistingUsername
	}

	hash, err := rs.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	reg, err := rs.registrationRepository.Upsert(ctx, registration.Registration{
		Username:   username,
		Email:      email,
		Password:   hash,
		CreateDate: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	rs.mCounter.WithLabelValues("registration_submitted_total").Inc()

	return reg, nil
}

func (rs *RegistrationService) List(ctx context.Context) ([]registration.Registration, error) {
	return rs.registrationRepository.FindAll(ctx)
}

// Approve creates the user with the password chosen at signup and drops the
// registration, all in one transaction.
func (rs *RegistrationService) Approve(ctx context.Context, username, requesterID string) (*user.User, error) {
	var uRet *user.User

	err := rs.tx.WithinTx(ctx, func(ctx context.Context) error {
		reg, err := rs.registrationRepository.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if reg == nil {
			return registration.ErrNotFound
		}

		// Create hashes whatever it is given; the signup hash replaces it.
		if uRet, err = rs.userRepository.Create(ctx, user.User{
			Username: reg.Username,
			Password: reg.Password,
			Email:    reg.Email,
			RoleID:   user.RoleUser,
		}, requesterID); err != nil {
			return err
		}
		uRet.Password = reg.Password
		if err = rs.userRepository.UpdateHashedPassword(ctx, *uRet); err != nil {
			return err
		}

		return rs.registrationRepository.Delete(ctx, username)
	})
	if err != nil {
		return nil, err
	}

	publish(rs.events, rs.mCounter, userEvent(mq.ActionCreated, uRet, requesterID))
	rs.mCounter.WithLabelValues("user_created_total").Inc()
	rs.mCounter.WithLabelValues("registration_approved_total").Inc()

	return uRet, nil
}

func (rs *RegistrationService) Reject(ctx context.Context, username string) error {
	if err := rs.registrationRepository.Delete(ctx, username); err != nil {
		return err
	}

	rs.mCounter.WithLabelValues("registration_rejected_total").Inc()

	return nil
}
