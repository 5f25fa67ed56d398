package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/mq"
)

const adminUsername = "admin"

var ErrForbidden = errors.New("forbidden")

type DocumentCounter interface {
	GetDocumentCount(ctx context.Context) (int64, error)
}

type UserService struct {
	userRepository user.Repository
	documents      DocumentCounter
	tx             ports.Transactor
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewUserService(
	userRepository user.Repository,
	documents DocumentCounter,
	tx ports.Transactor,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		documents:      documents,
		tx:             tx,
		events:         events,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func userEvent(action string, u *user.User, requesterID string) mq.Event {
	return mq.NewEvent(mq.EntityUser, action, u.ID, requesterID, mq.UserPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	})
}

func (us *UserService) List(ctx context.Context, c user.Criteria, sort criteria.Sort) ([]user.Dto, error) {
	return us.userRepository.FindByCriteria(ctx, c, sort)
}

func (us *UserService) Get(ctx context.Context, username string) (*user.User, error) {
	return us.userRepository.GetActiveByUsername(ctx, username)
}

// GetByID returns active users only.
func (us *UserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := us.userRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive() {
		return nil, nil
	}

	return u, nil
}

func (us *UserService) Create(ctx context.Context, u user.User, requesterID string) (*user.User, error) {
	if u.RoleID == "" {
		u.RoleID = user.RoleUser
	}

	uRet, err := us.userRepository.Create(ctx, u, requesterID)
	if err != nil {
		return nil, err
	}

	publish(us.events, us.mCounter, userEvent(mq.ActionCreated, uRet, requesterID))
	us.mCounter.WithLabelValues("user_created_total").Inc()

	return uRet, nil
}

// Update applies p to the active user named username. It returns nil when
// there is no such user.
func (us *UserService) Update(ctx context.Context, username string, p user.Patch, requesterID string) (*user.User, error) {
	var uRet *user.User

	err := us.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := us.userRepository.GetActiveByUsername(ctx, username)
		if err != nil || u == nil {
			return err
		}

		p.Apply(u, time.Now())
		if uRet, err = us.userRepository.Update(ctx, *u, requesterID); err != nil || uRet == nil {
			return err
		}

		if p.Password != nil {
			uRet.Password = *p.Password
			if err = us.userRepository.UpdatePassword(ctx, *uRet, requesterID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if uRet == nil {
		return nil, nil
	}

	publish(us.events, us.mCounter, userEvent(mq.ActionUpdated, uRet, requesterID))
	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

func (us *UserService) UpdatePassword(ctx context.Context, userID, password string) error {
	u, err := us.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrNotFound
	}

	u.Password = password
	if err = us.userRepository.UpdatePassword(ctx, *u, userID); err != nil {
		return err
	}

	us.mCounter.WithLabelValues("user_password_changed_total").Inc()

	return nil
}

func (us *UserService) UpdateOnboarding(ctx context.Context, userID string, onboarding bool) error {
	return us.userRepository.UpdateOnboarding(ctx, user.User{ID: userID, Onboarding: onboarding})
}

// Delete removes the active user named username with all of their
// documents. Administrators cannot be deleted.
func (us *UserService) Delete(ctx context.Context, username, requesterID string) error {
	var deleted *user.User

	err := us.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := us.userRepository.GetActiveByUsername(ctx, username)
		if err != nil {
			return err
		}
		if u == nil {
			return user.ErrNotFound
		}
		if u.RoleID == user.RoleAdmin {
			return ErrForbidden
		}
		if err = us.userRepository.Delete(ctx, username, requesterID); err != nil {
			return err
		}
		deleted = u

		return nil
	})
	if err != nil {
		return err
	}

	publish(us.events, us.mCounter, userEvent(mq.ActionDeleted, deleted, requesterID))
	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}

func (us *UserService) Stats(ctx context.Context) (user.Stats, error) {
	var s user.Stats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.StorageCurrent, err = us.userRepository.GetGlobalStorageCurrent(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.ActiveUsers, err = us.userRepository.GetActiveUserCount(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Documents, err = us.documents.GetDocumentCount(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return user.Stats{}, fmt.Errorf("stats: %w", err)
	}

	return s, nil
}

// EnsureAdmin creates the admin account when it does not exist yet.
func (us *UserService) EnsureAdmin(ctx context.Context, password string) error {
	u, err := us.userRepository.GetActiveByUsername(ctx, adminUsername)
	if err != nil {
		return err
	}
	if u != nil {
		return nil
	}
	if password == "" {
		us.logger.Warn("admin account missing and no admin password configured")
		return nil
	}

	_, err = us.userRepository.Create(ctx, user.User{
		Username: adminUsername,
		Password: password,
		Email:    "admin@localhost",
		RoleID:   user.RoleAdmin,
	}, "")
	if errors.Is(err, user.ErrAlreadyExistingUsername) {
		return nil
	}
	if err != nil {
		return err
	}

	us.logger.Info("admin account created")

	return nil
}
