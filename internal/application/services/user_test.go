package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/mq"
)

type userFixture struct {
	repo    *fakeUserRepo
	docs    *fakeDocumentRepo
	tx      *fakeTx
	events  *fakeEvents
	svc     *UserService
	counter func(label string) float64
}

func newUserFixture(eventBuffer int) *userFixture {
	f := &userFixture{
		repo:   &fakeUserRepo{},
		docs:   &fakeDocumentRepo{},
		tx:     &fakeTx{},
		events: newFakeEvents(eventBuffer),
	}
	c := newTestCounter()
	f.svc = NewUserService(f.repo, f.docs, f.tx, f.events, c, zap.NewNop()).(*UserService)
	f.counter = func(label string) float64 { return testutil.ToFloat64(c.WithLabelValues(label)) }
	return f
}

func activeUser(username, role string) *user.User {
	return &user.User{ID: "id-" + username, Username: username, Email: username + "@docs.com", RoleID: role}
}

func TestUserService_Create(t *testing.T) {
	t.Run("defaults role and publishes", func(t *testing.T) {
		f := newUserFixture(1)
		f.repo.CreateFunc = func(_ context.Context, u user.User, requesterID string) (*user.User, error) {
			assert.Equal(t, user.RoleUser, u.RoleID)
			assert.Equal(t, "admin-id", requesterID)
			u.ID = "new-id"
			return &u, nil
		}

		got, err := f.svc.Create(context.Background(), user.User{Username: "alice", Password: "12345678"}, "admin-id")
		require.NoError(t, err)
		assert.Equal(t, "new-id", got.ID)

		events := f.events.drain()
		require.Len(t, events, 1)
		assert.Equal(t, "user.created", events[0].RoutingKey())
		assert.Equal(t, "new-id", events[0].EntityID)
		assert.Equal(t, "admin-id", events[0].UserID)
		assert.Equal(t, 1.0, f.counter("user_created_total"))
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newUserFixture(1)
		f.repo.CreateFunc = func(context.Context, user.User, string) (*user.User, error) {
			return nil, user.ErrAlreadyExistingUsername
		}

		_, err := f.svc.Create(context.Background(), user.User{Username: "alice"}, "admin-id")
		require.ErrorIs(t, err, user.ErrAlreadyExistingUsername)
		assert.Empty(t, f.events.drain())
		assert.Equal(t, 0.0, f.counter("user_created_total"))
	})

	t.Run("full event buffer drops", func(t *testing.T) {
		f := newUserFixture(0)
		f.repo.CreateFunc = func(_ context.Context, u user.User, _ string) (*user.User, error) { return &u, nil }

		_, err := f.svc.Create(context.Background(), user.User{Username: "alice"}, "admin-id")
		require.NoError(t, err)
		assert.Equal(t, 1.0, f.counter("event_dropped_total"))
	})
}

func TestUserService_GetByID(t *testing.T) {
	f := newUserFixture(0)
	deleted := activeUser("gone", user.RoleUser)
	now := time.Now()
	deleted.DeleteDate = &now
	f.repo.GetByIDFunc = func(_ context.Context, id string) (*user.User, error) {
		switch id {
		case "id-alice":
			return activeUser("alice", user.RoleUser), nil
		case "id-gone":
			return deleted, nil
		}
		return nil, nil
	}

	got, err := f.svc.GetByID(context.Background(), "id-alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	got, err = f.svc.GetByID(context.Background(), "id-gone")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.svc.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserService_Update(t *testing.T) {
	email := "changed@docs.com"
	pwd := "newpassword"
	disabled := true

	tests := []struct {
		name         string
		patch        user.Patch
		existing     *user.User
		updatePwdErr error
		wantNil      bool
		wantErr      error
		wantPwdCall  bool
	}{
		{
			name:     "missing user",
			existing: nil,
			wantNil:  true,
		},
		{
			name:     "email and disable",
			patch:    user.Patch{Email: &email, Disabled: &disabled},
			existing: activeUser("alice", user.RoleUser),
		},
		{
			name:        "with password",
			patch:       user.Patch{Password: &pwd},
			existing:    activeUser("alice", user.RoleUser),
			wantPwdCall: true,
		},
		{
			name:         "password failure aborts",
			patch:        user.Patch{Password: &pwd},
			existing:     activeUser("alice", user.RoleUser),
			updatePwdErr: errors.New("db down"),
			wantErr:      errors.New("db down"),
			wantPwdCall:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(1)
			pwdCalled := false
			f.repo.GetActiveByUsernameFunc = func(context.Context, string) (*user.User, error) {
				return tt.existing, nil
			}
			f.repo.UpdateFunc = func(_ context.Context, u user.User, _ string) (*user.User, error) {
				if tt.patch.Email != nil {
					assert.Equal(t, *tt.patch.Email, u.Email)
				}
				if tt.patch.Disabled != nil {
					assert.NotNil(t, u.DisableDate)
				}
				return &u, nil
			}
			f.repo.UpdatePasswordFunc = func(_ context.Context, u user.User, _ string) error {
				pwdCalled = true
				assert.Equal(t, pwd, u.Password)
				return tt.updatePwdErr
			}

			got, err := f.svc.Update(context.Background(), "alice", tt.patch, "admin-id")
			assert.Equal(t, 1, f.tx.calls)
			assert.Equal(t, tt.wantPwdCall, pwdCalled)
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, f.events.drain())
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				assert.Empty(t, f.events.drain())
				return
			}
			require.NotNil(t, got)
			events := f.events.drain()
			require.Len(t, events, 1)
			assert.Equal(t, mq.ActionUpdated, events[0].Action)
		})
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	f := newUserFixture(0)
	f.repo.GetByIDFunc = func(_ context.Context, id string) (*user.User, error) {
		if id == "id-alice" {
			return activeUser("alice", user.RoleUser), nil
		}
		return nil, nil
	}
	f.repo.UpdatePasswordFunc = func(_ context.Context, u user.User, requesterID string) error {
		assert.Equal(t, "secret123", u.Password)
		assert.Equal(t, "id-alice", requesterID)
		return nil
	}

	require.NoError(t, f.svc.UpdatePassword(context.Background(), "id-alice", "secret123"))
	assert.Equal(t, 1.0, f.counter("user_password_changed_total"))

	err := f.svc.UpdatePassword(context.Background(), "missing", "secret123")
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserService_UpdateOnboarding(t *testing.T) {
	f := newUserFixture(0)
	f.repo.UpdateOnboardingFunc = func(_ context.Context, u user.User) error {
		assert.Equal(t, "id-alice", u.ID)
		assert.False(t, u.Onboarding)
		return nil
	}

	require.NoError(t, f.svc.UpdateOnboarding(context.Background(), "id-alice", false))
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name       string
		existing   *user.User
		deleteErr  error
		wantErr    error
		wantDelete bool
	}{
		{name: "missing", wantErr: user.ErrNotFound},
		{name: "admin is protected", existing: activeUser("admin", user.RoleAdmin), wantErr: ErrForbidden},
		{name: "regular user", existing: activeUser("alice", user.RoleUser), wantDelete: true},
		{
			name:       "store failure",
			existing:   activeUser("alice", user.RoleUser),
			deleteErr:  errors.New("db down"),
			wantErr:    errors.New("db down"),
			wantDelete: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(1)
			deleted := false
			f.repo.GetActiveByUsernameFunc = func(context.Context, string) (*user.User, error) { return tt.existing, nil }
			f.repo.DeleteFunc = func(_ context.Context, username, requesterID string) error {
				deleted = true
				assert.Equal(t, "admin-id", requesterID)
				return tt.deleteErr
			}

			err := f.svc.Delete(context.Background(), "whoever", "admin-id")
			assert.Equal(t, tt.wantDelete, deleted)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				assert.Empty(t, f.events.drain())
				return
			}
			require.NoError(t, err)
			events := f.events.drain()
			require.Len(t, events, 1)
			assert.Equal(t, "user.deleted", events[0].RoutingKey())
			assert.Equal(t, 1.0, f.counter("user_deleted_total"))
		})
	}
}

func TestUserService_Stats(t *testing.T) {
	f := newUserFixture(0)
	var calls atomic.Int32
	f.repo.GetGlobalStorageCurrentFunc = func(context.Context) (int64, error) { calls.Add(1); return 3000, nil }
	f.repo.GetActiveUserCountFunc = func(context.Context) (int64, error) { calls.Add(1); return 2, nil }
	f.docs.GetDocumentCountFunc = func(context.Context) (int64, error) { calls.Add(1); return 7, nil }

	s, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.Stats{StorageCurrent: 3000, ActiveUsers: 2, Documents: 7}, s)
	assert.Equal(t, int32(3), calls.Load())

	f.docs.GetDocumentCountFunc = func(context.Context) (int64, error) { return 0, errors.New("boom") }
	_, err = f.svc.Stats(context.Background())
	require.ErrorContains(t, err, "stats: boom")
}

func TestUserService_EnsureAdmin(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		f := newUserFixture(0)
		f.repo.GetActiveByUsernameFunc = func(context.Context, string) (*user.User, error) {
			return activeUser("admin", user.RoleAdmin), nil
		}
		require.NoError(t, f.svc.EnsureAdmin(context.Background(), "whatever"))
	})

	t.Run("no password configured", func(t *testing.T) {
		f := newUserFixture(0)
		f.repo.GetActiveByUsernameFunc = func(context.Context, string) (*user.User, error) { return nil, nil }
		require.NoError(t, f.svc.EnsureAdmin(context.Background(), ""))
	})

	t.Run("creates admin", func(t *testing.T) {
		f := newUserFixture(0)
		f.repo.GetActiveByUsernameFunc = func(_ context.Context, username string) (*user.User, error) {
			assert.Equal(t, "admin", username)
			return nil, nil
		}
		f.repo.CreateFunc = func(_ context.Context, u user.User, requesterID string) (*user.User, error) {
			assert.Equal(t, user.RoleAdmin, u.RoleID)
			assert.Equal(t, "s3cret-admin", u.Password)
			assert.Empty(t, requesterID)
			return &u, nil
		}
		require.NoError(t, f.svc.EnsureAdmin(context.Background(), "s3cret-admin"))
	})

	t.Run("lost race is fine", func(t *testing.T) {
		f := newUserFixture(0)
		f.repo.GetActiveByUsernameFunc = func(context.Context, string) (*user.User, error) { return nil, nil }
		f.repo.CreateFunc = func(context.Context, user.User, string) (*user.User, error) {
			return nil, user.ErrAlreadyExistingUsername
		}
		require.NoError(t, f.svc.EnsureAdmin(context.Background(), "s3cret-admin"))
	})
}
