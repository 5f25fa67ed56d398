package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"document-manager-api/internal/domain/registration"
	domain "document-manager-api/internal/domain/user"
	dto "document-manager-api/internal/interface/api/rest/dto/registration"
	"document-manager-api/internal/interface/api/rest/dto/user"
)

type FakeRegistrationService struct {
	SubmitFunc  func(ctx context.Context, username, email, password string) (*registration.Registration, error)
	ListFunc    func(ctx context.Context) ([]registration.Registration, error)
	ApproveFunc func(ctx context.Context, username, requesterID string) (*domain.User, error)
	RejectFunc  func(ctx context.Context, username string) error
}

func (f *FakeRegistrationService) Submit(ctx context.Context, username, email, password string) (*registration.Registration, error) {
	if f.SubmitFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SubmitFunc(ctx, username, email, password)
}
func (f *FakeRegistrationService) List(ctx context.Context) ([]registration.Registration, error) {
	if f.ListFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListFunc(ctx)
}
func (f *FakeRegistrationService) Approve(ctx context.Context, username, requesterID string) (*domain.User, error) {
	if f.ApproveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ApproveFunc(ctx, username, requesterID)
}
func (f *FakeRegistrationService) Reject(ctx context.Context, username string) error {
	if f.RejectFunc == nil {
		return errors.New("not used")
	}
	return f.RejectFunc(ctx, username)
}

type registrationCase struct {
	name       string
	method     string
	path       string
	headers    map[string]string
	body       any
	rs         *FakeRegistrationService
	wantStatus int
	wantErr    string
	check      func(t *testing.T, body []byte)
}

func runRegistrationCases(t *testing.T, tests []registrationCase) {
	t.Helper()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, j := newTestEngine(t)
			NewRegistrationController(r, tt.rs, zap.NewNop(), j)

			rr := doReq(t, r, tt.method, tt.path, tt.body, tt.headers)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assertErrBody(t, rr, tt.wantErr)
			if tt.check != nil {
				tt.check(t, rr.Body.Bytes())
			}
		})
	}
}

func TestRegistrationController_Submit(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	runRegistrationCases(t, []registrationCase{
		{
			name:       "400 invalid body",
			method:     http.MethodPost,
			path:       RouteRegistrations,
			body:       dto.Request{Username: "ab", Email: "nope", Password: "short"},
			rs:         &FakeRegistrationService{},
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:   "409 username taken",
			method: http.MethodPost,
			path:   RouteRegistrations,
			body:   dto.Request{Username: "alice", Email: "alice@docs.com", Password: "12345678"},
			rs: &FakeRegistrationService{
				SubmitFunc: func(context.Context, string, string, string) (*registration.Registration, error) {
					return nil, domain.ErrAlreadyExistingUsername
				},
			},
			wantStatus: http.StatusConflict,
			wantErr:    "username already exists",
		},
		{
			name:   "201 without a token",
			method: http.MethodPost,
			path:   RouteRegistrations,
			body:   dto.Request{Username: " carol ", Email: "Carol@Docs.com", Password: "12345678"},
			rs: &FakeRegistrationService{
				SubmitFunc: func(_ context.Context, username, email, password string) (*registration.Registration, error) {
					assert.Equal(t, "carol", username)
					assert.Equal(t, "carol@docs.com", email)
					assert.Equal(t, "12345678", password)
					return &registration.Registration{Username: username, Email: email, Password: "hash", CreateDate: created}, nil
				},
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"username":"carol","email":"carol@docs.com","create_date":"2024-05-06T07:08:09Z"}`, string(body))
			},
		},
	})
}

func TestRegistrationController_Admin(t *testing.T) {
	runRegistrationCases(t, []registrationCase{
		{
			name:       "403 list as user",
			method:     http.MethodGet,
			path:       RouteRegistrations,
			headers:    userAuth(t),
			rs:         &FakeRegistrationService{},
			wantStatus: http.StatusForbidden,
			wantErr:    "forbidden",
		},
		{
			name:    "200 list",
			method:  http.MethodGet,
			path:    RouteRegistrations,
			headers: adminAuth(t),
			rs: &FakeRegistrationService{
				ListFunc: func(context.Context) ([]registration.Registration, error) {
					return []registration.Registration{{Username: "carol", Password: "hash"}}, nil
				},
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got dto.ResponseData
				require.NoError(t, json.Unmarshal(body, &got))
				require.Len(t, got.Data, 1)
				assert.Equal(t, "carol", got.Data[0].Username)
				assert.NotContains(t, string(body), "hash")
			},
		},
		{
			name:    "404 approve unknown",
			method:  http.MethodPost,
			path:    RouteRegistrations + "/ghost/approve",
			headers: adminAuth(t),
			rs: &FakeRegistrationService{
				ApproveFunc: func(context.Context, string, string) (*domain.User, error) {
					return nil, registration.ErrNotFound
				},
			},
			wantStatus: http.StatusNotFound,
			wantErr:    registration.ErrNotFound.Error(),
		},
		{
			name:    "201 approve",
			method:  http.MethodPost,
			path:    RouteRegistrations + "/carol/approve",
			headers: adminAuth(t),
			rs: &FakeRegistrationService{
				ApproveFunc: func(_ context.Context, username, requesterID string) (*domain.User, error) {
					assert.Equal(t, "carol", username)
					assert.Equal(t, testAdminID, requesterID)
					return &domain.User{ID: "u-9", Username: username, RoleID: domain.RoleUser}, nil
				},
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				var got user.User
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, "u-9", got.ID)
			},
		},
		{
			name:    "204 reject",
			method:  http.MethodDelete,
			path:    RouteRegistrations + "/carol",
			headers: adminAuth(t),
			rs: &FakeRegistrationService{
				RejectFunc: func(_ context.Context, username string) error {
					assert.Equal(t, "carol", username)
					return nil
				},
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:    "500 reject",
			method:  http.MethodDelete,
			path:    RouteRegistrations + "/carol",
			headers: adminAuth(t),
			rs: &FakeRegistrationService{
				RejectFunc: func(context.Context, string) error { return errors.New("db error") },
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to reject a registration",
		},
	})
}
