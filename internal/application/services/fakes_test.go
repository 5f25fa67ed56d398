package services

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/document"
	"document-manager-api/internal/domain/group"
	"document-manager-api/internal/domain/registration"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/mq"
)

var errNotUsed = errors.New("not used")

type fakeUserRepo struct {
	CreateFunc                  func(ctx context.Context, u user.User, requesterID string) (*user.User, error)
	GetByIDFunc                 func(ctx context.Context, id string) (*user.User, error)
	GetActiveByUsernameFunc     func(ctx context.Context, username string) (*user.User, error)
	UpdateFunc                  func(ctx context.Context, u user.User, requesterID string) (*user.User, error)
	UpdatePasswordFunc          func(ctx context.Context, u user.User, requesterID string) error
	UpdateHashedPasswordFunc    func(ctx context.Context, u user.User) error
	UpdateOnboardingFunc        func(ctx context.Context, u user.User) error
	DeleteFunc                  func(ctx context.Context, username, requesterID string) error
	FindByCriteriaFunc          func(ctx context.Context, c user.Criteria, sort criteria.Sort) ([]user.Dto, error)
	GetGlobalStorageCurrentFunc func(ctx context.Context) (int64, error)
	GetActiveUserCountFunc      func(ctx context.Context) (int64, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User, requesterID string) (*user.User, error) {
	if f.CreateFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateFunc(ctx, u, requesterID)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if f.GetByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.GetByIDFunc(ctx, id)
}
func (f *fakeUserRepo) GetActiveByUsername(ctx context.Context, username string) (*user.User, error) {
	if f.GetActiveByUsernameFunc == nil {
		return nil, errNotUsed
	}
	return f.GetActiveByUsernameFunc(ctx, username)
}
func (f *fakeUserRepo) Update(ctx context.Context, u user.User, requesterID string) (*user.User, error) {
	if f.UpdateFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateFunc(ctx, u, requesterID)
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, u user.User, requesterID string) error {
	if f.UpdatePasswordFunc == nil {
		return errNotUsed
	}
	return f.UpdatePasswordFunc(ctx, u, requesterID)
}
func (f *fakeUserRepo) UpdateHashedPassword(ctx context.Context, u user.User) error {
	if f.UpdateHashedPasswordFunc == nil {
		return errNotUsed
	}
	return f.UpdateHashedPasswordFunc(ctx, u)
}
func (f *fakeUserRepo) UpdateQuota(context.Context, user.User) error { return errNotUsed }
func (f *fakeUserRepo) UpdateOnboarding(ctx context.Context, u user.User) error {
	if f.UpdateOnboardingFunc == nil {
		return errNotUsed
	}
	return f.UpdateOnboardingFunc(ctx, u)
}
func (f *fakeUserRepo) Delete(ctx context.Context, username, requesterID string) error {
	if f.DeleteFunc == nil {
		return errNotUsed
	}
	return f.DeleteFunc(ctx, username, requesterID)
}
func (f *fakeUserRepo) FindByCriteria(ctx context.Context, c user.Criteria, sort criteria.Sort) ([]user.Dto, error) {
	if f.FindByCriteriaFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByCriteriaFunc(ctx, c, sort)
}
func (f *fakeUserRepo) GetGlobalStorageCurrent(ctx context.Context) (int64, error) {
	if f.GetGlobalStorageCurrentFunc == nil {
		return 0, errNotUsed
	}
	return f.GetGlobalStorageCurrentFunc(ctx)
}
func (f *fakeUserRepo) GetActiveUserCount(ctx context.Context) (int64, error) {
	if f.GetActiveUserCountFunc == nil {
		return 0, errNotUsed
	}
	return f.GetActiveUserCountFunc(ctx)
}

type fakeDocumentRepo struct {
	CreateFunc           func(ctx context.Context, d document.Document, requesterID string) (*document.Document, error)
	UpdateFunc           func(ctx context.Context, d document.Document, requesterID string) (*document.Document, error)
	UpdateFileIDFunc     func(ctx context.Context, d document.Document) error
	DeleteFunc           func(ctx context.Context, id, requesterID string) error
	GetDocumentCountFunc func(ctx context.Context) (int64, error)
	FindAllFunc          func(ctx context.Context, offset, limit int) (document.Documents, error)
	FindByUserIDFunc     func(ctx context.Context, userID string) (document.Documents, error)
	GetDocumentFunc      func(ctx context.Context, id string, perm acl.PermType, targetIDs []string) (*document.Dto, error)
	FindByCriteriaFunc   func(ctx context.Context, c document.Criteria, page criteria.Page, sort criteria.Sort) (criteria.PageResult[document.Dto], error)
}

func (f *fakeDocumentRepo) Create(ctx context.Context, d document.Document, requesterID string) (*document.Document, error) {
	if f.CreateFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateFunc(ctx, d, requesterID)
}
func (f *fakeDocumentRepo) GetByID(context.Context, string) (*document.Document, error) {
	return nil, errNotUsed
}
func (f *fakeDocumentRepo) Update(ctx context.Context, d document.Document, requesterID string) (*document.Document, error) {
	if f.UpdateFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateFunc(ctx, d, requesterID)
}
func (f *fakeDocumentRepo) UpdateFileID(ctx context.Context, d document.Document) error {
	if f.UpdateFileIDFunc == nil {
		return errNotUsed
	}
	return f.UpdateFileIDFunc(ctx, d)
}
func (f *fakeDocumentRepo) Delete(ctx context.Context, id, requesterID string) error {
	if f.DeleteFunc == nil {
		return errNotUsed
	}
	return f.DeleteFunc(ctx, id, requesterID)
}
func (f *fakeDocumentRepo) GetDocumentCount(ctx context.Context) (int64, error) {
	if f.GetDocumentCountFunc == nil {
		return 0, errNotUsed
	}
	return f.GetDocumentCountFunc(ctx)
}
func (f *fakeDocumentRepo) FindAll(ctx context.Context, offset, limit int) (document.Documents, error) {
	if f.FindAllFunc == nil {
		return nil, errNotUsed
	}
	return f.FindAllFunc(ctx, offset, limit)
}
func (f *fakeDocumentRepo) FindByUserID(ctx context.Context, userID string) (document.Documents, error) {
	if f.FindByUserIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByUserIDFunc(ctx, userID)
}
func (f *fakeDocumentRepo) GetDocument(ctx context.Context, id string, perm acl.PermType, targetIDs []string) (*document.Dto, error) {
	if f.GetDocumentFunc == nil {
		return nil, errNotUsed
	}
	return f.GetDocumentFunc(ctx, id, perm, targetIDs)
}
func (f *fakeDocumentRepo) FindByCriteria(ctx context.Context, c document.Criteria, page criteria.Page, sort criteria.Sort) (criteria.PageResult[document.Dto], error) {
	if f.FindByCriteriaFunc == nil {
		return criteria.PageResult[document.Dto]{}, errNotUsed
	}
	return f.FindByCriteriaFunc(ctx, c, page, sort)
}

type fakeAclRepo struct {
	CreateFunc          func(ctx context.Context, a acl.Acl, requesterID string) (*acl.Acl, error)
	GetBySourceIDFunc   func(ctx context.Context, sourceID string) ([]acl.Dto, error)
	CheckPermissionFunc func(ctx context.Context, sourceID string, perm acl.PermType, targetIDs []string) (bool, error)
	DeleteFunc          func(ctx context.Context, sourceID string, perm acl.PermType, targetID, requesterID string) error
}

func (f *fakeAclRepo) Create(ctx context.Context, a acl.Acl, requesterID string) (*acl.Acl, error) {
	if f.CreateFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateFunc(ctx, a, requesterID)
}
func (f *fakeAclRepo) GetBySourceID(ctx context.Context, sourceID string) ([]acl.Dto, error) {
	if f.GetBySourceIDFunc == nil {
		return nil, errNotUsed
	}
	return f.GetBySourceIDFunc(ctx, sourceID)
}
func (f *fakeAclRepo) CheckPermission(ctx context.Context, sourceID string, perm acl.PermType, targetIDs []string) (bool, error) {
	if f.CheckPermissionFunc == nil {
		return false, errNotUsed
	}
	return f.CheckPermissionFunc(ctx, sourceID, perm, targetIDs)
}
func (f *fakeAclRepo) Delete(ctx context.Context, sourceID string, perm acl.PermType, targetID, requesterID string) error {
	if f.DeleteFunc == nil {
		return errNotUsed
	}
	return f.DeleteFunc(ctx, sourceID, perm, targetID, requesterID)
}

type fakeGroupRepo struct {
	CreateFunc               func(ctx context.Context, g group.Group, requesterID string) (*group.Group, error)
	GetActiveByNameFunc      func(ctx context.Context, name string) (*group.Group, error)
	FindAllFunc              func(ctx context.Context) ([]group.Group, error)
	DeleteFunc               func(ctx context.Context, name, requesterID string) error
	AddMemberFunc            func(ctx context.Context, groupID, userID string) error
	RemoveMemberFunc         func(ctx context.Context, groupID, userID string) error
	FindMembersFunc          func(ctx context.Context, groupID string) ([]group.Member, error)
	FindGroupIDsByUserIDFunc func(ctx context.Context, userID string) ([]string, error)
}

func (f *fakeGroupRepo) Create(ctx context.Context, g group.Group, requesterID string) (*group.Group, error) {
	if f.CreateFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateFunc(ctx, g, requesterID)
}
func (f *fakeGroupRepo) GetActiveByName(ctx context.Context, name string) (*group.Group, error) {
	if f.GetActiveByNameFunc == nil {
		return nil, errNotUsed
	}
	return f.GetActiveByNameFunc(ctx, name)
}
func (f *fakeGroupRepo) FindAll(ctx context.Context) ([]group.Group, error) {
	if f.FindAllFunc == nil {
		return nil, errNotUsed
	}
	return f.FindAllFunc(ctx)
}
func (f *fakeGroupRepo) Delete(ctx context.Context, name, requesterID string) error {
	if f.DeleteFunc == nil {
		return errNotUsed
	}
	return f.DeleteFunc(ctx, name, requesterID)
}
func (f *fakeGroupRepo) AddMember(ctx context.Context, groupID, userID string) error {
	if f.AddMemberFunc == nil {
		return errNotUsed
	}
	return f.AddMemberFunc(ctx, groupID, userID)
}
func (f *fakeGroupRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	if f.RemoveMemberFunc == nil {
		return errNotUsed
	}
	return f.RemoveMemberFunc(ctx, groupID, userID)
}
func (f *fakeGroupRepo) FindMembers(ctx context.Context, groupID string) ([]group.Member, error) {
	if f.FindMembersFunc == nil {
		return nil, errNotUsed
	}
	return f.FindMembersFunc(ctx, groupID)
}
func (f *fakeGroupRepo) FindGroupIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	if f.FindGroupIDsByUserIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FindGroupIDsByUserIDFunc(ctx, userID)
}

type fakeRegistrationRepo struct {
	UpsertFunc        func(ctx context.Context, r registration.Registration) (*registration.Registration, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*registration.Registration, error)
	FindAllFunc       func(ctx context.Context) ([]registration.Registration, error)
	DeleteFunc        func(ctx context.Context, username string) error
}

func (f *fakeRegistrationRepo) Upsert(ctx context.Context, r registration.Registration) (*registration.Registration, error) {
	if f.UpsertFunc == nil {
		return nil, errNotUsed
	}
	return f.UpsertFunc(ctx, r)
}
func (f *fakeRegistrationRepo) GetByUsername(ctx context.Context, username string) (*registration.Registration, error) {
	if f.GetByUsernameFunc == nil {
		return nil, errNotUsed
	}
	return f.GetByUsernameFunc(ctx, username)
}
func (f *fakeRegistrationRepo) FindAll(ctx context.Context) ([]registration.Registration, error) {
	if f.FindAllFunc == nil {
		return nil, errNotUsed
	}
	return f.FindAllFunc(ctx)
}
func (f *fakeRegistrationRepo) Delete(ctx context.Context, username string) error {
	if f.DeleteFunc == nil {
		return errNotUsed
	}
	return f.DeleteFunc(ctx, username)
}

type fakeAuditRepo struct {
	FindByCriteriaFunc func(ctx context.Context, c auditlog.Criteria, page criteria.Page) (criteria.PageResult[auditlog.AuditLog], error)
}

func (f *fakeAuditRepo) Create(context.Context, auditlog.AuditLog) error { return errNotUsed }
func (f *fakeAuditRepo) FindByCriteria(ctx context.Context, c auditlog.Criteria, page criteria.Page) (criteria.PageResult[auditlog.AuditLog], error) {
	if f.FindByCriteriaFunc == nil {
		return criteria.PageResult[auditlog.AuditLog]{}, errNotUsed
	}
	return f.FindByCriteriaFunc(ctx, c, page)
}

// fakeTx runs fn inline and records how often it was asked to.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeEvents struct {
	ch chan mq.Event
}

func newFakeEvents(size int) *fakeEvents { return &fakeEvents{ch: make(chan mq.Event, size)} }

func (f *fakeEvents) GetInputChan() chan mq.Event { return f.ch }

func (f *fakeEvents) drain() []mq.Event {
	var out []mq.Event
	for {
		select {
		case e := <-f.ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type fakeVerifier struct{}

func (fakeVerifier) Verify(hash, plain string) bool { return hash == "hashed:"+plain }

type fakeIssuer struct {
	GenerateJWTFunc func(userID, username, role string, expiresIn time.Duration) (string, error)
}

func (f *fakeIssuer) GenerateJWT(userID, username, role string, expiresIn time.Duration) (string, error) {
	if f.GenerateJWTFunc == nil {
		return "", errNotUsed
	}
	return f.GenerateJWTFunc(userID, username, role, expiresIn)
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}
