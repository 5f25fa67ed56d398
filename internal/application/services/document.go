package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/document"
	"document-manager-api/internal/domain/group"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/mq"
)

var (
	// ErrDocumentNotFound covers both absent documents and documents the
	// requester holds no permission on.
	ErrDocumentNotFound    = errors.New("document not found")
	ErrShareTargetNotFound = errors.New("share target not found")
	ErrAclAlreadyExists    = errors.New("permission already granted")
	ErrAclNotFound         = errors.New("permission not found")
)

type DocumentService struct {
	documentRepository document.Repository
	aclRepository      acl.Repository
	groupRepository    group.Repository
	userRepository     user.Repository
	tx                 ports.Transactor
	events             ports.EventPublisher
	mCounter           *prometheus.CounterVec
}

func NewDocumentService(
	documentRepository document.Repository,
	aclRepository acl.Repository,
	groupRepository group.Repository,
	userRepository user.Repository,
	tx ports.Transactor,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.DocumentService {
	return &DocumentService{
		documentRepository: documentRepository,
		aclRepository:      aclRepository,
		groupRepository:    groupRepository,
		userRepository:     userRepository,
		tx:                 tx,
		events:             events,
		mCounter:           mCounter,
	}
}

// targetIDs are the ACL targets acting for userID: the user and every
// group the user belongs to.
func (ds *DocumentService) targetIDs(ctx context.Context, userID string) ([]string, error) {
	groupIDs, err := ds.groupRepository.FindGroupIDsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return append([]string{userID}, groupIDs...), nil
}

func documentEvent(action string, d *document.Document, requesterID string) mq.Event {
	return mq.NewEvent(mq.EntityDocument, action, d.ID, requesterID, mq.DocumentPayload{
		ID:       d.ID,
		Title:    d.Title,
		Language: d.Language,
		OwnerID:  d.UserID,
	})
}

func (ds *DocumentService) List(
	ctx context.Context,
	userID string,
	c document.Criteria,
	page criteria.Page,
	sort criteria.Sort,
) (criteria.PageResult[document.Dto], error) {
	targetIDs, err := ds.targetIDs(ctx, userID)
	if err != nil {
		return criteria.PageResult[document.Dto]{}, err
	}
	c.TargetIDs = targetIDs

	return ds.documentRepository.FindByCriteria(ctx, c, page, sort)
}

func (ds *DocumentService) ListAll(ctx context.Context, offset, limit int) (document.Documents, error) {
	return ds.documentRepository.FindAll(ctx, offset, limit)
}

func (ds *DocumentService) ListByOwner(ctx context.Context, ownerID string) (document.Documents, error) {
	return ds.documentRepository.FindByUserID(ctx, ownerID)
}

// Create stores d owned by userID and grants the owner READ and WRITE.
func (ds *DocumentService) Create(ctx context.Context, d document.Document, userID string) (*document.Document, error) {
	d.UserID = userID
	var dRet *document.Document

	err := ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if dRet, err = ds.documentRepository.Create(ctx, d, userID); err != nil {
			return err
		}
		for _, perm := range []acl.PermType{acl.PermRead, acl.PermWrite} {
			if _, err = ds.aclRepository.Create(ctx, acl.Acl{
				SourceID: dRet.ID,
				Perm:     perm,
				TargetID: userID,
				Type:     acl.TargetUser,
			}, userID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ds.events, ds.mCounter, documentEvent(mq.ActionCreated, dRet, userID))
	ds.mCounter.WithLabelValues("document_created_total").Inc()

	return dRet, nil
}

func (ds *DocumentService) Get(ctx context.Context, id, userID string) (*document.Details, error) {
	targetIDs, err := ds.targetIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto, err := ds.documentRepository.GetDocument(ctx, id, acl.PermRead, targetIDs)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, ErrDocumentNotFound
	}

	acls, err := ds.aclRepository.GetBySourceID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &document.Details{Dto: *dto, Acls: acls}, nil
}

func (ds *DocumentService) checkWrite(ctx context.Context, id, userID string) error {
	targetIDs, err := ds.targetIDs(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := ds.aclRepository.CheckPermission(ctx, id, acl.PermWrite, targetIDs)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDocumentNotFound
	}
	return nil
}

func (ds *DocumentService) Update(ctx context.Context, d document.Document, userID string) (*document.Document, error) {
	var dRet *document.Document

	err := ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := ds.checkWrite(ctx, d.ID, userID); err != nil {
			return err
		}

		var err error
		if dRet, err = ds.documentRepository.Update(ctx, d, userID); err != nil {
			return err
		}
		if dRet == nil {
			return ErrDocumentNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ds.events, ds.mCounter, documentEvent(mq.ActionUpdated, dRet, userID))
	ds.mCounter.WithLabelValues("document_updated_total").Inc()

	return dRet, nil
}

func (ds *DocumentService) UpdateFileID(ctx context.Context, id string, fileID *string, userID string) error {
	return ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := ds.checkWrite(ctx, id, userID); err != nil {
			return err
		}

		err := ds.documentRepository.UpdateFileID(ctx, document.Document{ID: id, FileID: fileID})
		if errors.Is(err, document.ErrNotFound) {
			return ErrDocumentNotFound
		}

		return err
	})
}

func (ds *DocumentService) Delete(ctx context.Context, id, userID string) error {
	err := ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := ds.checkWrite(ctx, id, userID); err != nil {
			return err
		}

		err := ds.documentRepository.Delete(ctx, id, userID)
		if errors.Is(err, document.ErrNotFound) {
			return ErrDocumentNotFound
		}

		return err
	})
	if err != nil {
		return err
	}

	publish(ds.events, ds.mCounter, documentEvent(mq.ActionDeleted, &document.Document{ID: id}, userID))
	ds.mCounter.WithLabelValues("document_deleted_total").Inc()

	return nil
}

func (ds *DocumentService) resolveTarget(ctx context.Context, name string, t acl.TargetType) (string, error) {
	switch t {
	case acl.TargetGroup:
		g, err := ds.groupRepository.GetActiveByName(ctx, name)
		if err != nil {
			return "", err
		}
		if g == nil {
			return "", ErrShareTargetNotFound
		}
		return g.ID, nil
	default:
		u, err := ds.userRepository.GetActiveByUsername(ctx, name)
		if err != nil {
			return "", err
		}
		if u == nil {
			return "", ErrShareTargetNotFound
		}
		return u.ID, nil
	}
}

// Share grants perm on document id to the user or group called targetName.
// The requester needs WRITE on the document.
func (ds *DocumentService) Share(
	ctx context.Context,
	id string,
	perm acl.PermType,
	targetName string,
	targetType acl.TargetType,
	userID string,
) (*acl.Acl, error) {
	var aRet *acl.Acl

	err := ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := ds.checkWrite(ctx, id, userID); err != nil {
			return err
		}

		targetID, err := ds.resolveTarget(ctx, targetName, targetType)
		if err != nil {
			return err
		}

		exists, err := ds.aclRepository.CheckPermission(ctx, id, perm, []string{targetID})
		if err != nil {
			return err
		}
		if exists {
			return ErrAclAlreadyExists
		}

		aRet, err = ds.aclRepository.Create(ctx, acl.Acl{
			SourceID: id,
			Perm:     perm,
			TargetID: targetID,
			Type:     targetType,
		}, userID)

		return err
	})
	if err != nil {
		return nil, err
	}

	ds.mCounter.WithLabelValues("document_shared_total").Inc()

	return aRet, nil
}

// Unshare revokes perm on document id from targetID.
func (ds *DocumentService) Unshare(ctx context.Context, id string, perm acl.PermType, targetID, userID string) error {
	err := ds.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := ds.checkWrite(ctx, id, userID); err != nil {
			return err
		}

		err := ds.aclRepository.Delete(ctx, id, perm, targetID, userID)
		if errors.Is(err, acl.ErrNotFound) {
			return ErrAclNotFound
		}

		return err
	})
	if err != nil {
		return err
	}

	ds.mCounter.WithLabelValues("document_unshared_total").Inc()

	return nil
}
