package document

import (
	"errors"
	"time"

	"document-manager-api/internal/domain/acl"
)

const DefaultLanguage = "eng"

var (
	ErrNotFound      = errors.New("document not found")
	ErrTitleRequired = errors.New("document title is required")
	ErrOwnerRequired = errors.New("document owner is required")
)

type (
	Document struct {
		ID          string
		UserID      string
		Title       string
		Description *string
		Language    string
		Subject     *string
		Identifier  *string
		Publisher   *string
		Format      *string
		Source      *string
		Type        *string
		Coverage    *string
		Rights      *string
		FileID      *string

		CreateDate time.Time
		UpdateDate time.Time
		DeleteDate *time.Time
	}
	Documents []*Document

	// Dto is the permission-scoped read projection, carrying the creator's username.
	Dto struct {
		ID              string
		Title           string
		Description     *string
		Language        string
		Subject         *string
		Identifier      *string
		Publisher       *string
		Format          *string
		Source          *string
		Type            *string
		Coverage        *string
		Rights          *string
		FileID          *string
		CreatorID       string
		Creator         string
		CreateTimestamp time.Time
		UpdateTimestamp time.Time
	}

	// Criteria filters documents visible to TargetIDs.
	Criteria struct {
		TargetIDs     []string
		Search        string
		Language      string
		CreatorID     string
		CreateDateMin *time.Time
		CreateDateMax *time.Time
	}

	// Details is a readable document with the ACLs granted on it.
	Details struct {
		Dto
		Acls []acl.Dto
	}
)
