package document

import "time"

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

	DocumentDto struct {
		Document
		Creator string
	}
)
