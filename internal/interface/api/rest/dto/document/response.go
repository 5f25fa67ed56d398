package document

import "time"

type (
	Metadata struct {
		Description *string `json:"description,omitempty"`
		Subject     *string `json:"subject,omitempty"`
		Identifier  *string `json:"identifier,omitempty"`
		Publisher   *string `json:"publisher,omitempty"`
		Format      *string `json:"format,omitempty"`
		Source      *string `json:"source,omitempty"`
		Type        *string `json:"type,omitempty"`
		Coverage    *string `json:"coverage,omitempty"`
		Rights      *string `json:"rights,omitempty"`
	}
	Document struct {
		ID       string `json:"id"`
		OwnerID  string `json:"owner_id"`
		Title    string `json:"title"`
		Language string `json:"language"`
		Metadata
		FileID     *string   `json:"file_id,omitempty"`
		CreateDate time.Time `json:"create_date"`
		UpdateDate time.Time `json:"update_date"`
	}
	Documents []Document

	Item struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Language string `json:"language"`
		Metadata
		FileID     *string   `json:"file_id,omitempty"`
		CreatorID  string    `json:"creator_id"`
		Creator    string    `json:"creator"`
		CreateDate time.Time `json:"create_date"`
		UpdateDate time.Time `json:"update_date"`
	}
	Acl struct {
		Perm       string `json:"perm"`
		TargetID   string `json:"target_id"`
		TargetName string `json:"target_name"`
		Type       string `json:"type"`
	}
	Details struct {
		Item
		Acls []Acl `json:"acls"`
	}
	Page struct {
		Total     int64  `json:"total"`
		Documents []Item `json:"documents"`
	}
	ResponseData struct {
		Data Documents `json:"data"`
	}
)
