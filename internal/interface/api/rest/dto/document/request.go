package document

import "time"

type (
	Request struct {
		Title       string     `json:"title"`
		Description *string    `json:"description"`
		Language    string     `json:"language"`
		Subject     *string    `json:"subject"`
		Identifier  *string    `json:"identifier"`
		Publisher   *string    `json:"publisher"`
		Format      *string    `json:"format"`
		Source      *string    `json:"source"`
		Type        *string    `json:"type"`
		Coverage    *string    `json:"coverage"`
		Rights      *string    `json:"rights"`
		CreateDate  *time.Time `json:"create_date"`
	}
	FileRequest struct {
		FileID *string `json:"file_id"`
	}
	// AclRequest names the target; Type defaults to USER.
	AclRequest struct {
		Perm   string `json:"perm"`
		Target string `json:"target"`
		Type   string `json:"type"`
	}
)
