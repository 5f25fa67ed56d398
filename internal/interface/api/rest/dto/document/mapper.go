package document

import (
	"time"

	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/document"
)

func ToResponseDocument(d document.Document) Document {
	return Document{
		ID:       d.ID,
		OwnerID:  d.UserID,
		Title:    d.Title,
		Language: d.Language,
		Metadata: Metadata{
			Description: d.Description,
			Subject:     d.Subject,
			Identifier:  d.Identifier,
			Publisher:   d.Publisher,
			Format:      d.Format,
			Source:      d.Source,
			Type:        d.Type,
			Coverage:    d.Coverage,
			Rights:      d.Rights,
		},
		FileID:     d.FileID,
		CreateDate: d.CreateDate,
		UpdateDate: d.UpdateDate,
	}
}

func ToResponseDocuments(ds document.Documents) ResponseData {
	out := make(Documents, len(ds))
	for idx, d := range ds {
		out[idx] = ToResponseDocument(*d)
	}

	return ResponseData{Data: out}
}

func toItem(d document.Dto) Item {
	return Item{
		ID:       d.ID,
		Title:    d.Title,
		Language: d.Language,
		Metadata: Metadata{
			Description: d.Description,
			Subject:     d.Subject,
			Identifier:  d.Identifier,
			Publisher:   d.Publisher,
			Format:      d.Format,
			Source:      d.Source,
			Type:        d.Type,
			Coverage:    d.Coverage,
			Rights:      d.Rights,
		},
		FileID:     d.FileID,
		CreatorID:  d.CreatorID,
		Creator:    d.Creator,
		CreateDate: d.CreateTimestamp,
		UpdateDate: d.UpdateTimestamp,
	}
}

func ToResponsePage(p criteria.PageResult[document.Dto]) Page {
	items := make([]Item, len(p.Items))
	for idx, d := range p.Items {
		items[idx] = toItem(d)
	}

	return Page{Total: p.Total, Documents: items}
}

func ToResponseDetails(d document.Details) Details {
	acls := make([]Acl, len(d.Acls))
	for idx, a := range d.Acls {
		acls[idx] = Acl{
			Perm:       string(a.Perm),
			TargetID:   a.TargetID,
			TargetName: a.TargetName,
			Type:       string(a.Type),
		}
	}

	return Details{Item: toItem(d.Dto), Acls: acls}
}

func ToResponseAcl(a acl.Acl, targetName string) Acl {
	return Acl{
		Perm:       string(a.Perm),
		TargetID:   a.TargetID,
		TargetName: targetName,
		Type:       string(a.Type),
	}
}

// ToDomainDocument maps a validated request; the owner is set by the service.
func ToDomainDocument(r Request) document.Document {
	d := document.Document{
		Title:       r.Title,
		Description: r.Description,
		Language:    r.Language,
		Subject:     r.Subject,
		Identifier:  r.Identifier,
		Publisher:   r.Publisher,
		Format:      r.Format,
		Source:      r.Source,
		Type:        r.Type,
		Coverage:    r.Coverage,
		Rights:      r.Rights,
	}
	if r.CreateDate != nil {
		d.CreateDate = r.CreateDate.In(time.UTC)
	}

	return d
}
