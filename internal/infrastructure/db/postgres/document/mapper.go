package document

import (
	domain "document-manager-api/internal/domain/document"
)

func fromDBModel(model *Document) *domain.Document {
	return &domain.Document{
		ID:          model.ID,
		UserID:      model.UserID,
		Title:       model.Title,
		Description: model.Description,
		Language:    model.Language,
		Subject:     model.Subject,
		Identifier:  model.Identifier,
		Publisher:   model.Publisher,
		Format:      model.Format,
		Source:      model.Source,
		Type:        model.Type,
		Coverage:    model.Coverage,
		Rights:      model.Rights,
		FileID:      model.FileID,

		CreateDate: model.CreateDate,
		UpdateDate: model.UpdateDate,
		DeleteDate: model.DeleteDate,
	}
}

func fromDBModels(models Documents) domain.Documents {
	ds := make(domain.Documents, len(models))
	for idx, d := range models {
		ds[idx] = fromDBModel(d)
	}

	return ds
}

func fromDBDto(model *DocumentDto) domain.Dto {
	return domain.Dto{
		ID:              model.ID,
		Title:           model.Title,
		Description:     model.Description,
		Language:        model.Language,
		Subject:         model.Subject,
		Identifier:      model.Identifier,
		Publisher:       model.Publisher,
		Format:          model.Format,
		Source:          model.Source,
		Type:            model.Type,
		Coverage:        model.Coverage,
		Rights:          model.Rights,
		FileID:          model.FileID,
		CreatorID:       model.UserID,
		Creator:         model.Creator,
		CreateTimestamp: model.CreateDate,
		UpdateTimestamp: model.UpdateDate,
	}
}
