package acl

import (
	domain "document-manager-api/internal/domain/acl"
)

func fromDBModel(model *Acl) *domain.Acl {
	return &domain.Acl{
		ID:         model.ID,
		SourceID:   model.SourceID,
		Perm:       domain.PermType(model.Perm),
		TargetID:   model.TargetID,
		Type:       domain.TargetType(model.Type),
		DeleteDate: model.DeleteDate,
	}
}

func fromDBDtos(models []*AclDto) []domain.Dto {
	ds := make([]domain.Dto, len(models))
	for idx, m := range models {
		ds[idx] = domain.Dto{
			ID:         m.ID,
			SourceID:   m.SourceID,
			Perm:       domain.PermType(m.Perm),
			TargetID:   m.TargetID,
			TargetName: m.TargetName,
			Type:       domain.TargetType(m.Type),
		}
	}

	return ds
}
