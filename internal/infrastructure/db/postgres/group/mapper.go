package group

import (
	domain "document-manager-api/internal/domain/group"
)

func fromDBModel(model *Group) *domain.Group {
	return &domain.Group{
		ID:         model.ID,
		Name:       model.Name,
		CreateDate: model.CreateDate,
		DeleteDate: model.DeleteDate,
	}
}

func fromDBMembers(models []*Member) []domain.Member {
	ms := make([]domain.Member, len(models))
	for idx, m := range models {
		ms[idx] = domain.Member{UserID: m.UserID, Username: m.Username}
	}

	return ms
}
