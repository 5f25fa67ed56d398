package user

import (
	domain "document-manager-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:             model.ID,
		Username:       model.Username,
		Password:       model.Password,
		Email:          model.Email,
		RoleID:         model.RoleID,
		StorageQuota:   model.StorageQuota,
		StorageCurrent: model.StorageCurrent,
		Onboarding:     model.Onboarding,
		TotpKey:        model.TotpKey,
		DisableDate:    model.DisableDate,

		CreateDate: model.CreateDate,
		DeleteDate: model.DeleteDate,
	}

	return u
}

func fromDBDto(model *UserDto) domain.Dto {
	return domain.Dto{
		ID:               model.ID,
		Username:         model.Username,
		Email:            model.Email,
		CreateTimestamp:  model.CreateDate,
		StorageCurrent:   model.StorageCurrent,
		StorageQuota:     model.StorageQuota,
		TotpKey:          model.TotpKey,
		DisableTimestamp: model.DisableDate,
	}
}

func fromDBDtos(models []*UserDto) []domain.Dto {
	ds := make([]domain.Dto, len(models))
	for idx, d := range models {
		ds[idx] = fromDBDto(d)
	}

	return ds
}
