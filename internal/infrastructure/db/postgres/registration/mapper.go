package registration

import (
	domain "document-manager-api/internal/domain/registration"
)

func fromDBModel(model *Registration) *domain.Registration {
	return &domain.Registration{
		ID:         model.ID,
		Username:   model.Username,
		Email:      model.Email,
		Password:   model.Password,
		CreateDate: model.CreateDate,
	}
}
