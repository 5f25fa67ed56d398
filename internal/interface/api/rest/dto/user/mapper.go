package user

import (
	"document-manager-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		ID:             uDomain.ID,
		Username:       uDomain.Username,
		Email:          uDomain.Email,
		Role:           uDomain.RoleID,
		StorageQuota:   uDomain.StorageQuota,
		StorageCurrent: uDomain.StorageCurrent,
		Onboarding:     uDomain.Onboarding,
		TotpEnabled:    uDomain.TotpKey != nil,
		DisableDate:    uDomain.DisableDate,
		CreateDate:     uDomain.CreateDate,
	}
}

func ToResponseUsers(dtos []user.Dto) ResponseData {
	items := make([]ListItem, len(dtos))
	for idx, d := range dtos {
		items[idx] = ListItem{
			ID:             d.ID,
			Username:       d.Username,
			Email:          d.Email,
			StorageQuota:   d.StorageQuota,
			StorageCurrent: d.StorageCurrent,
			TotpEnabled:    d.TotpKey != nil,
			DisableDate:    d.DisableTimestamp,
			CreateDate:     d.CreateTimestamp,
		}
	}

	return ResponseData{Data: items}
}

func ToResponseStats(s user.Stats) Stats {
	return Stats{
		GlobalStorageCurrent: s.StorageCurrent,
		ActiveUserCount:      s.ActiveUsers,
		DocumentCount:        s.Documents,
	}
}

// ToDomainUser builds a regular account; a nil quota leaves the default to
// the repository.
func ToDomainUser(r CreateRequest) user.User {
	u := user.User{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		RoleID:   user.RoleUser,
	}
	if r.StorageQuota != nil {
		u.StorageQuota = *r.StorageQuota
	}

	return u
}

func ToDomainPatch(r UpdateRequest) user.Patch {
	return user.Patch{
		Email:        r.Email,
		Password:     r.Password,
		StorageQuota: r.StorageQuota,
		Disabled:     r.Disabled,
	}
}
