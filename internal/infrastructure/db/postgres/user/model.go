package user

import (
	"time"
)

type (
	User struct {
		ID             string
		Username       string
		Password       string
		Email          string
		RoleID         string
		StorageQuota   int64
		StorageCurrent int64
		Onboarding     bool
		TotpKey        *string
		DisableDate    *time.Time

		CreateDate time.Time
		DeleteDate *time.Time
	}
	Users []*User

	UserDto struct {
		ID             string
		Username       string
		Email          string
		CreateDate     time.Time
		StorageCurrent int64
		StorageQuota   int64
		TotpKey        *string
		DisableDate    *time.Time
	}
)
