package user

import "time"

type (
	User struct {
		ID             string     `json:"id"`
		Username       string     `json:"username"`
		Email          string     `json:"email"`
		Role           string     `json:"role"`
		StorageQuota   int64      `json:"storage_quota"`
		StorageCurrent int64      `json:"storage_current"`
		Onboarding     bool       `json:"onboarding"`
		TotpEnabled    bool       `json:"totp_enabled"`
		DisableDate    *time.Time `json:"disable_date,omitempty"`
		CreateDate     time.Time  `json:"create_date"`
	}
	ListItem struct {
		ID             string     `json:"id"`
		Username       string     `json:"username"`
		Email          string     `json:"email"`
		StorageQuota   int64      `json:"storage_quota"`
		StorageCurrent int64      `json:"storage_current"`
		TotpEnabled    bool       `json:"totp_enabled"`
		DisableDate    *time.Time `json:"disable_date,omitempty"`
		CreateDate     time.Time  `json:"create_date"`
	}
	ResponseData struct {
		Data []ListItem `json:"data"`
	}
	Stats struct {
		GlobalStorageCurrent int64 `json:"global_storage_current"`
		ActiveUserCount      int64 `json:"active_user_count"`
		DocumentCount        int64 `json:"document_count"`
	}
)
