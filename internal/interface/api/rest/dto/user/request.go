package user

type (
	CreateRequest struct {
		Username     string `json:"username"`
		Password     string `json:"password"`
		Email        string `json:"email"`
		StorageQuota *int64 `json:"storage_quota"`
	}
	// UpdateRequest fields left out of the body stay unchanged.
	UpdateRequest struct {
		Email        *string `json:"email"`
		Password     *string `json:"password"`
		StorageQuota *int64  `json:"storage_quota"`
		Disabled     *bool   `json:"disabled"`
	}
	PasswordRequest struct {
		Password string `json:"password"`
	}
	OnboardingRequest struct {
		Onboarding *bool `json:"onboarding"`
	}
)
