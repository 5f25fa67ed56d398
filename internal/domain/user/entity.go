package user

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrAlreadyExistingUsername = errors.New("AlreadyExistingUsername")
	ErrNotFound                = errors.New("user not found")
)

type (
	User struct {
		ID       string
		Username string
		// Password is plaintext when passed to Create or UpdatePassword
		// and the stored bcrypt hash everywhere else.
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

	// Dto is the read projection returned by FindByCriteria.
	Dto struct {
		ID               string
		Username         string
		Email            string
		CreateTimestamp  time.Time
		StorageCurrent   int64
		StorageQuota     int64
		TotpKey          *string
		DisableTimestamp *time.Time
	}

	Criteria struct {
		Search   string
		UserID   string
		UserName string
	}

	// Patch carries the fields an administrator may change; nil leaves a
	// field untouched.
	Patch struct {
		Email        *string
		Password     *string
		StorageQuota *int64
		Disabled     *bool
	}

	// Stats are platform-wide totals over active records.
	Stats struct {
		StorageCurrent int64
		ActiveUsers    int64
		Documents      int64
	}
)

func (u *User) IsActive() bool  { return u.DeleteDate == nil }
func (u *User) IsDisabled() bool { return u.DisableDate != nil }

// Apply copies the set fields of p onto u. Disabling an already disabled
// user keeps the original disable date. Password is not applied.
func (p Patch) Apply(u *User, now time.Time) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.StorageQuota != nil {
		u.StorageQuota = *p.StorageQuota
	}
	if p.Disabled != nil {
		switch {
		case !*p.Disabled:
			u.DisableDate = nil
		case u.DisableDate == nil:
			u.DisableDate = &now
		}
	}
}
