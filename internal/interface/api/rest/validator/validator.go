package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/interface/api/rest/dto/auth"
	"document-manager-api/internal/interface/api/rest/dto/document"
	"document-manager-api/internal/interface/api/rest/dto/group"
	"document-manager-api/internal/interface/api/rest/dto/registration"
	"document-manager-api/internal/interface/api/rest/dto/user"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	maxEmailLen    = 100
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe

	maxTitleLen       = 100
	maxDescriptionLen = 4000
	maxMetadataLen    = 500
	maxGroupNameLen   = 50

	defaultLimit = 10
	maxLimit     = 100

	dateLayout = "2006-01-02"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_@.-]+$`)

// ValidatePage reads offset and limit query values. Empty values take the
// defaults; limit is capped.
func ValidatePage(offset, limit string) (criteria.Page, error) {
	o, l := 0, defaultLimit
	var err error
	if offset != "" {
		if o, err = strconv.Atoi(offset); err != nil || o < 0 {
			return criteria.Page{}, errors.New("invalid offset")
		}
	}
	if limit != "" {
		if l, err = strconv.Atoi(limit); err != nil || l < 1 {
			return criteria.Page{}, errors.New("invalid limit")
		}
	}

	return criteria.NewPage(o, min(l, maxLimit)), nil
}

// ValidateSort reads sort_column and asc. A missing column selects the
// default order of the listing.
func ValidateSort(column, asc string) (criteria.Sort, error) {
	s := criteria.NewSort(-1, true)
	if column != "" {
		c, err := strconv.Atoi(column)
		if err != nil || c < 0 {
			return s, errors.New("invalid sort_column")
		}
		s.Column = c
	}
	if asc != "" {
		b, err := strconv.ParseBool(asc)
		if err != nil {
			return s, errors.New("invalid asc")
		}
		s.Asc = b
	}

	return s, nil
}

func validateUsername(errs map[string]string, username string) {
	switch l := utf8.RuneCountInString(username); {
	case l == 0:
		errs["username"] = "username is required"
	case l < minUsernameLen || l > maxUsernameLen:
		errs["username"] = "username length must be 3–50 characters"
	case !usernameRe.MatchString(username):
		errs["username"] = "allowed characters: letters, digits, '_', '@', '.', '-'"
	}
}

func validateEmail(errs map[string]string, email string) {
	switch {
	case email == "":
		errs["email"] = "email is required"
	case len(email) > maxEmailLen:
		errs["email"] = "email is too long"
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = "invalid email format"
		}
	}
}

func validatePassword(errs map[string]string, password string) {
	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8–72 characters"
	} else if len(password) > maxPasswordLen {
		errs["password"] = "password must be at most 72 bytes"
	}
}

func result(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}

	return result(errs)
}

// ValidateCreateUser normalizes the request in place.
func ValidateCreateUser(r *user.CreateRequest) map[string]string {
	errs := make(map[string]string)

	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	validateUsername(errs, r.Username)
	validateEmail(errs, r.Email)
	validatePassword(errs, r.Password)
	if r.StorageQuota != nil && *r.StorageQuota < 0 {
		errs["storage_quota"] = "storage_quota must not be negative"
	}

	return result(errs)
}

func ValidateUpdateUser(r *user.UpdateRequest) map[string]string {
	errs := make(map[string]string)

	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &e
		validateEmail(errs, e)
	}
	if r.Password != nil {
		validatePassword(errs, *r.Password)
	}
	if r.StorageQuota != nil && *r.StorageQuota < 0 {
		errs["storage_quota"] = "storage_quota must not be negative"
	}

	return result(errs)
}

func ValidatePassword(r user.PasswordRequest) map[string]string {
	errs := make(map[string]string)
	validatePassword(errs, r.Password)

	return result(errs)
}

// IsLanguage reports whether code is an ISO 639 language code.
func IsLanguage(code string) bool {
	if l := len(code); l < 2 || l > 3 {
		return false
	}
	_, err := language.ParseBase(code)
	return err == nil
}

func normalizeOptional(errs map[string]string, field string, v *string, maxLen int) *string {
	if v == nil {
		return nil
	}
	s := norm.NFC.String(strings.TrimSpace(*v))
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) > maxLen {
		errs[field] = field + " is too long"
	}
	return &s
}

// ValidateDocument NFC-normalizes text fields in place; blank optional
// fields become nil.
func ValidateDocument(r *document.Request) map[string]string {
	errs := make(map[string]string)

	r.Title = norm.NFC.String(strings.TrimSpace(r.Title))
	switch l := utf8.RuneCountInString(r.Title); {
	case l == 0:
		errs["title"] = "title is required"
	case l > maxTitleLen:
		errs["title"] = "title length must be at most 100 characters"
	}

	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if r.Language != "" && !IsLanguage(r.Language) {
		errs["language"] = "unknown language code"
	}

	r.Description = normalizeOptional(errs, "description", r.Description, maxDescriptionLen)
	r.Subject = normalizeOptional(errs, "subject", r.Subject, maxMetadataLen)
	r.Identifier = normalizeOptional(errs, "identifier", r.Identifier, maxMetadataLen)
	r.Publisher = normalizeOptional(errs, "publisher", r.Publisher, maxMetadataLen)
	r.Format = normalizeOptional(errs, "format", r.Format, maxMetadataLen)
	r.Source = normalizeOptional(errs, "source", r.Source, maxMetadataLen)
	r.Type = normalizeOptional(errs, "type", r.Type, 100)
	r.Coverage = normalizeOptional(errs, "coverage", r.Coverage, 100)
	r.Rights = normalizeOptional(errs, "rights", r.Rights, 100)

	return result(errs)
}

// ValidateDate parses an optional YYYY-MM-DD query value as UTC midnight.
func ValidateDate(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		return nil, errors.New("invalid " + field)
	}
	return &t, nil
}

// ValidateRegistration normalizes the request in place.
func ValidateRegistration(r *registration.Request) map[string]string {
	errs := make(map[string]string)

	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	validateUsername(errs, r.Username)
	validateEmail(errs, r.Email)
	validatePassword(errs, r.Password)

	return result(errs)
}

func ValidateGroup(r *group.Request) map[string]string {
	errs := make(map[string]string)

	r.Name = strings.TrimSpace(r.Name)
	switch l := utf8.RuneCountInString(r.Name); {
	case l == 0:
		errs["name"] = "name is required"
	case l > maxGroupNameLen:
		errs["name"] = "name length must be at most 50 characters"
	case !usernameRe.MatchString(r.Name):
		errs["name"] = "allowed characters: letters, digits, '_', '@', '.', '-'"
	}

	return result(errs)
}

// ValidateAcl upper-cases perm and type in place and defaults type to USER.
func ValidateAcl(r *document.AclRequest) map[string]string {
	errs := make(map[string]string)

	r.Perm = strings.ToUpper(strings.TrimSpace(r.Perm))
	if !acl.PermType(r.Perm).Valid() {
		errs["perm"] = "perm must be READ or WRITE"
	}
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = string(acl.TargetUser)
	}
	if !acl.TargetType(r.Type).Valid() {
		errs["type"] = "type must be USER or GROUP"
	}
	r.Target = strings.TrimSpace(r.Target)
	if r.Target == "" {
		errs["target"] = "target is required"
	}

	return result(errs)
}
