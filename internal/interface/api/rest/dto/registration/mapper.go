package registration

import (
	"document-manager-api/internal/domain/registration"
)

// ToResponseRegistration never exposes the stored password hash.
func ToResponseRegistration(r registration.Registration) Registration {
	return Registration{
		Username:   r.Username,
		Email:      r.Email,
		CreateDate: r.CreateDate,
	}
}

func ToResponseRegistrations(rs []registration.Registration) ResponseData {
	out := make([]Registration, len(rs))
	for idx, r := range rs {
		out[idx] = ToResponseRegistration(r)
	}

	return ResponseData{Data: out}
}
