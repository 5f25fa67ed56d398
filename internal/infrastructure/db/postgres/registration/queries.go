package registration

const (
	registrationColumns = `id, username, email, password, create_date`

	UpsertRegistration = `
		INSERT INTO registrations (id, username, email, password, create_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE
		SET email = EXCLUDED.email, password = EXCLUDED.password, create_date = EXCLUDED.create_date
		RETURNING ` + registrationColumns + `
	`
	SelectRegistrationByUsername = `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE username = $1
	`
	SelectRegistrations = `
		SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY create_date, username
	`
	DeleteRegistration = `
		DELETE FROM registrations WHERE username = $1
	`
)
