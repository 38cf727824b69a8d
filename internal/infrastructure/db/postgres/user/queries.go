package user

const (
	SelectUserByEmail = `
		SELECT id, email, password_hash, fname, lname, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`
)
