package user

// User is the account entity chat turns are scoped to. Usernames are stored
// lowercase; PasswordHash is a bcrypt hash and never leaves the backend.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
}
