package models

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account row in the users table.
type User struct {
	ID           int64  `db:"id"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	IsActive     bool   `db:"is_active"`
}

// FullName joins the user's first and last names for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
