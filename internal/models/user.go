package models

// UserRole represents the roles known to the session guard.
type UserRole string

const (
	RoleMember  UserRole = "member"
	RoleManager UserRole = "manager"
)

// User represents an application user stored in the users table.
type User struct {
	ID           int64    `db:"id" json:"id"`
	Email        string   `db:"email" json:"email"`
	PasswordHash string   `db:"password" json:"-"`
	Role         UserRole `db:"role" json:"role"`
}

// Info returns the public projection of the user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Role: u.Role}
}
