package auth

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// User is a CMS staff account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
