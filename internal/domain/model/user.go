package model

import (
	"time"
)

// Role is the subscription tier of a user.
type Role string

const (
	RoleFree  Role = "FREE"
	RolePro   Role = "PRO"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a stored role onto a known tier. Anything unrecognised,
// including an empty value, is treated as FREE.
func ParseRole(s string) Role {
	switch r := Role(s); r {
	case RolePro, RoleAdmin:
		return r
	default:
		return RoleFree
	}
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile and Account mirror the nested shape the web client reads the
// role from: user -> user -> profile -> role.
type Profile struct {
	Role Role `json:"role"`
}

type Account struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Profile  Profile `json:"profile"`
}

type CurrentUserResponse struct {
	User Account `json:"user"`
}
