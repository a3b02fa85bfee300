package assist

import "tle_zone_assist/internal/domain/model"

// RoleAbsent is the role of a session that has no readable role, e.g. a
// signed-out visitor or a profile without a tier. It is never entitled.
const RoleAbsent model.Role = "ABSENT"

// SessionUser is the user object held by the session store. Every link of
// user -> user -> profile -> role may be missing.
type SessionUser struct {
	User *SessionAccount `json:"user"`
}

type SessionAccount struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Profile  *SessionProfile `json:"profile"`
}

type SessionProfile struct {
	Role *string `json:"role"`
}

// LookupRole reads the role through the nested optional path. It is total:
// any missing link or unknown value yields RoleAbsent.
func LookupRole(u *SessionUser) model.Role {
	if u == nil || u.User == nil || u.User.Profile == nil || u.User.Profile.Role == nil {
		return RoleAbsent
	}
	switch r := model.Role(*u.User.Profile.Role); r {
	case model.RoleFree, model.RolePro, model.RoleAdmin:
		return r
	default:
		return RoleAbsent
	}
}

// IsEntitled reports whether role may use an AI feature. It performs no I/O
// and must be consulted before any request to the assistance service.
func IsEntitled(role model.Role, feature model.Feature) bool {
	return model.IsEntitled(role, feature)
}
