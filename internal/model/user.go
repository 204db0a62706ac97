package model

import (
	"strings"
	"time"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusPending  UserStatus = "pending"
	UserStatusLocked   UserStatus = "locked"
	UserStatusDisabled UserStatus = "disabled"
)

type User struct {
	Base
	Username         string     `db:"username" json:"username"`
	Email            string     `db:"email" json:"email"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	Phone            string     `db:"phone" json:"phone,omitempty"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	RoleName         string     `db:"role_name" json:"role_name"`
	Status           UserStatus `db:"status" json:"status"`
	LoginAttempts    int        `db:"login_attempts" json:"-"`
	LastLoginAttempt time.Time  `db:"last_login_attempt" json:"-"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	Timestamps
}

// Roles that always carry administrator rights, regardless of what the
// permission menu says.
var administratorRoles = map[string]struct{}{
	"admin":         {},
	"administrator": {},
	"superadmin":    {},
	"super admin":   {},
}

// IsAdministratorRole is the single place role strings are interpreted.
// A role matches if it is a known administrator designation or contains
// "admin" in any casing.
func IsAdministratorRole(roleName string) bool {
	name := strings.ToLower(strings.TrimSpace(roleName))
	if _, ok := administratorRoles[name]; ok {
		return true
	}
	return strings.Contains(name, "admin")
}
