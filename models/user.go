package models

import (
	"strings"
	"time"
)

// User is the local credential record behind the store-backed providers.
// Uniqueness is per (username, realm) so the same name can exist in
// independent realms.
type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex:idx_users_username_realm;not null"`
	Realm        string `gorm:"uniqueIndex:idx_users_username_realm;not null;default:'default'"`
	PasswordHash string
	Roles        string // comma-separated role names
	FullName     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleList returns the user's role names, trimmed, with empties dropped.
func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetRoles stores the given role names on the record.
func (u *User) SetRoles(roles ...string) {
	u.Roles = strings.Join(roles, ",")
}

// HasRole reports whether the user record carries the role, ignoring case.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
