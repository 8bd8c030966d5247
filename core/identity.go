package core

import (
	"sort"
	"strings"
)

// Identity is the opaque principal representation exchanged with providers.
// Role membership is the only attribute the engine itself inspects; anything
// else a backend knows about the user stays on the backend's side.
//
// Role names are normalized to ASCII lowercase at construction time so that
// membership checks never depend on the host locale.
type Identity struct {
	Username string

	roles map[string]struct{}
}

// NewIdentity creates an Identity holding the given roles. Empty role names
// are dropped.
func NewIdentity(username string, roles ...string) *Identity {
	id := &Identity{
		Username: username,
		roles:    make(map[string]struct{}, len(roles)),
	}
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			id.roles[r] = struct{}{}
		}
	}
	return id
}

// HasRole reports whether the identity holds the role. Comparison is
// case-insensitive.
func (id *Identity) HasRole(role string) bool {
	if id == nil {
		return false
	}
	_, ok := id.roles[strings.ToLower(role)]
	return ok
}

// Roles returns the normalized role names in sorted order.
func (id *Identity) Roles() []string {
	if id == nil || len(id.roles) == 0 {
		return nil
	}
	out := make([]string, 0, len(id.roles))
	for r := range id.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// RolesNotHeldBy returns the roles id holds that other does not, sorted.
// This is the set difference behind the privilege-containment check.
func (id *Identity) RolesNotHeldBy(other *Identity) []string {
	if id == nil {
		return nil
	}
	var out []string
	for r := range id.roles {
		if !other.HasRole(r) {
			out = append(out, r)
		}
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both identities have the same username and role set.
func (id *Identity) Equal(other *Identity) bool {
	if id == nil || other == nil {
		return id == other
	}
	if id.Username != other.Username || len(id.roles) != len(other.roles) {
		return false
	}
	for r := range id.roles {
		if _, ok := other.roles[r]; !ok {
			return false
		}
	}
	return true
}
