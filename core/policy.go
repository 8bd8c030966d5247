package core

import "strings"

type masqueradeMode int

const (
	masqueradeDisabled masqueradeMode = iota
	masqueradeUnrestricted
	masqueradeRestricted
)

// MasqueradePolicy controls who may initiate a masquerade. It is a
// three-state value: disabled (nobody), unrestricted (any authenticated
// principal), or restricted to an allow-list of roles.
//
// The zero value disables masquerade.
type MasqueradePolicy struct {
	mode  masqueradeMode
	roles map[string]struct{}
}

// MasqueradeDisabled returns the policy that denies all principals.
func MasqueradeDisabled() MasqueradePolicy {
	return MasqueradePolicy{mode: masqueradeDisabled}
}

// MasqueradeUnrestricted returns the policy that permits any principal.
func MasqueradeUnrestricted() MasqueradePolicy {
	return MasqueradePolicy{mode: masqueradeUnrestricted}
}

// MasqueradeRestrictedTo returns a policy permitting only principals holding
// at least one of the given roles, compared case-insensitively. With no
// roles it is equivalent to MasqueradeUnrestricted.
func MasqueradeRestrictedTo(roles ...string) MasqueradePolicy {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			set[r] = struct{}{}
		}
	}
	if len(set) == 0 {
		return MasqueradeUnrestricted()
	}
	return MasqueradePolicy{mode: masqueradeRestricted, roles: set}
}

// Enabled reports whether masquerade is configured at all.
func (p MasqueradePolicy) Enabled() bool {
	return p.mode != masqueradeDisabled
}

// Permits reports whether the principal may initiate a masquerade under
// this policy.
func (p MasqueradePolicy) Permits(id *Identity) bool {
	switch p.mode {
	case masqueradeUnrestricted:
		return true
	case masqueradeRestricted:
		if id == nil {
			return false
		}
		for r := range p.roles {
			if id.HasRole(r) {
				return true
			}
		}
	}
	return false
}
