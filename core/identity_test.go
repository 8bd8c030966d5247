package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_HasRole_IsCaseInsensitive(t *testing.T) {
	id := NewIdentity("alice", "Admin", "editor")

	assert.True(t, id.HasRole("admin"))
	assert.True(t, id.HasRole("ADMIN"))
	assert.True(t, id.HasRole("Editor"))
	assert.False(t, id.HasRole("viewer"))
	assert.False(t, (*Identity)(nil).HasRole("admin"))
}

func TestIdentity_Roles_NormalizedAndSorted(t *testing.T) {
	id := NewIdentity("alice", "Editor", " admin ", "", "editor")
	assert.Equal(t, []string{"admin", "editor"}, id.Roles())
	assert.Nil(t, NewIdentity("bob").Roles())
}

func TestIdentity_RolesNotHeldBy(t *testing.T) {
	target := NewIdentity("bob", "user", "Admin", "auditor")
	principal := NewIdentity("alice", "USER")

	assert.Equal(t, []string{"admin", "auditor"}, target.RolesNotHeldBy(principal))
	assert.Empty(t, principal.RolesNotHeldBy(target))

	// Against a nil principal everything is extra.
	assert.Equal(t, []string{"admin", "auditor", "user"}, target.RolesNotHeldBy(nil))
}
