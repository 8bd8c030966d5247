package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasqueradePolicy_ZeroValueDisables(t *testing.T) {
	var p MasqueradePolicy
	assert.False(t, p.Enabled())
	assert.False(t, p.Permits(NewIdentity("alice", "admin")))
}

func TestMasqueradePolicy_Disabled(t *testing.T) {
	p := MasqueradeDisabled()
	assert.False(t, p.Enabled())
	assert.False(t, p.Permits(NewIdentity("alice", "admin")))
}

func TestMasqueradePolicy_Unrestricted(t *testing.T) {
	p := MasqueradeUnrestricted()
	assert.True(t, p.Enabled())
	assert.True(t, p.Permits(NewIdentity("alice")))
	assert.True(t, p.Permits(NewIdentity("bob", "user")))
}

func TestMasqueradePolicy_RestrictedTo(t *testing.T) {
	p := MasqueradeRestrictedTo("Admin", "support")
	assert.True(t, p.Enabled())
	assert.True(t, p.Permits(NewIdentity("alice", "ADMIN")))
	assert.True(t, p.Permits(NewIdentity("carol", "support", "user")))
	assert.False(t, p.Permits(NewIdentity("bob", "user")))
	assert.False(t, p.Permits(nil))
}

func TestMasqueradePolicy_RestrictedToNothingIsUnrestricted(t *testing.T) {
	p := MasqueradeRestrictedTo()
	assert.True(t, p.Permits(NewIdentity("bob", "user")))

	p = MasqueradeRestrictedTo("", "  ")
	assert.True(t, p.Permits(NewIdentity("bob", "user")))
}
