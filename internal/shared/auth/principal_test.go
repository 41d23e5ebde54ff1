package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanActOnMembership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("admin acts on any membership", func(t *testing.T) {
		p := Principal{ID: stranger, Role: RoleAdmin}
		assert.True(t, p.CanActOnMembership(owner))
	})

	t.Run("owner acts on own membership", func(t *testing.T) {
		p := Principal{ID: owner, Role: RoleUser}
		assert.True(t, p.CanActOnMembership(owner))
	})

	t.Run("regular user cannot act on another's membership", func(t *testing.T) {
		p := Principal{ID: stranger, Role: RoleUser}
		assert.False(t, p.CanActOnMembership(owner))
	})
}

func TestCanActOnUser(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	assert.True(t, Principal{ID: self, Role: RoleUser}.CanActOnUser(self))
	assert.False(t, Principal{ID: self, Role: RoleUser}.CanActOnUser(other))
	assert.True(t, Principal{ID: self, Role: RoleAdmin}.CanActOnUser(other))
}
