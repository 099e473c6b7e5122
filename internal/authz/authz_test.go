package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lalith-99/flocknest/internal/models"
)

func member(id int64) *models.User {
	return &models.User{ID: id, Perm: models.PermMember}
}

func globalOwner(id int64) *models.User {
	return &models.User{ID: id, Perm: models.PermOwner}
}

func channel(public bool, ownerIDs, memberIDs []int64) *models.Channel {
	return &models.Channel{IsPublic: public, OwnerIDs: ownerIDs, MemberIDs: memberIDs}
}

func TestCanViewChannel(t *testing.T) {
	public := channel(true, []int64{1}, []int64{1})
	private := channel(false, []int64{1}, []int64{1, 2})

	assert.True(t, CanViewChannel(member(99), public), "public channels are visible to anyone")
	assert.True(t, CanViewChannel(member(2), private), "members see private channels")
	assert.False(t, CanViewChannel(member(99), private))

	// Global Owner standing is moderation-only: it grants no view
	// rights on private channels.
	assert.False(t, CanViewChannel(globalOwner(99), private))
}

func TestCanPost(t *testing.T) {
	public := channel(true, []int64{1}, []int64{1})

	assert.True(t, CanPost(member(1), public))
	assert.False(t, CanPost(member(99), public), "viewing does not grant posting")
	assert.False(t, CanPost(globalOwner(99), public), "global Owners do not post without membership")
}

func TestCanModerate(t *testing.T) {
	ch := channel(false, []int64{1}, []int64{1, 2})

	assert.True(t, CanModerate(member(1), ch), "channel owner moderates")
	assert.True(t, CanModerate(globalOwner(99), ch), "global Owner moderates any channel")
	assert.False(t, CanModerate(member(2), ch), "plain membership is not enough")
}

func TestCanChangePermission(t *testing.T) {
	assert.True(t, CanChangePermission(globalOwner(1)))
	assert.False(t, CanChangePermission(member(1)))
	assert.False(t, CanChangePermission(nil))
}

func TestDecisionsAreTotal(t *testing.T) {
	// Nil inputs must produce a decision, never a panic.
	assert.False(t, CanViewChannel(nil, nil))
	assert.False(t, CanPost(member(1), nil))
	assert.False(t, CanModerate(nil, channel(true, nil, nil)))
}
