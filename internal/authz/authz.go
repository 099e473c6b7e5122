// Package authz is the authorization engine: pure decisions derived
// from identity and channel state. Nothing here mutates or errors —
// every function is total. Callers translate a false into an access
// error when the target exists, or an input error when it doesn't;
// that distinction lives with the caller because only the caller
// knows whether the identifier resolved.
package authz

import "github.com/lalith-99/flocknest/internal/models"

// CanViewChannel reports whether the user may read the channel:
// public channels are visible to everyone, private ones to members.
func CanViewChannel(u *models.User, ch *models.Channel) bool {
	if u == nil || ch == nil {
		return false
	}
	return ch.IsPublic || ch.HasMember(u.ID)
}

// CanPost reports whether the user may send messages to the channel.
// Viewing a public channel does not grant posting; membership does.
func CanPost(u *models.User, ch *models.Channel) bool {
	if u == nil || ch == nil {
		return false
	}
	return ch.HasMember(u.ID)
}

// CanModerate reports whether the user may edit or remove messages in
// the channel: global Owners and channel owners only. Authorship
// grants nothing — a member cannot touch their own message unless
// they also own the channel. A global Owner moderates channels they
// never joined; that elevated standing is moderation-only and does
// not extend to viewing or membership.
func CanModerate(u *models.User, ch *models.Channel) bool {
	if u == nil || ch == nil {
		return false
	}
	return u.Perm == models.PermOwner || ch.HasOwner(u.ID)
}

// CanChangePermission reports whether the actor may change global
// permission levels.
func CanChangePermission(actor *models.User) bool {
	return actor != nil && actor.Perm == models.PermOwner
}
