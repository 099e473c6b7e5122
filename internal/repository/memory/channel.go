package memory

import (
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/authz"
	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

const (
	minChannelNameLen = 1
	maxChannelNameLen = 20
)

// Create makes a channel with the next sequential ID. The creator is
// automatically both member and owner.
func (s *Store) Create(creatorID int64, name string, isPublic bool) (*models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := utf8.RuneCountInString(name)
	if n < minChannelNameLen || n > maxChannelNameLen {
		return nil, repository.ErrInvalidChannelName
	}
	if _, ok := s.users[creatorID]; !ok {
		return nil, repository.ErrUnknownUser
	}

	ch := &models.Channel{
		ID:        s.nextChannelID,
		Name:      name,
		IsPublic:  isPublic,
		OwnerIDs:  []int64{creatorID},
		MemberIDs: []int64{creatorID},
		CreatedAt: time.Now().UTC(),
	}
	s.nextChannelID++

	s.channels[ch.ID] = ch
	s.channelOrder = append(s.channelOrder, ch.ID)

	s.logger.Debug("channel created",
		zap.Int64("channel_id", ch.ID),
		zap.Int64("creator_id", creatorID),
		zap.Bool("is_public", isPublic),
	)
	return channelCopy(ch), nil
}

// Join adds the user as a member. Already a member is a no-op, not an
// error. Private channels admit only existing owners — everyone else
// gets in via Invite or AddOwner.
func (s *Store) Join(userID, channelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channelID]
	if !ok {
		return repository.ErrUnknownChannel
	}
	if _, ok := s.users[userID]; !ok {
		return repository.ErrUnknownUser
	}
	if ch.HasMember(userID) {
		return nil
	}
	if !ch.IsPublic && !ch.HasOwner(userID) {
		return repository.ErrPrivateChannel
	}

	ch.MemberIDs = append(ch.MemberIDs, userID)
	return nil
}

// Invite adds target as a member regardless of channel visibility.
// The actor must be a member themselves. Inviting an existing member
// is a no-op.
func (s *Store) Invite(actorID, channelID, targetID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channelID]
	if !ok {
		return repository.ErrUnknownChannel
	}
	if !ch.HasMember(actorID) {
		return repository.ErrNotAMember
	}
	if _, ok := s.users[targetID]; !ok {
		return repository.ErrUnknownUser
	}
	if ch.HasMember(targetID) {
		return nil
	}

	ch.MemberIDs = append(ch.MemberIDs, targetID)
	return nil
}

// Leave removes the user from both the member and owner sets. If the
// last owner leaves, the channel is left with zero owners — there is
// no auto-promotion.
func (s *Store) Leave(userID, channelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channelID]
	if !ok {
		return repository.ErrUnknownChannel
	}
	if !ch.HasMember(userID) {
		return repository.ErrNotAMember
	}

	ch.MemberIDs = removeID(ch.MemberIDs, userID)
	ch.OwnerIDs = removeID(ch.OwnerIDs, userID)
	return nil
}

// AddOwner promotes target to channel owner. The actor must be a
// channel owner or a global Owner. A target who is not yet a member
// becomes one — this is the other path (besides Invite) into a
// private channel.
func (s *Store) AddOwner(actorID, channelID, targetID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channelID]
	if !ok {
		return repository.ErrUnknownChannel
	}
	actor, ok := s.users[actorID]
	if !ok {
		return repository.ErrUnknownUser
	}
	// Same standing that message moderation requires: channel owner
	// or global Owner.
	if !authz.CanModerate(actor, ch) {
		return repository.ErrNotAuthorized
	}
	if _, ok := s.users[targetID]; !ok {
		return repository.ErrUnknownUser
	}
	if ch.HasOwner(targetID) {
		return repository.ErrAlreadyOwner
	}

	if !ch.HasMember(targetID) {
		ch.MemberIDs = append(ch.MemberIDs, targetID)
	}
	ch.OwnerIDs = append(ch.OwnerIDs, targetID)
	return nil
}

// RemoveOwner demotes target from channel owner; membership is kept.
func (s *Store) RemoveOwner(actorID, channelID, targetID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channelID]
	if !ok {
		return repository.ErrUnknownChannel
	}
	actor, ok := s.users[actorID]
	if !ok {
		return repository.ErrUnknownUser
	}
	if !authz.CanModerate(actor, ch) {
		return repository.ErrNotAuthorized
	}
	if _, ok := s.users[targetID]; !ok {
		return repository.ErrUnknownUser
	}
	if !ch.HasOwner(targetID) {
		return repository.ErrNotAnOwner
	}

	ch.OwnerIDs = removeID(ch.OwnerIDs, targetID)
	return nil
}

// ListForUser returns summaries of the channels the user belongs to,
// in creation order.
func (s *Store) ListForUser(userID int64) []models.ChannelSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Empty slice, not nil, so JSON serializes to [] rather than null.
	out := make([]models.ChannelSummary, 0)
	for _, id := range s.channelOrder {
		ch := s.channels[id]
		if ch.HasMember(userID) {
			out = append(out, models.ChannelSummary{ID: ch.ID, Name: ch.Name})
		}
	}
	return out
}

// ListAll returns summaries of every channel, public or private.
// Channel existence is not a secret; contents stay gated at the
// message level.
func (s *Store) ListAll() []models.ChannelSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChannelSummary, 0, len(s.channelOrder))
	for _, id := range s.channelOrder {
		ch := s.channels[id]
		out = append(out, models.ChannelSummary{ID: ch.ID, Name: ch.Name})
	}
	return out
}

// Details returns the full channel view with resolved owner and
// member records, gated on view rights.
func (s *Store) Details(userID, channelID int64) (*repository.ChannelDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channelID]
	if !ok {
		return nil, repository.ErrUnknownChannel
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUnknownUser
	}
	if !authz.CanViewChannel(u, ch) {
		return nil, repository.ErrPrivateChannel
	}

	return &repository.ChannelDetails{
		ID:       ch.ID,
		Name:     ch.Name,
		IsPublic: ch.IsPublic,
		Owners:   s.resolveUsersLocked(ch.OwnerIDs),
		Members:  s.resolveUsersLocked(ch.MemberIDs),
	}, nil
}

func (s *Store) resolveUsersLocked(ids []int64) []models.User {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out
}
