package memory

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/authz"
	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

const (
	// PageSize is the window returned by Page.
	PageSize = 50

	maxMessageLen = 1000
)

// Send posts a message to a channel. The ID comes from the single
// global counter, so IDs are strictly increasing across the whole
// system and never reused. New messages go to the head of the log:
// index 0 is always the most recent.
func (s *Store) Send(userID, channelID int64, text string) (*models.Message, error) {
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
	if utf8.RuneCountInString(text) > maxMessageLen {
		return nil, repository.ErrMessageTooLong
	}
	if !authz.CanPost(u, ch) {
		return nil, repository.ErrNotAMember
	}

	msg := models.Message{
		ID:        s.nextMessageID,
		ChannelID: channelID,
		AuthorID:  userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.nextMessageID++

	s.messages[channelID] = append([]models.Message{msg}, s.messages[channelID]...)
	s.msgChannel[msg.ID] = channelID

	s.logger.Debug("message sent",
		zap.Int64("message_id", msg.ID),
		zap.Int64("channel_id", channelID),
		zap.Int64("author_id", userID),
	)
	return &msg, nil
}

// Edit replaces a message's text. Empty text deletes the message
// instead. Authorization matches Remove: channel owners and global
// Owners — authorship alone grants nothing.
func (s *Store) Edit(userID, messageID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if utf8.RuneCountInString(text) > maxMessageLen {
		return repository.ErrMessageTooLong
	}
	ch, u, err := s.moderationTargetLocked(userID, messageID)
	if err != nil {
		return err
	}
	if !authz.CanModerate(u, ch) {
		return repository.ErrNotAuthorized
	}

	if text == "" {
		s.deleteMessageLocked(ch.ID, messageID)
		return nil
	}
	log := s.messages[ch.ID]
	for i := range log {
		if log[i].ID == messageID {
			log[i].Text = text
			break
		}
	}
	return nil
}

// Remove deletes a message from its channel's log. A global Owner may
// remove messages in channels they are not a member of.
func (s *Store) Remove(userID, messageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, u, err := s.moderationTargetLocked(userID, messageID)
	if err != nil {
		return err
	}
	if !authz.CanModerate(u, ch) {
		return repository.ErrNotAuthorized
	}

	s.deleteMessageLocked(ch.ID, messageID)
	return nil
}

// moderationTargetLocked resolves a message ID to its channel and the
// acting user. Callers hold mu.
func (s *Store) moderationTargetLocked(userID, messageID int64) (*models.Channel, *models.User, error) {
	channelID, ok := s.msgChannel[messageID]
	if !ok {
		return nil, nil, repository.ErrUnknownMessage
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, nil, repository.ErrUnknownUser
	}
	return s.channels[channelID], u, nil
}

// deleteMessageLocked removes a message by ID. The ID stays burned:
// the counter never hands it out again.
func (s *Store) deleteMessageLocked(channelID, messageID int64) {
	log := s.messages[channelID]
	for i := range log {
		if log[i].ID == messageID {
			s.messages[channelID] = append(log[:i], log[i+1:]...)
			break
		}
	}
	delete(s.msgChannel, messageID)
	s.logger.Debug("message removed",
		zap.Int64("message_id", messageID),
		zap.Int64("channel_id", channelID),
	)
}

// Page returns one window of a channel's history. Start 0 is the most
// recent message. End is start+PageSize, or -1 when the window
// reached the oldest message in the channel.
func (s *Store) Page(userID, channelID int64, start int) (*models.MessagePage, error) {
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

	log := s.messages[channelID]
	if start < 0 || start > len(log) {
		return nil, repository.ErrPageOutOfRange
	}

	end := start + PageSize
	nextEnd := end
	if end >= len(log) {
		end = len(log)
		nextEnd = -1
	}

	page := &models.MessagePage{
		Messages: append([]models.Message{}, log[start:end]...),
		Start:    start,
		End:      nextEnd,
	}
	return page, nil
}

// Search scans every channel the user is a member of for messages
// containing query as a case-sensitive substring. Channels the user
// has left contribute nothing, even for messages they authored.
func (s *Store) Search(userID int64, query string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		return nil, repository.ErrEmptyQuery
	}
	if _, ok := s.users[userID]; !ok {
		return nil, repository.ErrUnknownUser
	}

	out := make([]models.Message, 0)
	for _, channelID := range s.channelOrder {
		ch := s.channels[channelID]
		if !ch.HasMember(userID) {
			continue
		}
		for _, msg := range s.messages[channelID] {
			if strings.Contains(msg.Text, query) {
				out = append(out, msg)
			}
		}
	}
	return out, nil
}
