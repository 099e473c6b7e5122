// Package memory implements every repository contract on a single
// in-memory store.
//
// The whole system shares one logical store, so all mutable state
// lives in one struct behind one mutex. Each public operation is the
// unit of atomicity: it takes the lock, observes a consistent
// snapshot, validates, mutates, and returns. Read-modify-write
// sequences like "assign next ID then append" therefore never
// interleave, and Reset cannot expose a half-cleared store.
//
// Correctness over throughput: a coarse lock serializes everything,
// which is exactly the intended model.
package memory

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

// Store owns all mutable state. Returned records are always copies;
// nothing outside the package can reach the maps behind the lock.
type Store struct {
	mu     sync.Mutex
	logger *zap.Logger

	users        map[int64]*models.User
	emailIndex   map[string]int64 // normalized email -> user ID
	handleIndex  map[string]int64 // handle -> user ID
	firstOwnerID int64

	sessions      map[string]int64 // token -> user ID
	sessionByUser map[int64]string // user ID -> active token

	channels     map[int64]*models.Channel
	channelOrder []int64                    // creation order, for listings
	messages     map[int64][]models.Message // channel ID -> log, newest first
	msgChannel   map[int64]int64            // message ID -> channel ID

	nextUserID    int64
	nextChannelID int64
	nextMessageID int64
}

// NewStore creates an empty store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{logger: logger}
	s.reinit()
	return s
}

// reinit replaces every substructure and counter. Callers hold mu
// (or, in NewStore, nothing can race yet).
func (s *Store) reinit() {
	s.users = make(map[int64]*models.User)
	s.emailIndex = make(map[string]int64)
	s.handleIndex = make(map[string]int64)
	s.firstOwnerID = 0
	s.sessions = make(map[string]int64)
	s.sessionByUser = make(map[int64]string)
	s.channels = make(map[int64]*models.Channel)
	s.channelOrder = nil
	s.messages = make(map[int64][]models.Message)
	s.msgChannel = make(map[int64]int64)
	s.nextUserID = 1
	s.nextChannelID = 1
	s.nextMessageID = 1
}

// Reset wipes all state atomically: users, sessions, channels,
// messages and every ID counter. In-flight operations either complete
// before the wipe or start against the fresh store — never halfway.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reinit()
	s.logger.Info("store reset")
}

// userCopy returns a detached copy of a user record.
func userCopy(u *models.User) *models.User {
	c := *u
	return &c
}

// channelCopy returns a detached copy of a channel record, slices
// included.
func channelCopy(ch *models.Channel) *models.Channel {
	c := *ch
	c.OwnerIDs = append([]int64(nil), ch.OwnerIDs...)
	c.MemberIDs = append([]int64(nil), ch.MemberIDs...)
	return &c
}

// removeID deletes id from ids, preserving order.
func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Compile-time proof that Store satisfies every repository contract.
var (
	_ repository.IdentityRepository = (*Store)(nil)
	_ repository.SessionRepository  = (*Store)(nil)
	_ repository.ChannelRepository  = (*Store)(nil)
	_ repository.MessageRepository  = (*Store)(nil)
	_ repository.Resetter           = (*Store)(nil)
)
