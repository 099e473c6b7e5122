package memory

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/authz"
	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

// normalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the next sequential ID. The first
// registered user becomes the first owner: PermOwner, permanently
// protected from demotion.
func (s *Store) Register(email, passwordHash, firstName, lastName string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.prepareUserLocked(email, passwordHash, firstName, lastName)
	if err != nil {
		return nil, err
	}
	s.commitUserLocked(u)
	return userCopy(u), nil
}

// prepareUserLocked validates a registration and builds the record
// without touching store state; commitUserLocked makes it visible.
// Split in two so RegisterAndLogin can mint a token between the steps
// and fail without leaving a half-registered user behind. Callers
// hold mu.
func (s *Store) prepareUserLocked(email, passwordHash, firstName, lastName string) (*models.User, error) {
	norm := normalizeEmail(email)
	if _, taken := s.emailIndex[norm]; taken {
		return nil, repository.ErrDuplicateEmail
	}

	u := &models.User{
		ID:           s.nextUserID,
		Email:        norm,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Handle:       s.generateHandle(firstName, lastName),
		Perm:         models.PermMember,
		CreatedAt:    time.Now().UTC(),
	}
	if len(s.users) == 0 {
		u.Perm = models.PermOwner
	}
	return u, nil
}

// commitUserLocked records a prepared user. Callers hold mu.
func (s *Store) commitUserLocked(u *models.User) {
	s.nextUserID++
	if len(s.users) == 0 {
		s.firstOwnerID = u.ID
	}

	s.users[u.ID] = u
	s.emailIndex[u.Email] = u.ID
	s.handleIndex[u.Handle] = u.ID

	s.logger.Debug("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("handle", u.Handle),
	)
}

// generateHandle derives a unique handle from the user's name:
// lowercased first+last truncated to 20 characters, then the smallest
// numeric suffix that avoids a collision (name, name0, name1, …).
// The base is re-truncated so the suffixed result never exceeds 20.
func (s *Store) generateHandle(firstName, lastName string) string {
	const maxLen = 20

	base := []rune(strings.ToLower(firstName + lastName))
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if _, taken := s.handleIndex[string(base)]; !taken {
		return string(base)
	}
	for i := 0; ; i++ {
		suffix := strconv.Itoa(i)
		trunc := base
		if len(trunc)+len(suffix) > maxLen {
			trunc = trunc[:maxLen-len(suffix)]
		}
		h := string(trunc) + suffix
		if _, taken := s.handleIndex[h]; !taken {
			return h
		}
	}
}

// SetPermission changes target's global permission level.
func (s *Store) SetPermission(actorID, targetID int64, perm models.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !perm.Valid() {
		return repository.ErrInvalidPermission
	}
	actor, ok := s.users[actorID]
	if !ok {
		return repository.ErrUnknownUser
	}
	if !authz.CanChangePermission(actor) {
		return repository.ErrNotAuthorized
	}
	target, ok := s.users[targetID]
	if !ok {
		return repository.ErrUnknownUser
	}
	// The first owner keeps Owner forever, whoever asks.
	if targetID == s.firstOwnerID && perm != models.PermOwner {
		return repository.ErrProtectedOwner
	}

	target.Perm = perm
	s.logger.Debug("permission changed",
		zap.Int64("actor_id", actorID),
		zap.Int64("target_id", targetID),
		zap.Int("permission", int(perm)),
	)
	return nil
}

// FindByEmail looks a user up by normalized email.
func (s *Store) FindByEmail(email string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emailIndex[normalizeEmail(email)]
	if !ok {
		return nil, false
	}
	return userCopy(s.users[id]), true
}

// FindByID looks a user up by ID.
func (s *Store) FindByID(id int64) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return userCopy(u), true
}

// UpdateProfile applies the non-nil fields of upd, re-checking email
// and handle uniqueness against everyone else.
func (s *Store) UpdateProfile(userID int64, upd repository.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUnknownUser
	}

	// Validate every field before mutating anything: a rejected update
	// must leave the record exactly as it was.
	var newEmail string
	if upd.Email != nil {
		newEmail = normalizeEmail(*upd.Email)
		if owner, taken := s.emailIndex[newEmail]; taken && owner != userID {
			return nil, repository.ErrDuplicateEmail
		}
	}
	if upd.Handle != nil {
		if owner, taken := s.handleIndex[*upd.Handle]; taken && owner != userID {
			return nil, repository.ErrDuplicateHandle
		}
	}

	if upd.Email != nil {
		delete(s.emailIndex, u.Email)
		u.Email = newEmail
		s.emailIndex[newEmail] = userID
	}
	if upd.Handle != nil {
		delete(s.handleIndex, u.Handle)
		u.Handle = *upd.Handle
		s.handleIndex[u.Handle] = userID
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}

	return userCopy(u), nil
}
