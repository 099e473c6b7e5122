package memory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

// Login authenticates by email and opens a session. Checks run in
// order: the user must exist, must not already be logged in, and the
// password must verify. Minting happens under the lock so the token
// is recorded in the same atomic step it is issued.
func (s *Store) Login(email string, check repository.PasswordCheck, mint repository.TokenMinter) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emailIndex[normalizeEmail(email)]
	if !ok {
		return "", repository.ErrUnknownUser
	}
	u := s.users[id]

	if _, active := s.sessionByUser[id]; active {
		return "", repository.ErrAlreadyLoggedIn
	}
	if !check(u.PasswordHash) {
		return "", repository.ErrWrongCredentials
	}

	token, err := mint(userCopy(u))
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	s.openSessionLocked(u.ID, token)
	return token, nil
}

// RegisterAndLogin registers a user and immediately opens a session —
// signing up logs you in, in one atomic step. The registration is
// committed only after minting succeeds, so a mint failure leaves no
// trace and the same email can simply retry.
func (s *Store) RegisterAndLogin(email, passwordHash, firstName, lastName string, mint repository.TokenMinter) (*models.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.prepareUserLocked(email, passwordHash, firstName, lastName)
	if err != nil {
		return nil, "", err
	}
	token, err := mint(userCopy(u))
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}
	s.commitUserLocked(u)
	s.openSessionLocked(u.ID, token)
	return userCopy(u), token, nil
}

func (s *Store) openSessionLocked(userID int64, token string) {
	s.sessions[token] = userID
	s.sessionByUser[userID] = token
	s.logger.Debug("session opened", zap.Int64("user_id", userID))
}

// Logout invalidates the token if it names an active session and
// reports whether anything was removed. Unknown tokens return false —
// logout is idempotent, never an error. Once removed, the token will
// never resolve again.
func (s *Store) Logout(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.sessions[token]
	if !ok {
		return false
	}
	delete(s.sessions, token)
	delete(s.sessionByUser, userID)
	s.logger.Debug("session closed", zap.Int64("user_id", userID))
	return true
}

// Resolve maps an active session token to its user ID. This is the
// authentication gate: every privileged operation resolves first.
func (s *Store) Resolve(token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.sessions[token]
	if !ok {
		return 0, repository.ErrInvalidSession
	}
	return userID, nil
}
