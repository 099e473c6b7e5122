package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(zap.NewNop())
}

// registerUser registers with a fixed "hash" password hash, which the
// checkOK helper accepts.
func registerUser(t *testing.T, s *Store, email, first, last string) *models.User {
	t.Helper()
	u, err := s.Register(email, "hash", first, last)
	require.NoError(t, err)
	return u
}

// loginUser opens a session for an already-registered test user.
func loginUser(t *testing.T, s *Store, email string) string {
	t.Helper()
	token, err := s.Login(email, checkOK, mintCounting())
	require.NoError(t, err)
	return token
}

func checkOK(passwordHash string) bool { return passwordHash == "hash" }

func checkFail(string) bool { return false }

// mintCounting returns a minter producing a distinct token per call.
var mintSeq int64

func mintCounting() repository.TokenMinter {
	return func(u *models.User) (string, error) {
		mintSeq++
		return fmt.Sprintf("token-%d-%d", u.ID, mintSeq), nil
	}
}
