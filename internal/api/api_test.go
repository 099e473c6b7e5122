package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository/memory"
	"github.com/lalith-99/flocknest/internal/stream"
)

const testJWTSecret = "api-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := memory.NewStore(logger)
	hub := stream.NewHub(logger)

	return NewRouter(testJWTSecret, time.Hour, Repos{
		Identity: store,
		Sessions: store,
		Channels: store,
		Messages: store,
		Store:    store,
	}, hub, logger)
}

// do fires one JSON request at the router. token may be "" for
// unauthenticated calls.
func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// register creates an account through the API and returns its token
// and user record.
func register(t *testing.T, r *gin.Engine, email, first, last string) (string, models.User) {
	t.Helper()

	w := do(t, r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":      email,
		"password":   "secret-password",
		"first_name": first,
		"last_name":  last,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func createChannel(t *testing.T, r *gin.Engine, token, name string, public bool) int64 {
	t.Helper()
	w := do(t, r, http.MethodPost, "/v1/channels", token, gin.H{
		"name":      name,
		"is_public": public,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ch models.Channel
	decode(t, w, &ch)
	return ch.ID
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndGetMe(t *testing.T) {
	r := newTestRouter(t)
	token, user := register(t, r, "ada@example.com", "Ada", "Lovelace")

	assert.Equal(t, "adalovelace", user.Handle)
	assert.Equal(t, models.PermOwner, user.Perm, "first registered user is the Owner")

	w := do(t, r, http.MethodGet, "/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me models.User
	decode(t, w, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, "ada@example.com", me.Email)
	assert.NotContains(t, w.Body.String(), "password", "hash never leaves the server")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestRouter(t)
	register(t, r, "ada@example.com", "Ada", "Lovelace")

	w := do(t, r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":      "ADA@example.com",
		"password":   "secret-password",
		"first_name": "Ada",
		"last_name":  "Again",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/v1/users/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFlow(t *testing.T) {
	r := newTestRouter(t)
	token, _ := register(t, r, "ada@example.com", "Ada", "Lovelace")

	t.Run("second login while a session is live is forbidden", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/v1/auth/login", "", gin.H{
			"email":    "ada@example.com",
			"password": "secret-password",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("logout then login again", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			LoggedOut bool `json:"logged_out"`
		}
		decode(t, w, &resp)
		assert.True(t, resp.LoggedOut)

		// The old token is dead for authenticated routes now.
		w = do(t, r, http.MethodGet, "/v1/users/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// Logging out again is a silent false, never a 401.
		w = do(t, r, http.MethodPost, "/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &resp)
		assert.False(t, resp.LoggedOut)

		w = do(t, r, http.MethodPost, "/v1/auth/login", "", gin.H{
			"email":    "ada@example.com",
			"password": "secret-password",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/v1/auth/login", "", gin.H{
			"email":    "ada@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChannelFlow(t *testing.T) {
	r := newTestRouter(t)
	_, _ = register(t, r, "first@example.com", "First", "Owner")
	adaToken, _ := register(t, r, "ada@example.com", "Ada", "Lovelace")
	bobToken, bob := register(t, r, "bob@example.com", "Bob", "Byrne")

	public := createChannel(t, r, adaToken, "general", true)
	private := createChannel(t, r, adaToken, "secret", false)

	t.Run("join public", func(t *testing.T) {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/join", public), bobToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("join private is forbidden", func(t *testing.T) {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/join", private), bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("private details hidden from outsiders", func(t *testing.T) {
		w := do(t, r, http.MethodGet, fmt.Sprintf("/v1/channels/%d", private), bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invite opens the door", func(t *testing.T) {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/invite", private), adaToken, gin.H{
			"user_id": bob.ID,
		})
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, r, http.MethodGet, fmt.Sprintf("/v1/channels/%d", private), bobToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("listing mine reflects membership", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/v1/channels", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list []models.ChannelSummary
		decode(t, w, &list)
		assert.Len(t, list, 2)
	})

	t.Run("unknown channel is a 400", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/v1/channels/999/join", bobToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMessageFlow(t *testing.T) {
	r := newTestRouter(t)
	_, _ = register(t, r, "first@example.com", "First", "Owner")
	adaToken, _ := register(t, r, "ada@example.com", "Ada", "Lovelace")
	bobToken, _ := register(t, r, "bob@example.com", "Bob", "Byrne")

	ch := createChannel(t, r, adaToken, "general", true)

	t.Run("non-member cannot post even in a public channel", func(t *testing.T) {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/messages", ch), bobToken, gin.H{
			"text": "hi",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var msg models.Message
	t.Run("member posts", func(t *testing.T) {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/messages", ch), adaToken, gin.H{
			"text": "first post",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		decode(t, w, &msg)
		assert.Equal(t, "first post", msg.Text)
	})

	t.Run("page newest first", func(t *testing.T) {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/messages", ch), adaToken, gin.H{
			"text": "second post",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(t, r, http.MethodGet, fmt.Sprintf("/v1/channels/%d/messages", ch), bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code, "public history is readable without membership")

		var page models.MessagePage
		decode(t, w, &page)
		require.Len(t, page.Messages, 2)
		assert.Equal(t, "second post", page.Messages[0].Text)
		assert.Equal(t, -1, page.End)
	})

	t.Run("negative start is rejected before the store", func(t *testing.T) {
		w := do(t, r, http.MethodGet, fmt.Sprintf("/v1/channels/%d/messages?start=-1", ch), adaToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("author cannot edit without owner rights", func(t *testing.T) {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/join", ch), bobToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, r, http.MethodPost, fmt.Sprintf("/v1/channels/%d/messages", ch), bobToken, gin.H{
			"text": "bob speaks",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var bobMsg models.Message
		decode(t, w, &bobMsg)

		w = do(t, r, http.MethodPut, fmt.Sprintf("/v1/messages/%d", bobMsg.ID), bobToken, gin.H{
			"text": "bob edits",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = do(t, r, http.MethodPut, fmt.Sprintf("/v1/messages/%d", bobMsg.ID), adaToken, gin.H{
			"text": "moderated",
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("remove", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, fmt.Sprintf("/v1/messages/%d", msg.ID), adaToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, r, http.MethodDelete, fmt.Sprintf("/v1/messages/%d", msg.ID), adaToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "already gone")
	})

	t.Run("search", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/v1/search?q=moderated", adaToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var results []models.Message
		decode(t, w, &results)
		require.Len(t, results, 1)
		assert.Equal(t, "moderated", results[0].Text)

		w = do(t, r, http.MethodGet, "/v1/search?q=", adaToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminFlow(t *testing.T) {
	r := newTestRouter(t)
	ownerToken, _ := register(t, r, "first@example.com", "First", "Owner")
	memberToken, member := register(t, r, "bob@example.com", "Bob", "Byrne")

	t.Run("member cannot change permissions", func(t *testing.T) {
		w := do(t, r, http.MethodPut, "/v1/admin/permissions", memberToken, gin.H{
			"user_id":    member.ID,
			"permission": 1,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner promotes", func(t *testing.T) {
		w := do(t, r, http.MethodPut, "/v1/admin/permissions", ownerToken, gin.H{
			"user_id":    member.ID,
			"permission": 1,
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("invalid level is rejected by binding", func(t *testing.T) {
		w := do(t, r, http.MethodPut, "/v1/admin/permissions", ownerToken, gin.H{
			"user_id":    member.ID,
			"permission": 9,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResetFlow(t *testing.T) {
	r := newTestRouter(t)
	token, _ := register(t, r, "ada@example.com", "Ada", "Lovelace")
	createChannel(t, r, token, "general", true)

	w := do(t, r, http.MethodPost, "/v1/admin/reset", "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	t.Run("old session is dead", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/v1/users/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("reset on an empty store succeeds", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/v1/admin/reset", "", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("the world starts over", func(t *testing.T) {
		freshToken, fresh := register(t, r, "ada@example.com", "Ada", "Lovelace")
		assert.Equal(t, int64(1), fresh.ID)

		w := do(t, r, http.MethodGet, "/v1/channels/all", freshToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []models.ChannelSummary
		decode(t, w, &list)
		assert.Empty(t, list)
	})
}

func TestUpdateProfileFlow(t *testing.T) {
	r := newTestRouter(t)
	token, _ := register(t, r, "ada@example.com", "Ada", "Lovelace")

	w := do(t, r, http.MethodPut, "/v1/users/me", token, gin.H{
		"first_name": "Augusta",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var me models.User
	decode(t, w, &me)
	assert.Equal(t, "Augusta", me.FirstName)
	assert.Equal(t, "Lovelace", me.LastName, "omitted fields stay put")
}
