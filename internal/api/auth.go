package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lalith-99/flocknest/internal/auth"
	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

// AuthHandler handles register, login and logout — the endpoints that
// live outside the auth middleware. Password hashing happens here:
// the store below only ever sees bcrypt hashes, never plaintext.
type AuthHandler struct {
	sessions  repository.SessionRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthHandler(sessions repository.SessionRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required,min=1,max=50"`
	LastName  string `json:"last_name" binding:"required,min=1,max=50"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// authResponse is what register and login return. The client sends
// the token back as "Authorization: Bearer <token>" on every request.
type authResponse struct {
	Token string `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// mint returns the TokenMinter the session registry calls while it
// holds the store lock.
func (h *AuthHandler) mint() repository.TokenMinter {
	return func(u *models.User) (string, error) {
		return auth.GenerateToken(u.ID, h.jwtSecret, h.tokenTTL)
	}
}

// Register handles POST /v1/auth/register. Signing up logs you in:
// the response carries a live session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	user, token, err := h.sessions.RegisterAndLogin(req.Email, string(hash), req.FirstName, req.LastName, h.mint())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Login handles POST /v1/auth/login. The password check is a closure
// over the plaintext: the registry gets a verdict, not the password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check := func(passwordHash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) == nil
	}

	token, err := h.sessions.Login(req.Email, check, h.mint())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token})
}

// Logout handles POST /v1/auth/logout. It sits outside the auth
// middleware on purpose: logging out an already-dead token is a
// silent false, not a 401 — logout is idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing bearer token"})
		return
	}

	removed := h.sessions.Logout(token)
	c.JSON(http.StatusOK, gin.H{"logged_out": removed})
}

// bearerToken extracts the token from an Authorization header, or
// returns "".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
