package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/middleware"
	"github.com/lalith-99/flocknest/internal/repository"
)

// UserHandler handles profile reads and updates.
type UserHandler struct {
	identity repository.IdentityRepository
	logger   *zap.Logger
}

func NewUserHandler(identity repository.IdentityRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{identity: identity, logger: logger}
}

// GetMe handles GET /v1/users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, ok := h.identity.FindByID(userID)
	if !ok {
		// A resolved session pointing at a missing user means the
		// store was reset underneath the token. Treat as stale auth.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// updateProfileRequest uses pointers so "field absent" and "field set
// to empty" stay distinguishable; only present fields are updated.
type updateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Handle    *string `json:"handle" binding:"omitempty,min=3,max=20"`
}

// UpdateMe handles PUT /v1/users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	user, err := h.identity.UpdateProfile(userID, repository.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Handle:    req.Handle,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
