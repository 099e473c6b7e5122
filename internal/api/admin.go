package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/middleware"
	"github.com/lalith-99/flocknest/internal/models"
	"github.com/lalith-99/flocknest/internal/repository"
)

// AdminHandler handles global-Owner operations plus the reset hook
// test harnesses use between runs.
type AdminHandler struct {
	identity repository.IdentityRepository
	store    repository.Resetter
	logger   *zap.Logger
}

func NewAdminHandler(identity repository.IdentityRepository, store repository.Resetter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{identity: identity, store: store, logger: logger}
}

type setPermissionRequest struct {
	UserID     int64 `json:"user_id" binding:"required"`
	Permission int   `json:"permission" binding:"required,oneof=1 2"`
}

// SetPermission handles PUT /v1/admin/permissions. Authorization is
// decided in the store: only a global Owner passes, and the first
// owner can never be demoted.
func (h *AdminHandler) SetPermission(c *gin.Context) {
	var req setPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middleware.GetUserID(c)
	if err := h.identity.SetPermission(actorID, req.UserID, models.Permission(req.Permission)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset handles POST /v1/admin/reset: wipes every store substructure
// and counter in one atomic step. All sessions die with it, including
// the caller's.
func (h *AdminHandler) Reset(c *gin.Context) {
	h.store.Reset()
	h.logger.Info("store reset requested")
	c.Status(http.StatusNoContent)
}
