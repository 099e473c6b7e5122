package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/middleware"
	"github.com/lalith-99/flocknest/internal/repository"
)

// MembershipHandler handles joining, leaving, inviting, and channel
// ownership changes.
type MembershipHandler struct {
	channels repository.ChannelRepository
	logger   *zap.Logger
}

func NewMembershipHandler(channels repository.ChannelRepository, logger *zap.Logger) *MembershipHandler {
	return &MembershipHandler{channels: channels, logger: logger}
}

// Join handles POST /v1/channels/:id/join — the caller joins
// themselves. Adding someone else goes through Invite.
func (h *MembershipHandler) Join(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.channels.Join(userID, channelID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Leave handles POST /v1/channels/:id/leave.
func (h *MembershipHandler) Leave(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.channels.Leave(userID, channelID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type inviteRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// Invite handles POST /v1/channels/:id/invite — works for private
// channels too; the actor's membership is the credential.
func (h *MembershipHandler) Invite(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middleware.GetUserID(c)
	if err := h.channels.Invite(actorID, channelID, req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addOwnerRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// AddOwner handles POST /v1/channels/:id/owners.
func (h *MembershipHandler) AddOwner(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	var req addOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middleware.GetUserID(c)
	if err := h.channels.AddOwner(actorID, channelID, req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveOwner handles DELETE /v1/channels/:id/owners/:userID.
func (h *MembershipHandler) RemoveOwner(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}
	targetID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	actorID := middleware.GetUserID(c)
	if err := h.channels.RemoveOwner(actorID, channelID, targetID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
