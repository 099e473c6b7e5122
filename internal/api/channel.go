package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/middleware"
	"github.com/lalith-99/flocknest/internal/repository"
)

// ChannelHandler handles channel creation and listing.
type ChannelHandler struct {
	channels repository.ChannelRepository
	logger   *zap.Logger
}

func NewChannelHandler(channels repository.ChannelRepository, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{channels: channels, logger: logger}
}

// createChannelRequest deliberately has no binding on Name's length:
// the 1–20 rule belongs to the store, which knows it in one place.
type createChannelRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

// Create handles POST /v1/channels.
func (h *ChannelHandler) Create(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creatorID := middleware.GetUserID(c)
	ch, err := h.channels.Create(creatorID, req.Name, req.IsPublic)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ch)
}

// ListMine handles GET /v1/channels — channels the caller belongs to.
func (h *ChannelHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	c.JSON(http.StatusOK, h.channels.ListForUser(userID))
}

// ListAll handles GET /v1/channels/all — every channel, any
// visibility. Reachable only through the auth middleware; message
// contents remain gated per channel.
func (h *ChannelHandler) ListAll(c *gin.Context) {
	c.JSON(http.StatusOK, h.channels.ListAll())
}

// Details handles GET /v1/channels/:id.
func (h *ChannelHandler) Details(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	userID := middleware.GetUserID(c)
	details, err := h.channels.Details(userID, channelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// channelParam reads the :id path parameter as a channel ID.
func channelParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
