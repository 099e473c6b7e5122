package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/middleware"
	"github.com/lalith-99/flocknest/internal/repository"
	"github.com/lalith-99/flocknest/internal/stream"
)

// StreamHandler upgrades GET /v1/channels/:id/stream to a websocket
// that receives each message sent to the channel, as JSON.
type StreamHandler struct {
	channels repository.ChannelRepository
	hub      *stream.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewStreamHandler(channels repository.ChannelRepository, hub *stream.Hub, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		channels: channels,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// Stream handles GET /v1/channels/:id/stream.
func (h *StreamHandler) Stream(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	// Same gate as reading history: the feed leaks message contents,
	// so view rights are required before the upgrade.
	userID := middleware.GetUserID(c)
	if _, err := h.channels.Details(userID, channelID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(channelID)
	defer h.hub.Unsubscribe(sub)

	// The read pump only watches for the client closing; a read error
	// unsubscribes, which closes sub.C and ends the write loop below.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.hub.Unsubscribe(sub)
				return
			}
		}
	}()

	for msg := range sub.C {
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
