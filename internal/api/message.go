package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/middleware"
	"github.com/lalith-99/flocknest/internal/repository"
	"github.com/lalith-99/flocknest/internal/stream"
)

// MessageHandler handles sending, editing, removing, paging and
// searching messages.
type MessageHandler struct {
	messages repository.MessageRepository
	hub      *stream.Hub
	logger   *zap.Logger
}

func NewMessageHandler(messages repository.MessageRepository, hub *stream.Hub, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, hub: hub, logger: logger}
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// Send handles POST /v1/channels/:id/messages. On success the message
// also goes out to live websocket subscribers of the channel.
func (h *MessageHandler) Send(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	msg, err := h.messages.Send(userID, channelID, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.hub.Publish(*msg)
	c.JSON(http.StatusCreated, msg)
}

// Page handles GET /v1/channels/:id/messages?start=N. start defaults
// to 0 — the most recent message.
func (h *MessageHandler) Page(c *gin.Context) {
	channelID, err := channelParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	start := 0
	if v := c.Query("start"); v != "" {
		start, err = strconv.Atoi(v)
		if err != nil || start < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'start' parameter"})
			return
		}
	}

	userID := middleware.GetUserID(c)
	page, err := h.messages.Page(userID, channelID, start)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

type editMessageRequest struct {
	Text string `json:"text"`
}

// Edit handles PUT /v1/messages/:id. Empty text deletes the message —
// same contract as the store.
func (h *MessageHandler) Edit(c *gin.Context) {
	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.messages.Edit(userID, messageID, req.Text); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove handles DELETE /v1/messages/:id.
func (h *MessageHandler) Remove(c *gin.Context) {
	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.messages.Remove(userID, messageID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search handles GET /v1/search?q=term — a case-sensitive substring
// scan across the caller's channels.
func (h *MessageHandler) Search(c *gin.Context) {
	userID := middleware.GetUserID(c)

	results, err := h.messages.Search(userID, c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
