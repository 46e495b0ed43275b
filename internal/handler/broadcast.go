package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Broadcaster sends a message to every registered user and reports how
// many sends succeeded and failed.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (sent, failed int, err error)
}

type BroadcastHandler interface {
	Broadcast(c *gin.Context)
}

type broadcastHandler struct {
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewBroadcastHandler(broadcaster Broadcaster, logger *zap.Logger) BroadcastHandler {
	return &broadcastHandler{broadcaster: broadcaster, logger: logger}
}

type BroadcastRequest struct {
	Text string `json:"text" binding:"required"`
}

// Broadcast handles POST /api/broadcast
func (h *broadcastHandler) Broadcast(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Telegram bot is disabled"})
		return
	}

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, failed, err := h.broadcaster.Broadcast(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Error("Broadcast failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Broadcast failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": sent, "failed": failed})
}
