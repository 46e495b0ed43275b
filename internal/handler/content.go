package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodbot/internal/service"
)

type ContentHandler interface {
	Reload(c *gin.Context)
}

type contentHandler struct {
	checkinService *service.CheckinService
	logger         *zap.Logger
}

func NewContentHandler(checkinService *service.CheckinService, logger *zap.Logger) ContentHandler {
	return &contentHandler{checkinService: checkinService, logger: logger}
}

// Reload handles POST /api/content/reload
func (h *contentHandler) Reload(c *gin.Context) {
	if err := h.checkinService.Reload(); err != nil {
		h.logger.Error("Failed to reload content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content reloaded successfully"})
}
