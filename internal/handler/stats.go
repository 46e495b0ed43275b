package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodbot/internal/repository"
	"moodbot/internal/service"
)

type StatsHandler interface {
	GetDashboard(c *gin.Context)
}

type statsHandler struct {
	checkinService *service.CheckinService
	checkinRepo    repository.CheckinRepository
	logger         *zap.Logger
}

func NewStatsHandler(checkinService *service.CheckinService, checkinRepo repository.CheckinRepository, logger *zap.Logger) StatsHandler {
	return &statsHandler{
		checkinService: checkinService,
		checkinRepo:    checkinRepo,
		logger:         logger,
	}
}

// DashboardStats is the payload for the admin dashboard.
type DashboardStats struct {
	TotalUsers       int            `json:"total_users"`
	CheckinsInWindow int            `json:"checkins_in_window"`
	CategoryCounts   map[string]int `json:"category_counts"`
	RecentCheckins   interface{}    `json:"recent_checkins"`
}

// GetDashboard handles GET /api/stats
func (h *statsHandler) GetDashboard(c *gin.Context) {
	snapshot, err := h.checkinService.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to aggregate stats for dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}

	recent, err := h.checkinRepo.RecentCheckins(c.Request.Context(), 10)
	if err != nil {
		h.logger.Error("Failed to get recent check-ins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}

	counts := make(map[string]int, len(snapshot.CategoryCounts))
	for category, count := range snapshot.CategoryCounts {
		counts[string(category)] = count
	}

	c.JSON(http.StatusOK, DashboardStats{
		TotalUsers:       snapshot.TotalUsers,
		CheckinsInWindow: snapshot.CheckinsInWindow,
		CategoryCounts:   counts,
		RecentCheckins:   recent,
	})
}
