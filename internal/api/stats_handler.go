package api

import (
	"net/http"

	"ClubManager/internal/model"
	"ClubManager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsHandler serves the aggregated statistics dashboard.
type StatsHandler struct {
	stats  *service.StatsService
	logger *logrus.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(db *gorm.DB, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  service.NewStatsService(db, logger),
		logger: logger,
	}
}

// Dashboard returns leaderboards and club totals.
// GET /api/stats/dashboard?category=SEN&period=month
func (h *StatsHandler) Dashboard(c *gin.Context) {
	category := model.Category(c.Query("category"))
	period := c.DefaultQuery("period", "all")

	dashboard, err := h.stats.BuildDashboard(c.Request.Context(), category, period)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
